package handlers

import (
	"errors"
	"net/url"

	"legolelo/internal/logging"
	"legolelo/internal/models"
	"legolelo/internal/repositories"
	"legolelo/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ToyHandler handles HTTP requests for the toy catalog.
type ToyHandler struct {
	service *services.ToyService
	log     logging.Logger
}

// NewToyHandler creates a new ToyHandler.
func NewToyHandler(service *services.ToyService, log logging.Logger) *ToyHandler {
	return &ToyHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the toy routes with the Fiber app.
func (h *ToyHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/all-toys", h.HandleListAll)
	router.Get("/search-toy/:key", h.HandleSearch)
	router.Get("/toy-details/:id", h.HandleGetByID)
	router.Get("/toy-category/:category", h.HandleListByCategory)
	router.Get("/my-toys", h.HandleListMine)
	router.Post("/add-toy", h.HandleAdd)
	router.Delete("/toy-delete/:id", h.HandleDelete)
	router.Patch("/toy-update/:id", h.HandleUpdate)
}

// HandleListAll lists every toy, honoring the optional limit query parameter.
func (h *ToyHandler) HandleListAll(c *fiber.Ctx) error {
	toys, err := h.service.ListAll(c.UserContext(), services.ParseLimit(c.Query("limit")))
	if err != nil {
		return h.fail(c, "Could not retrieve toys", err)
	}
	return c.JSON(toys)
}

// HandleSearch lists the toys whose name contains the key path parameter.
func (h *ToyHandler) HandleSearch(c *fiber.Ctx) error {
	toys, err := h.service.SearchByName(c.UserContext(), param(c, "key"))
	if err != nil {
		return h.fail(c, "Could not search toys", err)
	}
	return c.JSON(toys)
}

// HandleListByCategory lists the toys whose sub-category contains the category path parameter.
func (h *ToyHandler) HandleListByCategory(c *fiber.Ctx) error {
	toys, err := h.service.ListByCategory(c.UserContext(), param(c, "category"))
	if err != nil {
		return h.fail(c, "Could not retrieve toys by category", err)
	}
	return c.JSON(toys)
}

// HandleGetByID returns a single toy. A well-formed id with no toy answers null.
func (h *ToyHandler) HandleGetByID(c *fiber.Ctx) error {
	toy, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Could not retrieve toy", err)
	}
	return c.JSON(toy)
}

// HandleListMine lists the toys of the email query parameter, sorted by price
// when sort is "Ascending" or "Descending".
func (h *ToyHandler) HandleListMine(c *fiber.Ctx) error {
	toys, err := h.service.ListMine(c.UserContext(), c.Query("email"), services.ParseSort(c.Query("sort")))
	if err != nil {
		return h.fail(c, "Could not retrieve toys", err)
	}
	return c.JSON(toys)
}

// HandleAdd stores the toy of the request body. Any id in the body is ignored.
func (h *ToyHandler) HandleAdd(c *fiber.Ctx) error {
	var draft models.ToyDraft
	if err := c.BodyParser(&draft); err != nil {
		return badBody(c, err)
	}

	toy := draft.Toy()
	res, err := h.service.Add(c.UserContext(), &toy)
	if err != nil {
		return h.fail(c, "Could not add toy", err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleDelete deletes a toy. Deleting a missing toy answers deletedCount 0.
func (h *ToyHandler) HandleDelete(c *fiber.Ctx) error {
	res, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Could not delete toy", err)
	}
	return c.JSON(res)
}

// HandleUpdate overwrites the six mutable fields of a toy.
func (h *ToyHandler) HandleUpdate(c *fiber.Ctx) error {
	var update models.ToyUpdate
	if err := c.BodyParser(&update); err != nil {
		return badBody(c, err)
	}

	res, err := h.service.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return h.fail(c, "Could not update toy", err)
	}
	return c.JSON(res)
}

// HandleHealth reports the state of the store.
func (h *ToyHandler) HandleHealth(c *fiber.Ctx) error {
	if err := h.service.Health(c.UserContext()); err != nil {
		h.log.Warn(c.UserContext(), "health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  utils.StatusMessage(fiber.StatusServiceUnavailable),
		})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}

// fail maps a service error onto a status code and an error body.
func (h *ToyHandler) fail(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	body := fiber.Map{
		"message": message,
		"error":   err.Error(),
	}
	if status >= fiber.StatusInternalServerError {
		// Store errors carry driver and query details; they stay in the log.
		h.log.Error(c.UserContext(), message, "path", c.Path(), "error", err)
		body["error"] = utils.StatusMessage(status)
	} else {
		h.log.Debug(c.UserContext(), message, "path", c.Path(), "error", err)
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body["message"] = "Validation failed"
		body["errors"] = verr.Fields
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// param returns a path parameter with percent-encoding removed.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
