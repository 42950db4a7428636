package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"legolelo/internal/logging"
	"legolelo/internal/models"
	"legolelo/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// EventsExchange is the exchange catalog change events are published to.
const EventsExchange = "toys"

// EventPublisher delivers catalog change events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ToyService translates catalog requests into queries and mutations against
// the toy repository. It holds no per-request state and is safe for concurrent use.
type ToyService struct {
	repo     repositories.ToyRepository
	events   EventPublisher // optional
	validate *validator.Validate
	log      logging.Logger
}

// NewToyService creates a new ToyService. events may be nil.
func NewToyService(repo repositories.ToyRepository, events EventPublisher, log logging.Logger) *ToyService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ToyService{
		repo:     repo,
		events:   events,
		validate: v,
		log:      log,
	}
}

// ListAll returns every toy, at most limit of them when limit is set.
func (s *ToyService) ListAll(ctx context.Context, limit *int64) ([]models.Toy, error) {
	if limit != nil && *limit == 0 {
		return []models.Toy{}, nil
	}
	return s.find(ctx, repositories.ToyQuery{Limit: limit})
}

// SearchByName returns the toys whose name contains key. An empty key matches all toys.
func (s *ToyService) SearchByName(ctx context.Context, key string) ([]models.Toy, error) {
	return s.find(ctx, repositories.ToyQuery{
		Filter: repositories.ToyFilter{NameContains: key},
	})
}

// ListByCategory returns the toys whose sub-category contains category.
func (s *ToyService) ListByCategory(ctx context.Context, category string) ([]models.Toy, error) {
	return s.find(ctx, repositories.ToyQuery{
		Filter: repositories.ToyFilter{SubCategoryContains: category},
	})
}

// ListMine returns the toys owned by email (all toys when email is empty),
// ordered by price according to order.
func (s *ToyService) ListMine(ctx context.Context, email string, order repositories.SortOrder) ([]models.Toy, error) {
	return s.find(ctx, repositories.ToyQuery{
		Filter: repositories.ToyFilter{Email: email},
		Sort:   order,
	})
}

func (s *ToyService) find(ctx context.Context, q repositories.ToyQuery) ([]models.Toy, error) {
	toys, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, storeError(err)
	}
	if toys == nil {
		toys = []models.Toy{}
	}
	return toys, nil
}

// GetByID returns the toy with the given id, or nil when there is none.
func (s *ToyService) GetByID(ctx context.Context, rawID string) (*models.Toy, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	toy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return toy, nil
}

// Add stores a new toy. Any id supplied by the caller is discarded; the store assigns one.
func (s *ToyService) Add(ctx context.Context, toy *models.Toy) (models.InsertResult, error) {
	toy.ID = models.ToyID{}
	res, err := s.repo.Create(ctx, toy)
	if err != nil {
		return models.InsertResult{}, storeError(err)
	}

	s.log.Info(ctx, "toy created", "id", res.InsertedID.Hex(), "email", toy.Email)
	s.publish(ctx, models.ToyEvent{Type: models.ToyCreated, ToyID: res.InsertedID, Email: toy.Email, Count: 1})
	return res, nil
}

// Delete removes the toy with the given id. Deleting a missing toy is not an error.
func (s *ToyService) Delete(ctx context.Context, rawID string) (models.DeleteResult, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, storeError(err)
	}

	if res.DeletedCount > 0 {
		s.log.Info(ctx, "toy deleted", "id", id.Hex())
		s.publish(ctx, models.ToyEvent{Type: models.ToyDeleted, ToyID: id, Count: res.DeletedCount})
	}
	return res, nil
}

// Update overwrites the six mutable fields of the toy with the given id.
// Fields missing from update are written as empty values.
func (s *ToyService) Update(ctx context.Context, rawID string, update models.ToyUpdate) (models.UpdateResult, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := s.validateStruct(update); err != nil {
		return models.UpdateResult{}, err
	}

	res, err := s.repo.Update(ctx, id, update.Fields())
	if err != nil {
		return models.UpdateResult{}, storeError(err)
	}

	if res.ModifiedCount > 0 {
		s.log.Info(ctx, "toy updated", "id", id.Hex())
		s.publish(ctx, models.ToyEvent{Type: models.ToyUpdated, ToyID: id, Count: res.ModifiedCount})
	}
	return res, nil
}

// Health reports whether the store answers.
func (s *ToyService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ToyService) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}

// publish emits a change event. Failures are logged and never reach the caller:
// the mutation has already been applied.
func (s *ToyService) publish(ctx context.Context, event models.ToyEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()

	body, err := json.Marshal(event)
	if err != nil {
		s.log.Warn(ctx, "failed to marshal toy event", "type", event.Type, "error", err)
		return
	}
	if err := s.events.Publish(EventsExchange, event.Type, body); err != nil {
		s.log.Warn(ctx, "failed to publish toy event", "type", event.Type, "id", event.ToyID.Hex(), "error", err)
	}
}
