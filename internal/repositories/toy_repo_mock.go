package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"legolelo/internal/models"
)

// MockToyRepository is an in-memory implementation of ToyRepository.
type MockToyRepository struct {
	toys  map[models.ToyID]models.Toy
	order []models.ToyID // insertion order, so listings are stable
	mu    sync.RWMutex
}

// NewMockToyRepository creates a new instance of MockToyRepository.
func NewMockToyRepository() *MockToyRepository {
	return &MockToyRepository{
		toys: make(map[models.ToyID]models.Toy),
	}
}

// Find returns the toys matching the query.
func (r *MockToyRepository) Find(_ context.Context, q ToyQuery) ([]models.Toy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toyList := make([]models.Toy, 0, len(r.toys))
	for _, id := range r.order {
		toy := r.toys[id]
		if matches(q.Filter, toy) {
			toyList = append(toyList, toy)
		}
	}

	switch q.Sort {
	case SortPriceAscending:
		sort.SliceStable(toyList, func(i, j int) bool { return toyList[i].Price < toyList[j].Price })
	case SortPriceDescending:
		sort.SliceStable(toyList, func(i, j int) bool { return toyList[i].Price > toyList[j].Price })
	}

	if q.Limit != nil && int64(len(toyList)) > *q.Limit {
		toyList = toyList[:*q.Limit]
	}
	return toyList, nil
}

func matches(f ToyFilter, toy models.Toy) bool {
	if f.NameContains != "" && !strings.Contains(toy.ToyName, f.NameContains) {
		return false
	}
	if f.SubCategoryContains != "" && !strings.Contains(toy.SubCategory, f.SubCategoryContains) {
		return false
	}
	if f.Email != "" && toy.Email != f.Email {
		return false
	}
	return true
}

// FindByID returns a toy by its ID.
func (r *MockToyRepository) FindByID(_ context.Context, id models.ToyID) (*models.Toy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toy, ok := r.toys[id]
	if !ok {
		return nil, nil
	}
	return &toy, nil
}

// Create adds a new toy and assigns its ID.
func (r *MockToyRepository) Create(_ context.Context, toy *models.Toy) (models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	toy.ID = models.NewToyID()
	r.toys[toy.ID] = *toy
	r.order = append(r.order, toy.ID)
	return models.InsertResult{Acknowledged: true, InsertedID: toy.ID}, nil
}

// Update overwrites the mutable fields of a toy.
func (r *MockToyRepository) Update(_ context.Context, id models.ToyID, fields models.ToyFields) (models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := models.UpdateResult{Acknowledged: true}
	toy, ok := r.toys[id]
	if !ok {
		return res, nil
	}
	res.MatchedCount = 1
	if fields.Apply(&toy) {
		res.ModifiedCount = 1
		r.toys[id] = toy
	}
	return res, nil
}

// Delete removes a toy by its ID.
func (r *MockToyRepository) Delete(_ context.Context, id models.ToyID) (models.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := models.DeleteResult{Acknowledged: true}
	if _, ok := r.toys[id]; !ok {
		return res, nil
	}
	delete(r.toys, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	res.DeletedCount = 1
	return res, nil
}

// Ping always succeeds.
func (r *MockToyRepository) Ping(context.Context) error {
	return nil
}
