package services

import (
	"fmt"
	"strconv"
	"strings"

	"legolelo/internal/models"
	"legolelo/internal/repositories"
)

// Values of the "sort" query parameter of the my-toys listing.
const (
	SortAscending  = "Ascending"
	SortDescending = "Descending"
)

// ParseID converts a caller-supplied id into a ToyID.
func ParseID(raw string) (models.ToyID, error) {
	id, err := models.ParseToyID(raw)
	if err != nil {
		return models.ToyID{}, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ParseLimit reads a result-count limit. Absent, non-numeric and negative
// values all mean "no limit" and yield nil.
func ParseLimit(raw string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseSort maps the sort directive onto a price ordering. Unknown values sort nothing.
func ParseSort(raw string) repositories.SortOrder {
	switch raw {
	case SortAscending:
		return repositories.SortPriceAscending
	case SortDescending:
		return repositories.SortPriceDescending
	default:
		return repositories.SortNone
	}
}
