package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter ToyFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: ToyFilter{},
			want:   bson.M{},
		},
		{
			name:   "name substring",
			filter: ToyFilter{NameContains: "Wing"},
			want:   bson.M{"toyName": bson.M{"$regex": "Wing"}},
		},
		{
			name:   "pattern characters are quoted",
			filter: ToyFilter{NameContains: "R2.D2 (v*)"},
			want:   bson.M{"toyName": bson.M{"$regex": `R2\.D2 \(v\*\)`}},
		},
		{
			name:   "category substring",
			filter: ToyFilter{SubCategoryContains: "Star Wars"},
			want:   bson.M{"subCategory": bson.M{"$regex": "Star Wars"}},
		},
		{
			name:   "email equality",
			filter: ToyFilter{Email: "luke@rebels.org"},
			want:   bson.M{"email": "luke@rebels.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}

func TestBuildFindOptions(t *testing.T) {
	opts := buildFindOptions(ToyQuery{})
	assert.Nil(t, opts.Sort)
	assert.Nil(t, opts.Limit)

	opts = buildFindOptions(ToyQuery{Sort: SortPriceAscending})
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, opts.Sort)

	opts = buildFindOptions(ToyQuery{Sort: SortPriceDescending})
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, opts.Sort)

	limit := int64(5)
	opts = buildFindOptions(ToyQuery{Limit: &limit})
	if assert.NotNil(t, opts.Limit) {
		assert.Equal(t, int64(5), *opts.Limit)
	}
}
