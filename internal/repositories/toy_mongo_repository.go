package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"legolelo/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoToyRepository is a MongoDB implementation of ToyRepository backed by a
// single collection. *mongo.Client is safe for concurrent use.
type MongoToyRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoToyRepository creates a repository over database.collection.
func NewMongoToyRepository(client *mongo.Client, database, collection string) *MongoToyRepository {
	return &MongoToyRepository{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// buildFilter translates a ToyFilter into a query document. Tokens are quoted so
// pattern characters in caller input match literally.
func buildFilter(f ToyFilter) bson.M {
	filter := bson.M{}
	if f.NameContains != "" {
		filter["toyName"] = bson.M{"$regex": regexp.QuoteMeta(f.NameContains)}
	}
	if f.SubCategoryContains != "" {
		filter["subCategory"] = bson.M{"$regex": regexp.QuoteMeta(f.SubCategoryContains)}
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	return filter
}

func buildFindOptions(q ToyQuery) *options.FindOptions {
	opts := options.Find()
	switch q.Sort {
	case SortPriceAscending:
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case SortPriceDescending:
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}
	if q.Limit != nil {
		opts.SetLimit(*q.Limit)
	}
	return opts
}

// Find retrieves the toys matching the query.
func (r *MongoToyRepository) Find(ctx context.Context, q ToyQuery) ([]models.Toy, error) {
	// A zero limit means "no limit" to the server.
	if q.Limit != nil && *q.Limit == 0 {
		return []models.Toy{}, nil
	}

	cursor, err := r.coll.Find(ctx, buildFilter(q.Filter), buildFindOptions(q))
	if err != nil {
		return nil, fmt.Errorf("failed to find toys: %w", classifyMongoError(err))
	}

	toys := []models.Toy{}
	if err := cursor.All(ctx, &toys); err != nil {
		return nil, fmt.Errorf("failed to decode toys: %w", classifyMongoError(err))
	}
	if toys == nil {
		toys = []models.Toy{}
	}
	return toys, nil
}

// FindByID retrieves a single toy by its ID.
func (r *MongoToyRepository) FindByID(ctx context.Context, id models.ToyID) (*models.Toy, error) {
	var toy models.Toy
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&toy)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get toy by ID %s: %w", id.Hex(), classifyMongoError(err))
	}
	return &toy, nil
}

// Create inserts a new toy. The driver assigns the ObjectID.
func (r *MongoToyRepository) Create(ctx context.Context, toy *models.Toy) (models.InsertResult, error) {
	toy.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, toy)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("failed to create toy: %w", classifyMongoError(err))
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.InsertResult{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	toy.ID = id
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Update sets the six mutable fields of a toy.
func (r *MongoToyRepository) Update(ctx context.Context, id models.ToyID, fields models.ToyFields) (models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update toy %s: %w", id.Hex(), classifyMongoError(err))
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete removes a toy by its ID.
func (r *MongoToyRepository) Delete(ctx context.Context, id models.ToyID) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("failed to delete toy %s: %w", id.Hex(), classifyMongoError(err))
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Ping checks that the primary is reachable.
func (r *MongoToyRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func classifyMongoError(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
