package models

// InsertResult acknowledges the creation of a toy.
type InsertResult struct {
	Acknowledged bool  `json:"acknowledged"`
	InsertedID   ToyID `json:"insertedId"`
}

// DeleteResult acknowledges a delete. DeletedCount is 0 when nothing matched.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResult acknowledges an update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
