package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToyID is the store-assigned identifier of a toy record.
type ToyID = primitive.ObjectID

// NewToyID generates a fresh identifier. ObjectIDs are never reused.
func NewToyID() ToyID {
	return primitive.NewObjectID()
}

// ParseToyID converts the hex form of an identifier back into a ToyID.
func ParseToyID(hex string) (ToyID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// Toy represents a single entry of the toy catalog.
type Toy struct {
	ID          ToyID   `json:"_id" bson:"_id,omitempty"`
	ToyName     string  `json:"toyName" bson:"toyName"`
	SubCategory string  `json:"subCategory" bson:"subCategory"`
	Email       string  `json:"email" bson:"email"`
	Picture     string  `json:"picture" bson:"picture"`
	Details     string  `json:"details" bson:"details"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Ratings     float64 `json:"ratings" bson:"ratings"`
	Price       float64 `json:"price" bson:"price"`
}

// ToyDraft is the request body of an add. It carries no id: the store assigns
// one and an "_id" sent by the caller is dropped, whatever its form.
type ToyDraft struct {
	ToyName     string  `json:"toyName"`
	SubCategory string  `json:"subCategory"`
	Email       string  `json:"email"`
	Picture     string  `json:"picture"`
	Details     string  `json:"details"`
	Quantity    int     `json:"quantity"`
	Ratings     float64 `json:"ratings"`
	Price       float64 `json:"price"`
}

// Toy returns the record the draft describes, without an id.
func (d ToyDraft) Toy() Toy {
	return Toy{
		ToyName:     d.ToyName,
		SubCategory: d.SubCategory,
		Email:       d.Email,
		Picture:     d.Picture,
		Details:     d.Details,
		Quantity:    d.Quantity,
		Ratings:     d.Ratings,
		Price:       d.Price,
	}
}

// ToyFields is the complete set of fields an update overwrites.
// Email, subCategory and the id are not part of it and never change after creation.
type ToyFields struct {
	Picture  string  `bson:"picture"`
	ToyName  string  `bson:"toyName"`
	Details  string  `bson:"details"`
	Quantity int     `bson:"quantity"`
	Ratings  float64 `bson:"ratings"`
	Price    float64 `bson:"price"`
}

// Apply writes the field set onto t and reports whether any value changed.
func (f ToyFields) Apply(t *Toy) bool {
	changed := t.Picture != f.Picture ||
		t.ToyName != f.ToyName ||
		t.Details != f.Details ||
		t.Quantity != f.Quantity ||
		t.Ratings != f.Ratings ||
		t.Price != f.Price

	t.Picture = f.Picture
	t.ToyName = f.ToyName
	t.Details = f.Details
	t.Quantity = f.Quantity
	t.Ratings = f.Ratings
	t.Price = f.Price
	return changed
}

// ToyUpdate is the request body of an update. Every field is optional on the wire,
// but an absent field is still written: it becomes the empty value (see Fields).
type ToyUpdate struct {
	Picture  *string  `json:"picture"`
	ToyName  *string  `json:"toyName"`
	Details  *string  `json:"details"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	Ratings  *float64 `json:"ratings" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

// Fields resolves the update into the six values that will be stored.
// Omitted fields overwrite the previous content with the zero value.
func (u ToyUpdate) Fields() ToyFields {
	var f ToyFields
	if u.Picture != nil {
		f.Picture = *u.Picture
	}
	if u.ToyName != nil {
		f.ToyName = *u.ToyName
	}
	if u.Details != nil {
		f.Details = *u.Details
	}
	if u.Quantity != nil {
		f.Quantity = *u.Quantity
	}
	if u.Ratings != nil {
		f.Ratings = *u.Ratings
	}
	if u.Price != nil {
		f.Price = *u.Price
	}
	return f
}
