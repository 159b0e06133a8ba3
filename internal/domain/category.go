package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CategoryUpdate is a partial update: nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
}

func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.ImageURL == nil
}
