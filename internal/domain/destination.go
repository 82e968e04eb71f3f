// internal/domain/destination.go
package domain

import "time"

// Destination is a place travellers can plan a trip to.
// Destinations are immutable once created.
type Destination struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"` // e.g. "Paris, France"
	Country   string    `bson:"country" json:"country"`
	Popular   bool      `bson:"popular" json:"popular"`
	ImageURL  *string   `bson:"image_url,omitempty" json:"image_url,omitempty"` // Absolute URL or an object key in the image bucket
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
