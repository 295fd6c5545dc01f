package domain

import "time"

// Plant is a single plant inside a garden.
type Plant struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	GardenID  string    `json:"gardenId"`
	Name      string    `json:"name"`
	Species   string    `json:"species,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
