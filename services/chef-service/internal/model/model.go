package model

import "time"

// ChefAccount is the directory record for a chef. Downstream services keep
// their own projection, fed by the approval event stream.
type ChefAccount struct {
	ID        string
	Name      string
	Email     string
	Bio       string
	Status    string
	Lat       float64
	Lng       float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDisabled = "disabled"
)
