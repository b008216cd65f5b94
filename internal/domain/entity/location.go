package entity

import "time"

// Location es una obra o bodega donde residen activos. Referenciada, nunca
// poseída, por Asset.
type Location struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
