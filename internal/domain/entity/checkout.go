package entity

import "time"

// Checkout es un préstamo de activo a un trabajador por un período acotado.
// ReturnedAt en nil significa préstamo abierto; como máximo uno abierto por activo.
type Checkout struct {
	ID             string
	AssetID        string
	WorkerName     string
	CheckedOutAt   time.Time
	ExpectedReturn *time.Time
	ReturnedAt     *time.Time
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string
}

// IsOpen indica si el préstamo sigue sin devolución.
func (c *Checkout) IsOpen() bool {
	return c.ReturnedAt == nil
}
