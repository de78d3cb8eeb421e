package entity

import "time"

// Category agrupa productos (cemento, acero, agregados...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
