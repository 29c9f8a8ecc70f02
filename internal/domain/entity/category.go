package entity

import "time"

// Category representa una categoría de procedimientos (SOP), p. ej. "SEO".
// Las fases se enlazan por CategoryID; la relación se arma en la capa de aplicación.
type Category struct {
	ID          string
	Title       string
	Icon        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
