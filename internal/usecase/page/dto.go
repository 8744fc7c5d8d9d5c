package page

import (
	"time"

	domain "user-page-service/internal/domain/user"
)

// Product is the static product shown on the home page.
type Product struct {
	ID   string
	Name string
}

// HomeResponse represents the content of the home page.
type HomeResponse struct {
	Product Product
}

// UsersPageResponse represents one completed render pass of the users page.
type UsersPageResponse struct {
	Table      domain.Table
	RenderedAt time.Time
}

// AddToCartRequest represents an add-to-cart interaction.
type AddToCartRequest struct {
	ProductID string `validate:"required,max=64"`
}

// AddToCartResponse represents the acknowledged add-to-cart interaction.
type AddToCartResponse struct {
	ProductID string
}
