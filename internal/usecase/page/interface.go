package page

import "context"

// Usecase defines the page-building operations behind the web handlers.
type Usecase interface {
	Home(ctx context.Context) (*HomeResponse, error)
	UsersPage(ctx context.Context) (*UsersPageResponse, error)
	AddToCart(ctx context.Context, in AddToCartRequest) (*AddToCartResponse, error)
}
