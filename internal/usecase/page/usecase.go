package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-page-service/internal/domain/user"
	pkgerrors "user-page-service/pkg/errors"
	"user-page-service/pkg/logger"
)

// Fetcher reads the current user list from the upstream source.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
}

// FeaturedProduct is the product on the home page card.
var FeaturedProduct = Product{ID: "starter-kit", Name: "Starter Kit"}

// Service implements Usecase. It holds no per-render state: every call to
// UsersPage performs its own fetch and builds a fresh table.
type Service struct {
	fetcher  Fetcher
	now      func() time.Time
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new Service backed by fetcher.
func New(fetcher Fetcher, log *zap.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		now:      time.Now,
		log:      log,
		validate: validator.New(),
	}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var field string
	var messages []string
	for _, e := range validationErrors {
		if field == "" {
			field = e.Field()
		}
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewValidationError(field, strings.Join(messages, ", "))
}

// Home returns the static home page content.
func (s *Service) Home(ctx context.Context) (*HomeResponse, error) {
	return &HomeResponse{Product: FeaturedProduct}, nil
}

// UsersPage performs one render pass: a single fetch followed by the table projection.
// A fetch failure aborts the pass and is returned unchanged.
func (s *Service) UsersPage(ctx context.Context) (*UsersPageResponse, error) {
	log := logger.WithContext(ctx, s.log)
	start := s.now()

	users, err := s.fetcher.FetchUsers(ctx)
	if err != nil {
		log.Error("users page render aborted", zap.Error(err))
		return nil, err
	}

	table := domain.NewUserTable(users)
	log.Info("users page rendered",
		zap.Int("rows", len(table.Rows)),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	return &UsersPageResponse{
		Table:      table,
		RenderedAt: start,
	}, nil
}

// AddToCart records an add-to-cart click.
func (s *Service) AddToCart(ctx context.Context, in AddToCartRequest) (*AddToCartResponse, error) {
	log := logger.WithContext(ctx, s.log)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	log.Info("Clicked!", zap.String("product_id", in.ProductID))
	return &AddToCartResponse{ProductID: in.ProductID}, nil
}
