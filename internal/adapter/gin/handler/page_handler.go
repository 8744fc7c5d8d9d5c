package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-page-service/internal/adapter/render"
	"user-page-service/internal/usecase/page"
	pkgerrors "user-page-service/pkg/errors"
	"user-page-service/pkg/logger"
)

// PageHandler handles HTTP requests for the site pages
type PageHandler struct {
	uc  page.Usecase
	log *zap.Logger
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(uc page.Usecase, log *zap.Logger) *PageHandler {
	return &PageHandler{
		uc:  uc,
		log: log,
	}
}

// AddToCartForm represents the form body of an add-to-cart click
type AddToCartForm struct {
	ProductID string `form:"product_id" binding:"required"`
}

// RowResponse represents one table row in the JSON projection
type RowResponse struct {
	Key   int64    `json:"key"`
	Cells []string `json:"cells"`
}

// UsersTableResponse represents the JSON projection of the users page
type UsersTableResponse struct {
	Header     []string      `json:"header"`
	Rows       []RowResponse `json:"rows"`
	RenderedAt time.Time     `json:"rendered_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	resp, err := h.uc.Home(c.Request.Context())
	if err != nil {
		h.handleHTMLError(c, err)
		return
	}

	c.HTML(http.StatusOK, render.HomeTemplate, render.HomePage{
		Title:   "Home",
		Product: resp.Product,
	})
}

// UsersPage handles GET /users
func (h *PageHandler) UsersPage(c *gin.Context) {
	// Every request is a fresh render
	c.Header("Cache-Control", "no-store")

	resp, err := h.uc.UsersPage(c.Request.Context())
	if err != nil {
		h.handleHTMLError(c, err)
		return
	}

	c.HTML(http.StatusOK, render.UsersTemplate, render.UsersPage{
		Title:      "Users",
		Table:      resp.Table,
		RenderedAt: resp.RenderedAt,
	})
}

// ListUsers handles GET /v1/users
func (h *PageHandler) ListUsers(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	resp, err := h.uc.UsersPage(c.Request.Context())
	if err != nil {
		h.handleJSONError(c, err)
		return
	}

	rows := make([]RowResponse, len(resp.Table.Rows))
	for i, r := range resp.Table.Rows {
		rows[i] = RowResponse{
			Key:   r.Key,
			Cells: r.Cells,
		}
	}

	c.JSON(http.StatusOK, UsersTableResponse{
		Header:     resp.Table.Header,
		Rows:       rows,
		RenderedAt: resp.RenderedAt,
	})
}

// AddToCart handles POST /cart
func (h *PageHandler) AddToCart(c *gin.Context) {
	var form AddToCartForm
	if err := c.ShouldBind(&form); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid add to cart request", zap.Error(err))
		h.handleHTMLError(c, pkgerrors.NewValidationError("product_id", "is required"))
		return
	}

	if _, err := h.uc.AddToCart(c.Request.Context(), page.AddToCartRequest{ProductID: form.ProductID}); err != nil {
		h.handleHTMLError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// errorMessage returns the user-facing message for err
func errorMessage(status int, err error) string {
	switch {
	case pkgerrors.IsRequestError(err):
		return "Failed to load data from upstream"
	case status == http.StatusBadRequest:
		return err.Error()
	default:
		return "An internal error occurred"
	}
}

// errorCode returns the machine-readable error code for status
func errorCode(status int) string {
	switch status {
	case http.StatusBadGateway:
		return "upstream_error"
	case http.StatusBadRequest:
		return "invalid_input"
	default:
		return "internal_error"
	}
}

// handleHTMLError aborts the render and responds with the error page
func (h *PageHandler) handleHTMLError(c *gin.Context, err error) {
	status := pkgerrors.StatusOf(err)
	logger.WithContext(c.Request.Context(), h.log).Error("page render failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)

	c.HTML(status, render.ErrorTemplate, render.ErrorPage{
		Title:   http.StatusText(status),
		Status:  status,
		Message: errorMessage(status, err),
	})
	c.Abort()
}

// handleJSONError aborts the request and responds with an ErrorResponse
func (h *PageHandler) handleJSONError(c *gin.Context, err error) {
	status := pkgerrors.StatusOf(err)
	logger.WithContext(c.Request.Context(), h.log).Error("users table request failed",
		zap.Int("status", status),
		zap.Error(err),
	)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   errorCode(status),
		Message: errorMessage(status, err),
	})
}
