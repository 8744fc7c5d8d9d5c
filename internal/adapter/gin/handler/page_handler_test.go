package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-page-service/internal/adapter/render"
	domain "user-page-service/internal/domain/user"
	"user-page-service/internal/usecase/page"
	pkgerrors "user-page-service/pkg/errors"
)

// MockPageUsecase is a mock implementation of page.Usecase
type MockPageUsecase struct {
	mock.Mock
}

func (m *MockPageUsecase) Home(ctx context.Context) (*page.HomeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.HomeResponse), args.Error(1)
}

func (m *MockPageUsecase) UsersPage(ctx context.Context) (*page.UsersPageResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.UsersPageResponse), args.Error(1)
}

func (m *MockPageUsecase) AddToCart(ctx context.Context, req page.AddToCartRequest) (*page.AddToCartResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*page.AddToCartResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockPageUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockPageUsecase)
	h := NewPageHandler(mockUsecase, zaptest.NewLogger(t))

	renderer, err := render.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(renderer.Templates())
	r.GET("/", h.Home)
	r.GET("/users", h.UsersPage)
	r.GET("/v1/users", h.ListUsers)
	r.POST("/cart", h.AddToCart)
	return r, mockUsecase
}

func usersResponse(users ...domain.User) *page.UsersPageResponse {
	return &page.UsersPageResponse{
		Table:      domain.NewUserTable(users),
		RenderedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestHome(t *testing.T) {
	r, mockUsecase := setupTest(t)
	mockUsecase.On("Home", mock.Anything).Return(&page.HomeResponse{
		Product: page.Product{ID: "starter-kit", Name: "Starter Kit"},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello, World!")
	assert.Contains(t, w.Body.String(), "Starter Kit")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestUsersPage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).Return(usersResponse(
			domain.User{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		), nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		body := w.Body.String()
		assert.Contains(t, body, "<th>Name:</th><th>Email:</th>")
		assert.Contains(t, body, "<td>Leanne Graham</td><td>Sincere@april.biz</td>")
		assert.Equal(t, 2, strings.Count(body, "<tr"))
	})

	t.Run("Empty", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).Return(usersResponse(), nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, strings.Count(w.Body.String(), "<tr"))
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).
			Return(nil, pkgerrors.NewStatusError("http://upstream/users", http.StatusInternalServerError)).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "<table")
		assert.NotContains(t, w.Body.String(), "<tr")
		assert.Contains(t, w.Body.String(), "Failed to load data from upstream")
	})

	t.Run("Unexpected Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).Return(nil, errors.New("boom")).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).Return(usersResponse(
			domain.User{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
			domain.User{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		), nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp UsersTableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Name:", "Email:"}, resp.Header)
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, int64(2), resp.Rows[0].Key)
		assert.Equal(t, []string{"Leanne Graham", "Sincere@april.biz"}, resp.Rows[1].Cells)
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UsersPage", mock.Anything).
			Return(nil, pkgerrors.NewDecodeError("http://upstream/users", errors.New("not an array"))).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "upstream_error", resp.Error)
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("AddToCart", mock.Anything, page.AddToCartRequest{ProductID: "starter-kit"}).
			Return(&page.AddToCartResponse{ProductID: "starter-kit"}, nil).Once()

		form := url.Values{"product_id": {"starter-kit"}}
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Missing Product", func(t *testing.T) {
		r, mockUsecase := setupTest(t)

		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything)
	})
}
