package page

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	domain "user-page-service/internal/domain/user"
	pkgerrors "user-page-service/pkg/errors"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockFetcher) {
	mockFetcher := new(MockFetcher)
	svc := New(mockFetcher, zaptest.NewLogger(t))
	return svc, mockFetcher
}

// ==================== USERS PAGE TESTS ====================

func TestUsersPage_Success(t *testing.T) {
	svc, mockFetcher := setupTestService(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	mockFetcher.On("FetchUsers", ctx).Return([]domain.User{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
	}, nil).Once()

	resp, err := svc.UsersPage(ctx)
	require.NoError(t, err)

	assert.Equal(t, fixed, resp.RenderedAt)
	assert.Equal(t, []string{"Name:", "Email:"}, resp.Table.Header)
	require.Len(t, resp.Table.Rows, 1)
	assert.Equal(t, []string{"Leanne Graham", "Sincere@april.biz"}, resp.Table.Rows[0].Cells)
	mockFetcher.AssertExpectations(t)
}

func TestUsersPage_Empty(t *testing.T) {
	svc, mockFetcher := setupTestService(t)
	ctx := context.Background()

	mockFetcher.On("FetchUsers", ctx).Return([]domain.User{}, nil).Once()

	resp, err := svc.UsersPage(ctx)
	require.NoError(t, err)
	assert.Empty(t, resp.Table.Rows)
	assert.Equal(t, 1, resp.Table.RowCount())
}

func TestUsersPage_FetchFailurePropagates(t *testing.T) {
	svc, mockFetcher := setupTestService(t)
	ctx := context.Background()
	fetchErr := pkgerrors.NewStatusError("http://upstream/users", http.StatusInternalServerError)

	mockFetcher.On("FetchUsers", ctx).Return(nil, fetchErr).Once()

	resp, err := svc.UsersPage(ctx)
	assert.Nil(t, resp)
	assert.Same(t, fetchErr, err)
}

func TestUsersPage_FetchesOncePerPass(t *testing.T) {
	svc, mockFetcher := setupTestService(t)
	ctx := context.Background()

	first := []domain.User{{ID: 1, Name: "A", Email: "a@example.com"}, {ID: 2, Name: "B", Email: "b@example.com"}}
	second := []domain.User{{ID: 3, Name: "C", Email: "c@example.com"}}
	mockFetcher.On("FetchUsers", ctx).Return(first, nil).Once()
	mockFetcher.On("FetchUsers", ctx).Return(second, nil).Once()

	r1, err := svc.UsersPage(ctx)
	require.NoError(t, err)
	r2, err := svc.UsersPage(ctx)
	require.NoError(t, err)

	assert.Len(t, r1.Table.Rows, 2)
	require.Len(t, r2.Table.Rows, 1)
	assert.Equal(t, int64(3), r2.Table.Rows[0].Key)
	// The first result is untouched by the second pass
	assert.Equal(t, int64(1), r1.Table.Rows[0].Key)
	mockFetcher.AssertNumberOfCalls(t, "FetchUsers", 2)
}

func TestUsersPage_ConcurrentPassesAreIndependent(t *testing.T) {
	svc, mockFetcher := setupTestService(t)

	mockFetcher.On("FetchUsers", mock.Anything).Return([]domain.User{{ID: 1, Name: "A", Email: "a@example.com"}}, nil)

	const passes = 8
	var wg sync.WaitGroup
	results := make([]*UsersPageResponse, passes)
	for i := 0; i < passes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.UsersPage(context.Background())
			assert.NoError(t, err)
			results[i] = resp
		}(i)
	}
	wg.Wait()

	mockFetcher.AssertNumberOfCalls(t, "FetchUsers", passes)
	for _, r := range results {
		require.NotNil(t, r)
		assert.Len(t, r.Table.Rows, 1)
	}
}

// ==================== HOME / CART TESTS ====================

func TestHome(t *testing.T) {
	svc, mockFetcher := setupTestService(t)

	resp, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FeaturedProduct, resp.Product)
	mockFetcher.AssertNotCalled(t, "FetchUsers", mock.Anything)
}

func TestAddToCart_LogsClick(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := New(new(MockFetcher), zap.New(core))

	resp, err := svc.AddToCart(context.Background(), AddToCartRequest{ProductID: "starter-kit"})
	require.NoError(t, err)
	assert.Equal(t, "starter-kit", resp.ProductID)

	clicked := logs.FilterMessage("Clicked!").All()
	require.Len(t, clicked, 1)
	assert.Equal(t, "starter-kit", clicked[0].ContextMap()["product_id"])
}

func TestAddToCart_ValidationError(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.AddToCart(context.Background(), AddToCartRequest{})
	require.Error(t, err)

	var ve *pkgerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ProductID", ve.Field)
	assert.Contains(t, ve.Message, "ProductID is required")
}
