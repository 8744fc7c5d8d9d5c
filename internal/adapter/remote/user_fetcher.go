package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	domain "user-page-service/internal/domain/user"
	pkgerrors "user-page-service/pkg/errors"
	"user-page-service/pkg/logger"
)

// UserFetcher reads the user list from a fixed upstream URL.
// Every call performs exactly one GET; responses are never cached or reused.
type UserFetcher struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewUserFetcher creates a fetcher for url. A nil client falls back to a
// plain http.Client with no timeout; cancellation comes from the caller's context.
func NewUserFetcher(url string, client *http.Client, log *zap.Logger) *UserFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &UserFetcher{url: url, client: client, log: log}
}

// URL returns the upstream resource locator.
func (f *UserFetcher) URL() string {
	return f.url
}

// userPayload mirrors one upstream array element; unknown fields are ignored.
type userPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FetchUsers issues one revalidating GET and decodes the body as a list of users.
// Any failure is returned as a *errors.RequestError.
func (f *UserFetcher) FetchUsers(ctx context.Context) ([]domain.User, error) {
	log := logger.WithContext(ctx, f.log).With(zap.String("url", f.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, pkgerrors.NewNetworkError(f.url, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("upstream request failed", zap.Error(err))
		return nil, pkgerrors.NewNetworkError(f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("upstream returned non-success status", zap.Int("status", resp.StatusCode))
		return nil, pkgerrors.NewStatusError(f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read upstream body", zap.Error(err))
		return nil, pkgerrors.NewNetworkError(f.url, fmt.Errorf("failed to read body: %w", err))
	}

	users, err := decodeUsers(body)
	if err != nil {
		log.Warn("failed to decode upstream body", zap.Error(err))
		return nil, pkgerrors.NewDecodeError(f.url, err)
	}

	log.Debug("fetched users", zap.Int("count", len(users)))
	return users, nil
}

var (
	errNotArray    = errors.New("response body is not a JSON array")
	errNullElement = errors.New("array element is null")
)

// decodeUsers parses body as a JSON array of users, preserving element order.
func decodeUsers(body []byte) ([]domain.User, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var payload []*userPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	users := make([]domain.User, len(payload))
	for i, p := range payload {
		if p == nil {
			return nil, fmt.Errorf("element %d: %w", i, errNullElement)
		}
		users[i] = domain.User{
			ID:    p.ID,
			Name:  p.Name,
			Email: p.Email,
		}
	}
	return users, nil
}
