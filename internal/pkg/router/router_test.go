package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymfox/gymfox/app/repository"
	"github.com/gymfox/gymfox/internal/pkg/apidocs"
	"github.com/gymfox/gymfox/internal/pkg/env"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
)

func newTestApp() *fiber.App {
	repository.InitializeFactory(nil)
	app := fiber.New()
	InstallRouter(app, planlock.NewMemoryLocker(0), nil)
	return app
}

func TestRoutesMatchOpenAPIDocument(t *testing.T) {
	path, ok := apidocs.Locate("../../../")
	require.True(t, ok)
	doc, err := apidocs.Load(context.Background(), path)
	require.NoError(t, err)

	var registered []string
	for _, r := range newTestApp().GetRoutes(true) {
		// Skip implicit HEAD routes and the group's hello route.
		if r.Method == fiber.MethodHead || r.Path == "/admin/api/" || !strings.HasPrefix(r.Path, "/admin/api/") {
			continue
		}
		registered = append(registered, r.Method+" "+r.Path)
	}
	sort.Strings(registered)

	assert.ElementsMatch(t, apidocs.Operations(doc), registered)
}

func TestAdminAPIServesPlans(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/api/plans", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// countingStorage is a map-backed fiber.Storage that records writes.
type countingStorage struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (s *countingStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *countingStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), val...)
	s.sets++
	return nil
}

func (s *countingStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *countingStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	return nil
}

func (s *countingStorage) Close() error { return nil }

func TestRateLimiterUsesSharedStorage(t *testing.T) {
	previous := env.Env
	t.Cleanup(func() { env.Env = previous })
	env.Env = map[string]string{"API_RATE_LIMIT": "2"}

	repository.InitializeFactory(nil)
	store := &countingStorage{data: map[string][]byte{}}
	app := fiber.New()
	InstallRouter(app, planlock.NewMemoryLocker(0), store)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/api/branches", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotZero(t, store.sets)
	assert.NotEmpty(t, store.data)
}

func TestLimiterConfigWithoutStorage(t *testing.T) {
	cfg := limiterConfig(nil)
	assert.Nil(t, cfg.Storage)
	assert.Equal(t, time.Minute, cfg.Expiration)
}
