package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/middleware"
	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/realtime"
	"github.com/gledyson007/delivery-comida/routes"
)

var testSecret = []byte("test_secret")

// fakeStore captures realtime writes in memory.
type fakeStore struct {
	mu     sync.Mutex
	writes map[string]realtime.DriverLocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{writes: map[string]realtime.DriverLocation{}}
}

func (f *fakeStore) Set(_ context.Context, path string, loc realtime.DriverLocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes[path] = loc
	return nil
}

func (f *fakeStore) URL() string { return "redis://localhost:6379" }

func (f *fakeStore) get(path string) (realtime.DriverLocation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.writes[path]
	return loc, ok
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	store  *fakeStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection: every pooled connection of an anonymous in-memory
	// sqlite database would otherwise see its own empty schema.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newFakeStore()
	router := gin.New()
	routes.SetupRoutes(router, db, store, log, testSecret)

	return &testEnv{db: db, router: router, store: store}
}

var userSeq int

func (e *testEnv) createUser(t *testing.T, role models.Role) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		Name:  fmt.Sprintf("user-%d", userSeq),
		Email: fmt.Sprintf("user-%d@example.com", userSeq),
		Role:  role,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createRestaurant(t *testing.T, owner *models.User) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		OwnerID:  owner.ID,
		Name:     fmt.Sprintf("restaurant-of-%s", owner.Name),
		Address:  "Rua das Flores, 123",
		IsActive: true,
	}
	require.NoError(t, e.db.Create(r).Error)
	return r
}

func (e *testEnv) createMenuItem(t *testing.T, r *models.Restaurant, name, price string) *models.MenuItem {
	t.Helper()
	m := &models.MenuItem{
		RestaurantID: r.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsAvailable:  true,
	}
	require.NoError(t, e.db.Create(m).Error)
	return m
}

func (e *testEnv) createOrder(t *testing.T, customer *models.User, r *models.Restaurant, status models.OrderStatus) *models.Order {
	t.Helper()
	o := &models.Order{
		CustomerID:      &customer.ID,
		RestaurantID:    r.ID,
		Status:          status,
		TotalPrice:      decimal.RequireFromString("10.00"),
		DeliveryAddress: "Av. Central, 456",
	}
	require.NoError(t, e.db.Create(o).Error)
	return o
}

func (e *testEnv) token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := middleware.GenerateToken(testSecret, u)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}
