package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	partnerapp "github.com/retailops/backend/internal/application/partner"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	if customer, ok := r.customers[id]; ok {
		return customer, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) Find(_ context.Context, _ shared.Filter) ([]*partner.Customer, error) {
	out := make([]*partner.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		out = append(out, customer)
	}
	return out, nil
}

func (r *memCustomerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *memCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func newCustomerTestRouter(repo partner.CustomerRepository) *gin.Engine {
	engine := gin.New()
	handler := NewCustomerHandler(partnerapp.NewCustomerService(repo, zap.NewNop()))
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		repo := newMemCustomerRepo()
		engine := newCustomerTestRouter(repo)

		body, _ := json.Marshal(gin.H{
			"name":         "Ayesha Khan",
			"phone_number": "03001234567",
			"email":        "ayesha@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, repo.customers, 1)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Name string `json:"name"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Ayesha Khan", resp.Data.Name)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		engine := newCustomerTestRouter(newMemCustomerRepo())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", bytes.NewReader([]byte(`{"email":"x@example.com"}`)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		engine := newCustomerTestRouter(newMemCustomerRepo())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", bytes.NewReader([]byte(`{"name":"A","email":"not-an-email"}`)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_GetByID(t *testing.T) {
	repo := newMemCustomerRepo()
	customer, err := partner.NewCustomer("Bilal Ahmed", "", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), customer))

	engine := newCustomerTestRouter(repo)

	t.Run("returns existing customer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/"+customer.ID.String(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("404 for unknown ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/"+uuid.NewString(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("400 for malformed ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/not-a-uuid", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_Delete(t *testing.T) {
	repo := newMemCustomerRepo()
	customer, err := partner.NewCustomer("To Remove", "", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), customer))

	engine := newCustomerTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/customer/"+customer.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.customers)
}
