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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/taller/backend/internal/application/catalog"
	"github.com/taller/backend/internal/domain/catalog"
	"github.com/taller/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockServiceRepository implements catalog.ServiceRepository for testing
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByName(ctx context.Context, name string) (*catalog.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindActive(ctx context.Context) ([]catalog.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context) ([]catalog.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newCatalogRouter(repo *MockServiceRepository) *gin.Engine {
	engine := gin.New()
	handler := NewServiceHandler(catalogapp.NewCatalogService(repo))
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func mustService(t *testing.T, name string, price int64) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(name, "", decimal.NewFromInt(price))
	require.NoError(t, err)
	return svc
}

func TestCreateService(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("FindByName", mock.Anything, "Cambio de frenos").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Service")).Return(nil)

	router := newCatalogRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Cambio de frenos",
		"unit_price": 15000,
	})
	req := httptest.NewRequest("POST", "/api/v1/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Name      string `json:"name"`
			UnitPrice string `json:"unit_price"`
			Active    bool   `json:"active"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Cambio de frenos", resp.Data.Name)
	assert.Equal(t, "15000", resp.Data.UnitPrice)
	assert.True(t, resp.Data.Active)
	repo.AssertExpectations(t)
}

func TestCreateServiceDuplicateName(t *testing.T) {
	repo := new(MockServiceRepository)
	existing := mustService(t, "Cambio de frenos", 15000)
	repo.On("FindByName", mock.Anything, "Cambio de frenos").Return(existing, nil)

	router := newCatalogRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Cambio de frenos",
		"unit_price": 15000,
	})
	req := httptest.NewRequest("POST", "/api/v1/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateServiceMissingName(t *testing.T) {
	repo := new(MockServiceRepository)
	router := newCatalogRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{"unit_price": 15000})
	req := httptest.NewRequest("POST", "/api/v1/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetServiceNotFound(t *testing.T) {
	repo := new(MockServiceRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest("GET", "/api/v1/services/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
}

func TestGetServiceInvalidID(t *testing.T) {
	repo := new(MockServiceRepository)
	router := newCatalogRouter(repo)

	req := httptest.NewRequest("GET", "/api/v1/services/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServices(t *testing.T) {
	repo := new(MockServiceRepository)
	frenos := mustService(t, "Cambio de frenos", 15000)
	alineado := mustService(t, "Alineado y balanceo", 7000)
	repo.On("FindActive", mock.Anything).Return([]catalog.Service{*alineado, *frenos}, nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest("GET", "/api/v1/services", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Alineado y balanceo", resp.Data[0].Name)
}

func TestDeactivateService(t *testing.T) {
	repo := new(MockServiceRepository)
	svc := mustService(t, "Cambio de frenos", 15000)
	repo.On("FindByID", mock.Anything, svc.ID).Return(svc, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Service")).Return(nil)

	router := newCatalogRouter(repo)

	req := httptest.NewRequest("DELETE", "/api/v1/services/"+svc.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.Active)
	repo.AssertExpectations(t)
}
