package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jenga/config"
	"jenga/middleware"
	"jenga/models"
	"jenga/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Create(ctx context.Context, providerID, providerName string, in models.ServiceInput) (*models.Service, error) {
	args := m.Called(ctx, providerID, providerName, in)
	if s := args.Get(0); s != nil {
		return s.(*models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) GetByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) List(ctx context.Context, filter models.ServiceListFilter, page models.PageOptions) ([]models.Service, models.Pagination, error) {
	args := m.Called(ctx, filter, page)
	var services []models.Service
	if s := args.Get(0); s != nil {
		services = s.([]models.Service)
	}
	return services, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockCatalog) ListByProvider(ctx context.Context, providerID string, includeInactive bool, page models.PageOptions) ([]models.Service, models.Pagination, error) {
	args := m.Called(ctx, providerID, includeInactive, page)
	var services []models.Service
	if s := args.Get(0); s != nil {
		services = s.([]models.Service)
	}
	return services, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockCatalog) Update(ctx context.Context, id, actingProviderID string, fields map[string]interface{}) (*models.Service, error) {
	args := m.Called(ctx, id, actingProviderID, fields)
	if s := args.Get(0); s != nil {
		return s.(*models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, id, actingProviderID string) (*models.DeleteResult, error) {
	args := m.Called(ctx, id, actingProviderID)
	if r := args.Get(0); r != nil {
		return r.(*models.DeleteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) UpdateRating(ctx context.Context, serviceID string, ratingAverage float64, reviewsCount int) error {
	args := m.Called(ctx, serviceID, ratingAverage, reviewsCount)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, page models.PageOptions) ([]models.User, bool, error) {
	args := m.Called(ctx, page)
	var users []models.User
	if u := args.Get(0); u != nil {
		users = u.([]models.User)
	}
	return users, args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	m.Run()
}

func providerServicesRouter(cat *mockCatalog, users *mockUserRepo) *gin.Engine {
	h := NewServiceHandler(cat)
	router := gin.New()
	router.GET("/api/services/provider/:providerId", middleware.OptionalJWTAuth(users), h.GetProviderServicesHandler)
	return router
}

func TestProviderServicesOwnerSeesInactive(t *testing.T) {
	cat := new(mockCatalog)
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, "provider-1").Return(&models.User{
		ID:   "provider-1",
		Name: "Wanjiku",
		Role: models.RoleProvider,
	}, nil)
	cat.On("ListByProvider", mock.Anything, "provider-1", true, models.PageOptions{}).
		Return([]models.Service{}, models.Pagination{Limit: models.DefaultPageLimit}, nil)

	token, err := utils.GenerateToken("provider-1", models.RoleProvider, "Wanjiku")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/services/provider/provider-1?includeInactive=true", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	providerServicesRouter(cat, users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cat.AssertExpectations(t)
}

func TestProviderServicesStrangerCannotSeeInactive(t *testing.T) {
	cat := new(mockCatalog)
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, "client-9").Return(&models.User{
		ID:   "client-9",
		Name: "Amina",
		Role: models.RoleClient,
	}, nil)
	cat.On("ListByProvider", mock.Anything, "provider-1", false, models.PageOptions{}).
		Return([]models.Service{}, models.Pagination{Limit: models.DefaultPageLimit}, nil)

	token, err := utils.GenerateToken("client-9", models.RoleClient, "Amina")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/services/provider/provider-1?includeInactive=true", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	providerServicesRouter(cat, users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cat.AssertExpectations(t)
}

func TestProviderServicesAnonymousDefaultsToActive(t *testing.T) {
	cat := new(mockCatalog)
	users := new(mockUserRepo)

	cat.On("ListByProvider", mock.Anything, "provider-1", false, models.PageOptions{}).
		Return([]models.Service{}, models.Pagination{Limit: models.DefaultPageLimit}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/services/provider/provider-1?includeInactive=true", nil)
	w := httptest.NewRecorder()
	providerServicesRouter(cat, users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cat.AssertExpectations(t)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
