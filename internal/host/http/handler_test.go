package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/response"
)

const profileID = "33333333-3333-4333-8333-333333333333"

// stubService keeps a single profile owned by "host-user".
type stubService struct {
	host.Service
	profile    *host.Profile
	lastFilter host.Filter
	created    host.CreateRequest
}

func (s *stubService) GetByID(_ context.Context, id string) (*host.Profile, error) {
	if s.profile == nil || s.profile.ID != id {
		return nil, host.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubService) GetByUserID(_ context.Context, userID string) (*host.Profile, error) {
	if s.profile == nil || s.profile.UserID != userID {
		return nil, host.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubService) List(_ context.Context, f host.Filter) ([]*host.Profile, int, error) {
	s.lastFilter = f
	return []*host.Profile{s.profile}, 1, nil
}

func (s *stubService) Create(_ context.Context, userID string, req host.CreateRequest) (*host.Profile, error) {
	if s.profile != nil && s.profile.UserID == userID {
		return nil, host.ErrProfileExists
	}
	s.created = req
	return &host.Profile{ID: profileID, UserID: userID, PricePerNight: req.PricePerNight}, nil
}

func testAuth(c *gin.Context) {
	auth.SetIdentity(c, &auth.Claims{UserID: c.GetHeader("X-User-ID")})
	c.Next()
}

func newRouter(svc host.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, nil, 1<<20), testAuth)
	return r
}

func do(r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleProfile() *host.Profile {
	week := money.Cents(28000)
	return &host.Profile{
		ID:            profileID,
		UserID:        "host-user",
		City:          "Portland",
		PricePerNight: 4550,
		PricePerWeek:  &week,
		IsAvailable:   true,
		FirstName:     "Ada",
	}
}

func TestGetProfileRendersMajorUnits(t *testing.T) {
	r := newRouter(&stubService{profile: sampleProfile()})

	w := do(r, http.MethodGet, "/v1/hosts/"+profileID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 45.5, resp.PricePerNight, 1e-9)
	require.NotNil(t, resp.PricePerWeek)
	assert.InDelta(t, 280.0, *resp.PricePerWeek, 1e-9)
	assert.Equal(t, "Ada", resp.User.FirstName)
	assert.Nil(t, resp.Rating)
	assert.NotNil(t, resp.Photos)

	w = do(r, http.MethodGet, "/v1/hosts/44444444-4444-4444-8444-444444444444", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListParsesFilter(t *testing.T) {
	svc := &stubService{profile: sampleProfile()}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/hosts?city=port&pet_type=CAT&min_price=20&max_price=60.5&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "port", svc.lastFilter.City)
	assert.Equal(t, "CAT", svc.lastFilter.PetType)
	require.NotNil(t, svc.lastFilter.MinPrice)
	assert.Equal(t, money.Cents(2000), *svc.lastFilter.MinPrice)
	assert.Equal(t, money.Cents(6050), *svc.lastFilter.MaxPrice)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 20, svc.lastFilter.PageSize)

	var page response.PageResponse[ProfileResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)

	w = do(r, http.MethodGet, "/v1/hosts?pet_type=DRAGON", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProfile(t *testing.T) {
	svc := &stubService{profile: sampleProfile()}
	r := newRouter(svc)

	body := gin.H{
		"address": "1 Main St", "city": "Portland", "state": "OR", "zip_code": "97201",
		"price_per_night": 45.5, "accepted_pet_types": []string{"DOG"},
	}
	w := do(r, http.MethodPost, "/v1/hosts", "new-user", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, money.Cents(4550), svc.created.PricePerNight)
	assert.Equal(t, []string{"DOG"}, svc.created.AcceptedPetTypes)

	w = do(r, http.MethodPost, "/v1/hosts", "host-user", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["price_per_night"] = 0
	w = do(r, http.MethodPost, "/v1/hosts", "new-user", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["price_per_night"] = 9e14
	w = do(r, http.MethodPost, "/v1/hosts", "new-user", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMine(t *testing.T) {
	r := newRouter(&stubService{profile: sampleProfile()})

	w := do(r, http.MethodGet, "/v1/hosts/me/profile", "host-user", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/hosts/me/profile", "someone-else", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, "/v1/hosts/me", "host-user", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
