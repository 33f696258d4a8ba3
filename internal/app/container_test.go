package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/cache"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/storage"
	"github.com/nekogravitycat/pethaven-backend/migrations"
)

// newTestContainer builds the full app against TEST_DB_DSN on a fresh schema.
func newTestContainer(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, name := range []string{"0001_init.down.sql", "0001_init.up.sql"} {
		sql, err := migrations.FS.ReadFile(name)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, name)
	}

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	c := NewContainer(Config{
		Logger:         zap.NewNop(),
		DBPool:         pool,
		Cache:          cache.NewMemory(),
		CacheTTL:       time.Minute,
		Storage:        store,
		JWTSecret:      "integration-secret",
		JWTTTL:         30 * time.Minute,
		BcryptCost:     4, // Lower cost for testing purposes
		MaxUploadBytes: 1 << 20,
	})
	return c.Router
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c client) call(method, path, token string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (c client) signUp(email string) (token, id string) {
	c.t.Helper()
	code := c.call(http.MethodPost, "/v1/auth/register", "", gin.H{
		"email": email, "password": "correct-horse", "first_name": "Test", "last_name": "User",
	}, nil)
	require.Equal(c.t, http.StatusCreated, code)

	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	code = c.call(http.MethodPost, "/v1/auth/login", "", gin.H{"email": email, "password": "correct-horse"}, &login)
	require.Equal(c.t, http.StatusOK, code)
	return login.AccessToken, login.User.ID
}

type idBody struct {
	ID string `json:"id"`
}

func TestBookingAndReviewFlow(t *testing.T) {
	c := client{t: t, router: newTestContainer(t)}

	ownerToken, _ := c.signUp("owner@example.com")
	hostToken, hostUserID := c.signUp("host@example.com")

	var profile idBody
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/v1/hosts", hostToken, gin.H{
		"address": "1 Main St", "city": "Portland", "state": "OR", "zip_code": "97201",
		"accepted_pet_types": []string{"CAT"}, "price_per_night": 45,
	}, &profile))

	var cat, dog idBody
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/v1/pets", ownerToken, gin.H{"name": "Mochi", "type": "CAT"}, &cat))
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/v1/pets", ownerToken, gin.H{"name": "Rex", "type": "DOG"}, &dog))

	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 3)

	var quote struct {
		Nights     int     `json:"nights"`
		ServiceFee float64 `json:"service_fee"`
		TotalPrice float64 `json:"total_price"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/v1/bookings/quote", ownerToken, gin.H{
		"host_id": profile.ID, "start_date": start, "end_date": end,
	}, &quote))
	assert.Equal(t, 3, quote.Nights)
	assert.InDelta(t, 13.5, quote.ServiceFee, 1e-9)
	assert.InDelta(t, 148.5, quote.TotalPrice, 1e-9)

	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/v1/bookings", ownerToken, gin.H{
		"host_id": profile.ID, "pet_id": dog.ID, "start_date": start, "end_date": end,
	}, nil), "host only accepts cats")

	var b idBody
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/v1/bookings", ownerToken, gin.H{
		"host_id": profile.ID, "pet_id": cat.ID, "start_date": start, "end_date": end,
	}, &b))

	statusPath := "/v1/bookings/" + b.ID + "/status"
	assert.Equal(t, http.StatusForbidden, c.call(http.MethodPatch, statusPath, ownerToken, gin.H{"status": "CONFIRMED"}, nil))
	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/v1/reviews", ownerToken, gin.H{"booking_id": b.ID, "rating": 4}, nil))
	require.Equal(t, http.StatusOK, c.call(http.MethodPatch, statusPath, hostToken, gin.H{"status": "CONFIRMED"}, nil))
	require.Equal(t, http.StatusOK, c.call(http.MethodPatch, statusPath, hostToken, gin.H{"status": "COMPLETED"}, nil))
	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodDelete, "/v1/bookings/"+b.ID, ownerToken, nil, nil))

	assert.Equal(t, http.StatusConflict, c.call(http.MethodDelete, "/v1/pets/"+cat.ID, ownerToken, nil, nil))

	var review idBody
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/v1/reviews", ownerToken, gin.H{"booking_id": b.ID, "rating": 4}, &review))
	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/v1/reviews", ownerToken, gin.H{"booking_id": b.ID, "rating": 5}, nil))

	var listed struct {
		Rating      *float64 `json:"rating"`
		ReviewCount int      `json:"review_count"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/v1/hosts/"+profile.ID, "", nil, &listed))
	require.NotNil(t, listed.Rating)
	assert.Equal(t, 4.0, *listed.Rating)
	assert.Equal(t, 1, listed.ReviewCount)

	var stats struct {
		Stats struct {
			Count int `json:"count"`
		} `json:"stats"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/v1/reviews/user/"+hostUserID, "", nil, &stats))
	assert.Equal(t, 1, stats.Stats.Count)

	require.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/v1/reviews/"+review.ID, ownerToken, nil, nil))
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/v1/hosts/"+profile.ID, "", nil, &listed))
	assert.Nil(t, listed.Rating)
	assert.Zero(t, listed.ReviewCount)
}
