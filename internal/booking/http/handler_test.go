package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/booking"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/response"
)

const (
	bookingID = "55555555-5555-4555-8555-555555555555"
	profileID = "66666666-6666-4666-8666-666666666666"
	petID     = "77777777-7777-4777-8777-777777777777"
)

// stubService applies the real status rules to one in-memory booking.
type stubService struct {
	booking.Service
	b          *booking.Booking
	conflict   bool
	lastFilter booking.Filter
}

func (s *stubService) Quote(_ context.Context, _ string, start, end time.Time) (booking.Quote, error) {
	return booking.ComputeQuote(start, end, money.FromMajor(45))
}

func (s *stubService) UpdateStatus(_ context.Context, _ string, actorID string, target booking.Status) (*booking.Booking, error) {
	next, err := booking.TransitionStatus(s.b, actorID, target)
	if err != nil {
		return nil, err
	}
	if s.conflict {
		return nil, booking.ErrStatusConflict
	}
	s.b.Status = next
	return s.b, nil
}

func (s *stubService) Cancel(_ context.Context, _ string, actorID string) (*booking.Booking, error) {
	next, err := booking.Cancel(s.b, actorID)
	if err != nil {
		return nil, err
	}
	s.b.Status = next
	return s.b, nil
}

func (s *stubService) List(_ context.Context, f booking.Filter) ([]*booking.Booking, int, error) {
	s.lastFilter = f
	return []*booking.Booking{s.b}, 1, nil
}

func (s *stubService) Create(_ context.Context, ownerID string, req booking.CreateRequest) (*booking.Booking, error) {
	return nil, booking.ErrPetTypeRejected
}

func testAuth(c *gin.Context) {
	auth.SetIdentity(c, &auth.Claims{UserID: c.GetHeader("X-User-ID")})
	c.Next()
}

func setup() (*gin.Engine, *stubService) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{b: &booking.Booking{
		ID: bookingID, OwnerID: "owner", HostID: "host", Status: booking.StatusPending,
		TotalPrice: 14850, ServiceFee: 1350,
	}}
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), testAuth)
	return r, svc
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

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestQuoteEndpoint(t *testing.T) {
	r, _ := setup()
	start := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)

	w := do(r, http.MethodPost, "/v1/bookings/quote", "owner", gin.H{
		"host_id": profileID, "start_date": start, "end_date": start.AddDate(0, 0, 3),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var q QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 3, q.Nights)
	assert.InDelta(t, 45.0, q.PricePerNight, 1e-9)
	assert.InDelta(t, 135.0, q.BasePrice, 1e-9)
	assert.InDelta(t, 13.5, q.ServiceFee, 1e-9)
	assert.InDelta(t, 148.5, q.TotalPrice, 1e-9)

	w = do(r, http.MethodPost, "/v1/bookings/quote", "owner", gin.H{
		"host_id": profileID, "start_date": start, "end_date": start,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/bookings/quote", "owner", gin.H{
		"host_id": profileID, "start_date": start, "end_date": start.AddDate(0, 0, booking.MaxStayNights+1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "365 nights")
}

func TestStatusEndpointMapsErrors(t *testing.T) {
	r, svc := setup()
	path := "/v1/bookings/" + bookingID + "/status"

	w := do(r, http.MethodPatch, path, "owner", gin.H{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, booking.ErrOwnerRestricted.Message, errorOf(t, w))

	w = do(r, http.MethodPatch, path, "stranger", gin.H{"status": "CANCELLED"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPatch, path, "host", gin.H{"status": "PENDING"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "PENDING is never a valid target")

	svc.conflict = true
	w = do(r, http.MethodPatch, path, "host", gin.H{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusConflict, w.Code)
	svc.conflict = false

	w = do(r, http.MethodPatch, path, "host", gin.H{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.InDelta(t, 148.5, resp.TotalPrice, 1e-9)

	w = do(r, http.MethodPatch, path, "host", gin.H{"status": "CANCELLED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.ErrBookingClosed.Message, errorOf(t, w))
}

func TestCancelEndpoint(t *testing.T) {
	r, _ := setup()
	path := "/v1/bookings/" + bookingID

	w := do(r, http.MethodDelete, path, "owner", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, path, "owner", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.ErrAlreadyCancelled.Message, errorOf(t, w))
}

func TestListAndCreate(t *testing.T) {
	r, svc := setup()

	w := do(r, http.MethodGet, "/v1/bookings?role=host&status=PENDING", "host", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.PartyHost, svc.lastFilter.Party)
	assert.Equal(t, booking.StatusPending, svc.lastFilter.Status)
	assert.Equal(t, "host", svc.lastFilter.UserID)

	w = do(r, http.MethodGet, "/v1/bookings", "host", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.PartyAll, svc.lastFilter.Party)

	w = do(r, http.MethodGet, "/v1/bookings?role=admin", "host", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	start := time.Now().AddDate(0, 0, 10)
	w = do(r, http.MethodPost, "/v1/bookings", "owner", gin.H{
		"host_id": profileID, "pet_id": petID, "start_date": start, "end_date": start.AddDate(0, 0, 2),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.ErrPetTypeRejected.Message, errorOf(t, w))
}
