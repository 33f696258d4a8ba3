package http

import (
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/booking"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
	userhttp "github.com/nekogravitycat/pethaven-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing the caller's bookings.
type ListBookingsRequest struct {
	request.ListParams
	Role   string `form:"role" binding:"omitempty,oneof=owner host all"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type PetTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type BookingResponse struct {
	ID              string           `json:"id"`
	Owner           userhttp.UserTag `json:"owner"`
	Host            userhttp.UserTag `json:"host"`
	HostProfileID   string           `json:"host_profile_id,omitempty"`
	Pet             PetTag           `json:"pet"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	Nights          int              `json:"nights"`
	ServiceFee      float64          `json:"service_fee"`
	TotalPrice      float64          `json:"total_price"`
	Status          string           `json:"status"`
	SpecialRequests *string          `json:"special_requests"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		Owner:           userhttp.UserTag{ID: b.OwnerID, Name: b.OwnerName},
		Host:            userhttp.UserTag{ID: b.HostID, Name: b.HostName},
		HostProfileID:   b.HostProfileID,
		Pet:             PetTag{ID: b.PetID, Name: b.PetName, Type: b.PetType},
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Nights:          b.Nights,
		ServiceFee:      b.ServiceFee.Major(),
		TotalPrice:      b.TotalPrice.Major(),
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type QuoteRequest struct {
	HostID    string    `json:"host_id" binding:"required,uuid"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// Validate performs custom validation for QuoteRequest.
func (r *QuoteRequest) Validate() error {
	return booking.CheckStay(r.StartDate, r.EndDate)
}

type QuoteResponse struct {
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	BasePrice     float64 `json:"base_price"`
	ServiceFee    float64 `json:"service_fee"`
	TotalPrice    float64 `json:"total_price"`
}

func NewQuoteResponse(q booking.Quote) QuoteResponse {
	return QuoteResponse{
		Nights:        q.Nights,
		PricePerNight: q.NightlyRate.Major(),
		BasePrice:     q.BasePrice.Major(),
		ServiceFee:    q.ServiceFee.Major(),
		TotalPrice:    q.TotalPrice.Major(),
	}
}

// CreateBookingRequest references the host by host profile ID.
type CreateBookingRequest struct {
	HostID          string    `json:"host_id" binding:"required,uuid"`
	PetID           string    `json:"pet_id" binding:"required,uuid"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
	SpecialRequests *string   `json:"special_requests" binding:"omitempty,max=2000"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	return booking.CheckStay(r.StartDate, r.EndDate)
}

func (r *CreateBookingRequest) ToInput() booking.CreateRequest {
	return booking.CreateRequest{
		HostProfileID:   r.HostID,
		PetID:           r.PetID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		SpecialRequests: r.SpecialRequests,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED CANCELLED COMPLETED"`
}
