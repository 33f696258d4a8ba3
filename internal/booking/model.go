package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrStartDatePast    = apperror.New(http.StatusBadRequest, "start date must be in the future")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidRate      = apperror.New(http.StatusBadRequest, "nightly rate must be positive and within the allowed maximum")
	ErrStayTooLong      = apperror.New(http.StatusBadRequest, "stay must not exceed 365 nights")
	ErrPriceOverflow    = apperror.New(http.StatusBadRequest, "stay price is too large")

	ErrPetNotOwned      = apperror.New(http.StatusBadRequest, "pet not found or does not belong to you")
	ErrHostNotFound     = apperror.New(http.StatusNotFound, "host not found")
	ErrHostUnavailable  = apperror.New(http.StatusBadRequest, "host is not currently available")
	ErrPetTypeRejected  = apperror.New(http.StatusBadRequest, "host does not accept this type of pet")
	ErrNotAuthorized    = apperror.New(http.StatusForbidden, "not authorized to access this booking")
	ErrOwnerRestricted  = apperror.New(http.StatusForbidden, "pet owners can only cancel bookings")
	ErrBookingClosed    = apperror.New(http.StatusBadRequest, "booking is already closed")
	ErrAlreadyCancelled = apperror.New(http.StatusBadRequest, "booking is already cancelled")
	ErrStatusConflict   = apperror.New(http.StatusConflict, "booking status changed concurrently, reload and retry")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is a stay of one pet with one host. HostID is the host's user ID.
type Booking struct {
	ID              string
	OwnerID         string
	HostID          string
	HostProfileID   string
	PetID           string
	StartDate       time.Time
	EndDate         time.Time
	Nights          int
	TotalPrice      money.Cents
	ServiceFee      money.Cents
	Status          Status
	SpecialRequests *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined for display.
	PetName   string
	PetType   string
	OwnerName string
	HostName  string
}

// Party is which side of a booking a listing is for.
type Party string

const (
	PartyOwner Party = "owner"
	PartyHost  Party = "host"
	PartyAll   Party = "all"
)

type Filter struct {
	UserID   string
	Party    Party
	Status   Status
	Page     int
	PageSize int
}
