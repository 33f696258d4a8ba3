package review

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "review not found")
	ErrInvalidRating       = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrEmptyUpdate         = apperror.New(http.StatusBadRequest, "at least one field must be provided")
	ErrNotReviewAuthor     = apperror.New(http.StatusForbidden, "only the pet owner can review this booking")
	ErrBookingNotCompleted = apperror.New(http.StatusBadRequest, "can only review completed bookings")
	ErrReviewAlreadyExists = apperror.New(http.StatusBadRequest, "review already exists for this booking")
	ErrNotAuthorized       = apperror.New(http.StatusForbidden, "not authorized to access this review")
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string
	BookingID string
	AuthorID  string
	SubjectID string
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display.
	AuthorName      string
	AuthorAvatarURL *string
	SubjectName     string
	PetName         string
	PetType         string
	StayStart       time.Time
	StayEnd         time.Time
}

// Aggregate is the rating summary stored on a host profile.
// Rating is nil exactly when ReviewCount is zero.
type Aggregate struct {
	Rating      *float64
	ReviewCount int
}

type Input struct {
	Rating  int
	Comment *string
}

type Patch struct {
	Rating  *int
	Comment *string
}
