package review

import (
	"math"

	"github.com/nekogravitycat/pethaven-backend/internal/booking"
)

// RecomputeHostRating summarizes every review of one subject.
// Reviews for other subjects are ignored. The mean is rounded to one decimal.
func RecomputeHostRating(subjectID string, reviews []*Review) Aggregate {
	var sum, n int
	for _, r := range reviews {
		if r.SubjectID != subjectID {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return Aggregate{}
	}

	rating := roundRating(float64(sum) / float64(n))
	return Aggregate{Rating: &rating, ReviewCount: n}
}

func roundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// CreateReview checks that actorID may review b and builds the review.
// exists reports whether b already has a review.
func CreateReview(b *booking.Booking, in Input, actorID string, exists bool) (*Review, error) {
	if actorID != b.OwnerID {
		return nil, ErrNotReviewAuthor
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}
	if exists {
		return nil, ErrReviewAlreadyExists
	}
	if !validRating(in.Rating) {
		return nil, ErrInvalidRating
	}

	return &Review{
		BookingID: b.ID,
		AuthorID:  actorID,
		SubjectID: b.HostID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}, nil
}
