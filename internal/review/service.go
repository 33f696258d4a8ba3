package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/booking"
	"github.com/nekogravitycat/pethaven-backend/internal/host"
)

// BookingReader loads a booking without access checks.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*booking.Booking, error)
}

// RatingWriter stores a subject's aggregate on their host profile.
type RatingWriter interface {
	ApplyRating(ctx context.Context, userID string, rating *float64, reviewCount int) error
}

type Service interface {
	Create(ctx context.Context, actorID, bookingID string, in Input) (*Review, error)
	Update(ctx context.Context, id, actorID string, patch Patch) (*Review, error)
	Delete(ctx context.Context, id, actorID string) error
	ListForSubject(ctx context.Context, subjectID string) ([]*Review, Aggregate, error)
	GetForBooking(ctx context.Context, bookingID, actorID string) (*Review, error)
}

type service struct {
	repo     Repository
	bookings BookingReader
	ratings  RatingWriter
}

func NewService(repo Repository, bookings BookingReader, ratings RatingWriter) Service {
	return &service{repo: repo, bookings: bookings, ratings: ratings}
}

func (s *service) Create(ctx context.Context, actorID, bookingID string, in Input) (*Review, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	r, err := CreateReview(b, in, actorID, exists)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.recompute(ctx, r.SubjectID)
	return s.reload(ctx, r)
}

func (s *service) Update(ctx context.Context, id, actorID string, patch Patch) (*Review, error) {
	r, err := s.authored(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if patch.Rating == nil && patch.Comment == nil {
		return nil, ErrEmptyUpdate
	}
	if patch.Rating != nil && !validRating(*patch.Rating) {
		return nil, ErrInvalidRating
	}

	ratingChanged := patch.Rating != nil && *patch.Rating != r.Rating
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		r.Comment = patch.Comment
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if ratingChanged {
		s.recompute(ctx, r.SubjectID)
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	r, err := s.authored(ctx, id, actorID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, r.SubjectID)
	return nil
}

func (s *service) ListForSubject(ctx context.Context, subjectID string) ([]*Review, Aggregate, error) {
	reviews, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, Aggregate{}, err
	}
	return reviews, RecomputeHostRating(subjectID, reviews), nil
}

// GetForBooking is visible to the booking's owner and host only.
func (s *service) GetForBooking(ctx context.Context, bookingID, actorID string) (*Review, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.OwnerID && actorID != b.HostID {
		return nil, ErrNotAuthorized
	}
	return s.repo.GetByBookingID(ctx, bookingID)
}

func (s *service) authored(ctx context.Context, id, actorID string) (*Review, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.AuthorID != actorID {
		return nil, ErrNotAuthorized
	}
	return r, nil
}

// reload fetches the joined display fields after an insert.
func (s *service) reload(ctx context.Context, r *Review) (*Review, error) {
	full, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		zap.L().Warn("reload review failed", zap.String("review_id", r.ID), zap.Error(err))
		return r, nil
	}
	return full, nil
}

// recompute rebuilds the subject's aggregate from all of their reviews.
// The review write has already committed, so failures here are logged and
// repaired by the next write for the same subject.
func (s *service) recompute(ctx context.Context, subjectID string) {
	reviews, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		zap.L().Error("load reviews for aggregate failed", zap.String("subject_id", subjectID), zap.Error(err))
		return
	}

	agg := RecomputeHostRating(subjectID, reviews)
	err = s.ratings.ApplyRating(ctx, subjectID, agg.Rating, agg.ReviewCount)
	switch {
	case errors.Is(err, host.ErrNotFound):
		zap.L().Info("review subject has no host profile", zap.String("subject_id", subjectID))
	case err != nil:
		zap.L().Error("apply host rating failed", zap.String("subject_id", subjectID), zap.Error(err))
	}
}
