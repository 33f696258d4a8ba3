package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/pet"
)

// PetFinder loads a pet regardless of owner; a missing pet is (nil, nil).
type PetFinder interface {
	Find(ctx context.Context, id string) (*pet.Pet, error)
}

// HostReader loads a host profile by its ID.
type HostReader interface {
	GetByID(ctx context.Context, id string) (*host.Profile, error)
}

type CreateRequest struct {
	HostProfileID   string
	PetID           string
	StartDate       time.Time
	EndDate         time.Time
	SpecialRequests *string
}

type Service interface {
	Quote(ctx context.Context, hostProfileID string, start, end time.Time) (Quote, error)
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Booking, error)
	Get(ctx context.Context, id, actorID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id, actorID string, target Status) (*Booking, error)
	Cancel(ctx context.Context, id, actorID string) (*Booking, error)
}

type service struct {
	repo  Repository
	pets  PetFinder
	hosts HostReader
	now   func() time.Time
}

func NewService(repo Repository, pets PetFinder, hosts HostReader) Service {
	return &service{
		repo:  repo,
		pets:  pets,
		hosts: hosts,
		now:   time.Now,
	}
}

func (s *service) checkDates(start, end time.Time) error {
	if err := CheckStay(start, end); err != nil {
		return err
	}
	if start.Before(s.now()) {
		return ErrStartDatePast
	}
	return nil
}

// findHost maps a missing profile to nil so eligibility can classify it.
func (s *service) findHost(ctx context.Context, id string) (*host.Profile, error) {
	p, err := s.hosts.GetByID(ctx, id)
	if errors.Is(err, host.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *service) Quote(ctx context.Context, hostProfileID string, start, end time.Time) (Quote, error) {
	if err := s.checkDates(start, end); err != nil {
		return Quote{}, err
	}

	profile, err := s.findHost(ctx, hostProfileID)
	if err != nil {
		return Quote{}, err
	}
	if profile == nil {
		return Quote{}, ErrHostNotFound
	}

	return ComputeQuote(start, end, profile.PricePerNight)
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Booking, error) {
	if err := s.checkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	p, err := s.pets.Find(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	profile, err := s.findHost(ctx, req.HostProfileID)
	if err != nil {
		return nil, err
	}

	if err := CheckEligibility(p, profile, ownerID); err != nil {
		return nil, err
	}

	q, err := ComputeQuote(req.StartDate, req.EndDate, profile.PricePerNight)
	if err != nil {
		return nil, err
	}

	var special *string
	if req.SpecialRequests != nil {
		if v := strings.TrimSpace(*req.SpecialRequests); v != "" {
			special = &v
		}
	}

	b := &Booking{
		OwnerID:         ownerID,
		HostID:          profile.UserID,
		HostProfileID:   profile.ID,
		PetID:           p.ID,
		StartDate:       req.StartDate.UTC(),
		EndDate:         req.EndDate.UTC(),
		Nights:          q.Nights,
		TotalPrice:      q.TotalPrice,
		ServiceFee:      q.ServiceFee,
		Status:          StatusPending,
		SpecialRequests: special,
		PetName:         p.Name,
		PetType:         string(p.Type),
		HostName:        strings.TrimSpace(profile.FirstName + " " + profile.LastName),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.reload(ctx, b), nil
}

// reload fetches the joined display fields, such as the owner's name, after an insert.
func (s *service) reload(ctx context.Context, b *Booking) *Booking {
	full, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		zap.L().Warn("reload booking failed", zap.String("booking_id", b.ID), zap.Error(err))
		return b
	}
	return full
}

func (s *service) Get(ctx context.Context, id, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != b.OwnerID && actorID != b.HostID {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id, actorID string, target Status) (*Booking, error) {
	return s.apply(ctx, id, func(b *Booking) (Status, error) {
		return TransitionStatus(b, actorID, target)
	})
}

func (s *service) Cancel(ctx context.Context, id, actorID string) (*Booking, error) {
	return s.apply(ctx, id, func(b *Booking) (Status, error) {
		return Cancel(b, actorID)
	})
}

// apply decides the next status from a fresh read and writes it conditionally.
func (s *service) apply(ctx context.Context, id string, decide func(*Booking) (Status, error)) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := decide(b)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
		return nil, err
	}
	b.Status = next
	b.UpdatedAt = s.now().UTC()
	return b, nil
}
