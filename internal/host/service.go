package host

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/pet"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/cache"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
)

type CreateRequest struct {
	Bio              *string
	Address          string
	City             string
	State            string
	ZipCode          string
	Latitude         *float64
	Longitude        *float64
	HomeType         *HomeType
	HasYard          bool
	AcceptedPetTypes []string
	MaxPets          *int
	PricePerNight    money.Cents
	PricePerWeek     *money.Cents
	Photos           []string
}

// UpdateRequest is a partial patch; nil fields are left unchanged.
type UpdateRequest struct {
	Bio              *string
	Address          *string
	City             *string
	State            *string
	ZipCode          *string
	Latitude         *float64
	Longitude        *float64
	HomeType         *HomeType
	HasYard          *bool
	AcceptedPetTypes *[]string
	MaxPets          *int
	PricePerNight    *money.Cents
	PricePerWeek     *money.Cents
	Photos           *[]string
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter Filter) ([]*Profile, int, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*Profile, error)
	Delete(ctx context.Context, userID string) error
	ToggleAvailability(ctx context.Context, userID string) (*Profile, error)
	AddPhoto(ctx context.Context, userID, url string) error

	// ApplyRating stores a recomputed review aggregate on the user's profile.
	ApplyRating(ctx context.Context, userID string, rating *float64, reviewCount int) error
}

type service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewService creates a host Service. Profiles read by ID or user ID go through c.
func NewService(repo Repository, c cache.Cache, ttl time.Duration) Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &service{repo: repo, cache: c, ttl: ttl}
}

func idKey(id string) string       { return "host:id:" + id }
func userKey(userID string) string { return "host:user:" + userID }
func keysFor(p *Profile) []string  { return []string{idKey(p.ID), userKey(p.UserID)} }
func trimmed(s string) string      { return strings.TrimSpace(s) }
func nonNil(s []string) []string   { return append(make([]string, 0, len(s)), s...) }

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Profile, error) {
	p := &Profile{
		UserID:           userID,
		Bio:              req.Bio,
		Address:          trimmed(req.Address),
		City:             trimmed(req.City),
		State:            trimmed(req.State),
		ZipCode:          trimmed(req.ZipCode),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		HomeType:         req.HomeType,
		HasYard:          req.HasYard,
		AcceptedPetTypes: dedupe(req.AcceptedPetTypes),
		MaxPets:          1,
		PricePerNight:    req.PricePerNight,
		PricePerWeek:     req.PricePerWeek,
		Photos:           nonNil(req.Photos),
		IsAvailable:      true,
	}
	if req.MaxPets != nil {
		p.MaxPets = *req.MaxPets
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userKey(userID))

	return s.repo.GetByID(ctx, p.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Profile, error) {
	return s.readThrough(ctx, idKey(id), func() (*Profile, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.readThrough(ctx, userKey(userID), func() (*Profile, error) {
		return s.repo.GetByUserID(ctx, userID)
	})
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, 0, ErrInvalidPriceRange
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, userID string, req UpdateRequest) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Address != nil {
		p.Address = trimmed(*req.Address)
	}
	if req.City != nil {
		p.City = trimmed(*req.City)
	}
	if req.State != nil {
		p.State = trimmed(*req.State)
	}
	if req.ZipCode != nil {
		p.ZipCode = trimmed(*req.ZipCode)
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.HomeType != nil {
		p.HomeType = req.HomeType
	}
	if req.HasYard != nil {
		p.HasYard = *req.HasYard
	}
	if req.AcceptedPetTypes != nil {
		p.AcceptedPetTypes = dedupe(*req.AcceptedPetTypes)
	}
	if req.MaxPets != nil {
		p.MaxPets = *req.MaxPets
	}
	if req.PricePerNight != nil {
		p.PricePerNight = *req.PricePerNight
	}
	if req.PricePerWeek != nil {
		p.PricePerWeek = req.PricePerWeek
	}
	if req.Photos != nil {
		p.Photos = nonNil(*req.Photos)
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, keysFor(p)...)
	return p, nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, keysFor(p)...)
	return nil
}

func (s *service) ToggleAvailability(ctx context.Context, userID string) (*Profile, error) {
	if err := s.repo.ToggleAvailability(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, keysFor(p)...)
	return p, nil
}

func (s *service) AddPhoto(ctx context.Context, userID, url string) error {
	return s.mutate(ctx, userID, func() error {
		return s.repo.AddPhoto(ctx, userID, url)
	})
}

func (s *service) ApplyRating(ctx context.Context, userID string, rating *float64, reviewCount int) error {
	return s.mutate(ctx, userID, func() error {
		return s.repo.UpdateRating(ctx, userID, rating, reviewCount)
	})
}

// mutate runs a single-row write keyed by user and drops the cached copies.
func (s *service) mutate(ctx context.Context, userID string, write func() error) error {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := write(); err != nil {
		return err
	}
	s.invalidate(ctx, keysFor(p)...)
	return nil
}

func (s *service) readThrough(ctx context.Context, key string, load func() (*Profile, error)) (*Profile, error) {
	var cached Profile
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		zap.L().Warn("host cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	p, err := load()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, p, s.ttl); err != nil {
		zap.L().Warn("host cache write failed", zap.String("key", key), zap.Error(err))
	}
	return p, nil
}

func (s *service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		zap.L().Warn("host cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func validate(p *Profile) error {
	if p.Address == "" || p.City == "" || p.State == "" || p.ZipCode == "" {
		return ErrAddressRequired
	}
	if p.PricePerNight <= 0 || p.PricePerNight > MaxPricePerNight {
		return ErrInvalidPrice
	}
	if p.PricePerWeek != nil && (*p.PricePerWeek <= 0 || *p.PricePerWeek > MaxPricePerNight*7) {
		return ErrInvalidPrice
	}
	if p.MaxPets < 1 {
		return ErrInvalidMaxPets
	}
	if p.HomeType != nil && !p.HomeType.IsValid() {
		return ErrInvalidHomeType
	}
	for _, t := range p.AcceptedPetTypes {
		if !pet.Type(t).IsValid() {
			return ErrInvalidPetType
		}
	}
	return nil
}

func dedupe(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
