package pet

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
)

type CreateRequest struct {
	Name         string
	Type         Type
	Breed        *string
	Age          *int
	Weight       *float64
	Gender       *Gender
	Description  *string
	SpecialNeeds *string
	PhotoURL     *string
	IsNeutered   bool
	Vaccinated   bool
}

// UpdateRequest is a partial patch; nil fields are left unchanged.
type UpdateRequest struct {
	Name         *string
	Type         *Type
	Breed        *string
	Age          *int
	Weight       *float64
	Gender       *Gender
	Description  *string
	SpecialNeeds *string
	PhotoURL     *string
	IsNeutered   *bool
	Vaccinated   *bool
}

// Service manages pets on behalf of their owner. A pet owned by someone else
// is reported as ErrNotFound so its existence is not revealed.
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Pet, error)
	List(ctx context.Context, ownerID string, params request.ListParams) ([]*Pet, int, error)
	Get(ctx context.Context, ownerID, id string) (*Pet, error)
	Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Pet, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetPhoto(ctx context.Context, ownerID, id, url string) error

	// Find loads a pet regardless of owner. A missing pet yields (nil, nil).
	Find(ctx context.Context, id string) (*Pet, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Pet, error) {
	p := &Pet{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Type:         req.Type,
		Breed:        req.Breed,
		Age:          req.Age,
		Weight:       req.Weight,
		Gender:       req.Gender,
		Description:  req.Description,
		SpecialNeeds: req.SpecialNeeds,
		PhotoURL:     req.PhotoURL,
		IsNeutered:   req.IsNeutered,
		Vaccinated:   req.Vaccinated,
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, ownerID string, params request.ListParams) ([]*Pet, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, params)
}

func (s *service) Get(ctx context.Context, ownerID, id string) (*Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Pet, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Breed != nil {
		p.Breed = req.Breed
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Weight != nil {
		p.Weight = req.Weight
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.SpecialNeeds != nil {
		p.SpecialNeeds = req.SpecialNeeds
	}
	if req.PhotoURL != nil {
		p.PhotoURL = req.PhotoURL
	}
	if req.IsNeutered != nil {
		p.IsNeutered = *req.IsNeutered
	}
	if req.Vaccinated != nil {
		p.Vaccinated = *req.Vaccinated
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetPhoto(ctx context.Context, ownerID, id, url string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.SetPhoto(ctx, id, url)
}

func (s *service) Find(ctx context.Context, id string) (*Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func validate(p *Pet) error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if !p.Type.IsValid() {
		return ErrInvalidType
	}
	if p.Gender != nil && !p.Gender.IsValid() {
		return ErrInvalidGender
	}
	return nil
}
