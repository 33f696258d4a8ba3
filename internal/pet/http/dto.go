package http

import (
	"errors"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pet"
)

type PetResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Breed        *string   `json:"breed"`
	Age          *int      `json:"age"`
	Weight       *float64  `json:"weight"`
	Gender       *string   `json:"gender"`
	Description  *string   `json:"description"`
	SpecialNeeds *string   `json:"special_needs"`
	PhotoURL     *string   `json:"photo_url"`
	IsNeutered   bool      `json:"is_neutered"`
	Vaccinated   bool      `json:"vaccinated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewPetResponse(p *pet.Pet) PetResponse {
	var gender *string
	if p.Gender != nil {
		g := string(*p.Gender)
		gender = &g
	}
	return PetResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Type:         string(p.Type),
		Breed:        p.Breed,
		Age:          p.Age,
		Weight:       p.Weight,
		Gender:       gender,
		Description:  p.Description,
		SpecialNeeds: p.SpecialNeeds,
		PhotoURL:     p.PhotoURL,
		IsNeutered:   p.IsNeutered,
		Vaccinated:   p.Vaccinated,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type CreatePetRequest struct {
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=DOG CAT BIRD RABBIT FISH OTHER"`
	Breed        *string  `json:"breed"`
	Age          *int     `json:"age" binding:"omitempty,min=0"`
	Weight       *float64 `json:"weight" binding:"omitempty,gt=0"`
	Gender       *string  `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Description  *string  `json:"description"`
	SpecialNeeds *string  `json:"special_needs"`
	PhotoURL     *string  `json:"photo_url" binding:"omitempty,url"`
	IsNeutered   bool     `json:"is_neutered"`
	Vaccinated   bool     `json:"vaccinated"`
}

func (r *CreatePetRequest) ToInput() pet.CreateRequest {
	return pet.CreateRequest{
		Name:         r.Name,
		Type:         pet.Type(r.Type),
		Breed:        r.Breed,
		Age:          r.Age,
		Weight:       r.Weight,
		Gender:       toGender(r.Gender),
		Description:  r.Description,
		SpecialNeeds: r.SpecialNeeds,
		PhotoURL:     r.PhotoURL,
		IsNeutered:   r.IsNeutered,
		Vaccinated:   r.Vaccinated,
	}
}

// UpdatePetRequest is the partial form of CreatePetRequest.
type UpdatePetRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Type         *string  `json:"type" binding:"omitempty,oneof=DOG CAT BIRD RABBIT FISH OTHER"`
	Breed        *string  `json:"breed"`
	Age          *int     `json:"age" binding:"omitempty,min=0"`
	Weight       *float64 `json:"weight" binding:"omitempty,gt=0"`
	Gender       *string  `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Description  *string  `json:"description"`
	SpecialNeeds *string  `json:"special_needs"`
	PhotoURL     *string  `json:"photo_url" binding:"omitempty,url"`
	IsNeutered   *bool    `json:"is_neutered"`
	Vaccinated   *bool    `json:"vaccinated"`
}

func (r *UpdatePetRequest) Validate() error {
	if r.Name == nil && r.Type == nil && r.Breed == nil && r.Age == nil && r.Weight == nil &&
		r.Gender == nil && r.Description == nil && r.SpecialNeeds == nil && r.PhotoURL == nil &&
		r.IsNeutered == nil && r.Vaccinated == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}

func (r *UpdatePetRequest) ToInput() pet.UpdateRequest {
	var t *pet.Type
	if r.Type != nil {
		v := pet.Type(*r.Type)
		t = &v
	}
	return pet.UpdateRequest{
		Name:         r.Name,
		Type:         t,
		Breed:        r.Breed,
		Age:          r.Age,
		Weight:       r.Weight,
		Gender:       toGender(r.Gender),
		Description:  r.Description,
		SpecialNeeds: r.SpecialNeeds,
		PhotoURL:     r.PhotoURL,
		IsNeutered:   r.IsNeutered,
		Vaccinated:   r.Vaccinated,
	}
}

func toGender(s *string) *pet.Gender {
	if s == nil {
		return nil
	}
	g := pet.Gender(*s)
	return &g
}
