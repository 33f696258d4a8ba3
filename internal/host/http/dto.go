package http

import (
	"errors"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
)

// HostUser is the public part of the profile owner's account.
type HostUser struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

// ProfileResponse renders money in major units.
type ProfileResponse struct {
	ID               string    `json:"id"`
	User             HostUser  `json:"user"`
	Bio              *string   `json:"bio"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	HomeType         *string   `json:"home_type"`
	HasYard          bool      `json:"has_yard"`
	AcceptedPetTypes []string  `json:"accepted_pet_types"`
	MaxPets          int       `json:"max_pets"`
	PricePerNight    float64   `json:"price_per_night"`
	PricePerWeek     *float64  `json:"price_per_week"`
	Photos           []string  `json:"photos"`
	IsAvailable      bool      `json:"is_available"`
	Rating           *float64  `json:"rating"`
	ReviewCount      int       `json:"review_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewProfileResponse(p *host.Profile) ProfileResponse {
	var homeType *string
	if p.HomeType != nil {
		h := string(*p.HomeType)
		homeType = &h
	}
	var perWeek *float64
	if p.PricePerWeek != nil {
		w := p.PricePerWeek.Major()
		perWeek = &w
	}
	accepted := p.AcceptedPetTypes
	if accepted == nil {
		accepted = []string{}
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}

	return ProfileResponse{
		ID: p.ID,
		User: HostUser{
			ID:        p.UserID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			AvatarURL: p.AvatarURL,
		},
		Bio:              p.Bio,
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		HomeType:         homeType,
		HasYard:          p.HasYard,
		AcceptedPetTypes: accepted,
		MaxPets:          p.MaxPets,
		PricePerNight:    p.PricePerNight.Major(),
		PricePerWeek:     perWeek,
		Photos:           photos,
		IsAvailable:      p.IsAvailable,
		Rating:           p.Rating,
		ReviewCount:      p.ReviewCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ListHostsRequest holds the public search query.
type ListHostsRequest struct {
	request.ListParams
	City     string   `form:"city"`
	PetType  string   `form:"pet_type" binding:"omitempty,oneof=DOG CAT BIRD RABBIT FISH OTHER"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gte=0"`
}

func (r *ListHostsRequest) ToFilter() host.Filter {
	return host.Filter{
		City:     r.City,
		PetType:  r.PetType,
		MinPrice: centsPtr(r.MinPrice),
		MaxPrice: centsPtr(r.MaxPrice),
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

type CreateProfileRequest struct {
	Bio              *string  `json:"bio"`
	Address          string   `json:"address" binding:"required"`
	City             string   `json:"city" binding:"required"`
	State            string   `json:"state" binding:"required"`
	ZipCode          string   `json:"zip_code" binding:"required"`
	Latitude         *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude" binding:"omitempty,longitude"`
	HomeType         *string  `json:"home_type" binding:"omitempty,oneof=APARTMENT HOUSE CONDO FARM"`
	HasYard          bool     `json:"has_yard"`
	AcceptedPetTypes []string `json:"accepted_pet_types" binding:"omitempty,dive,oneof=DOG CAT BIRD RABBIT FISH OTHER"`
	MaxPets          *int     `json:"max_pets" binding:"omitempty,min=1"`
	PricePerNight    float64  `json:"price_per_night" binding:"required,gt=0,lte=100000"`
	PricePerWeek     *float64 `json:"price_per_week" binding:"omitempty,gt=0,lte=700000"`
	Photos           []string `json:"photos" binding:"omitempty,dive,url"`
}

func (r *CreateProfileRequest) ToInput() host.CreateRequest {
	return host.CreateRequest{
		Bio:              r.Bio,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		HomeType:         homeTypePtr(r.HomeType),
		HasYard:          r.HasYard,
		AcceptedPetTypes: r.AcceptedPetTypes,
		MaxPets:          r.MaxPets,
		PricePerNight:    money.FromMajor(r.PricePerNight),
		PricePerWeek:     centsPtr(r.PricePerWeek),
		Photos:           r.Photos,
	}
}

type UpdateProfileRequest struct {
	Bio              *string   `json:"bio"`
	Address          *string   `json:"address" binding:"omitempty,min=1"`
	City             *string   `json:"city" binding:"omitempty,min=1"`
	State            *string   `json:"state" binding:"omitempty,min=1"`
	ZipCode          *string   `json:"zip_code" binding:"omitempty,min=1"`
	Latitude         *float64  `json:"latitude" binding:"omitempty,latitude"`
	Longitude        *float64  `json:"longitude" binding:"omitempty,longitude"`
	HomeType         *string   `json:"home_type" binding:"omitempty,oneof=APARTMENT HOUSE CONDO FARM"`
	HasYard          *bool     `json:"has_yard"`
	AcceptedPetTypes *[]string `json:"accepted_pet_types" binding:"omitempty,dive,oneof=DOG CAT BIRD RABBIT FISH OTHER"`
	MaxPets          *int      `json:"max_pets" binding:"omitempty,min=1"`
	PricePerNight    *float64  `json:"price_per_night" binding:"omitempty,gt=0,lte=100000"`
	PricePerWeek     *float64  `json:"price_per_week" binding:"omitempty,gt=0,lte=700000"`
	Photos           *[]string `json:"photos" binding:"omitempty,dive,url"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Bio == nil && r.Address == nil && r.City == nil && r.State == nil && r.ZipCode == nil &&
		r.Latitude == nil && r.Longitude == nil && r.HomeType == nil && r.HasYard == nil &&
		r.AcceptedPetTypes == nil && r.MaxPets == nil && r.PricePerNight == nil &&
		r.PricePerWeek == nil && r.Photos == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}

func (r *UpdateProfileRequest) ToInput() host.UpdateRequest {
	return host.UpdateRequest{
		Bio:              r.Bio,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		HomeType:         homeTypePtr(r.HomeType),
		HasYard:          r.HasYard,
		AcceptedPetTypes: r.AcceptedPetTypes,
		MaxPets:          r.MaxPets,
		PricePerNight:    centsPtr(r.PricePerNight),
		PricePerWeek:     centsPtr(r.PricePerWeek),
		Photos:           r.Photos,
	}
}

func centsPtr(v *float64) *money.Cents {
	if v == nil {
		return nil
	}
	c := money.FromMajor(*v)
	return &c
}

func homeTypePtr(s *string) *host.HomeType {
	if s == nil {
		return nil
	}
	h := host.HomeType(*s)
	return &h
}
