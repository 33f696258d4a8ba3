package pet

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "pet not found")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "pet name is required")
	ErrInvalidType   = apperror.New(http.StatusBadRequest, "invalid pet type")
	ErrInvalidGender = apperror.New(http.StatusBadRequest, "invalid pet gender")
	ErrHasBookings   = apperror.New(http.StatusConflict, "pet has bookings and cannot be deleted")
)

type Type string

const (
	TypeDog    Type = "DOG"
	TypeCat    Type = "CAT"
	TypeBird   Type = "BIRD"
	TypeRabbit Type = "RABBIT"
	TypeFish   Type = "FISH"
	TypeOther  Type = "OTHER"
)

var validTypes = map[Type]struct{}{
	TypeDog: {}, TypeCat: {}, TypeBird: {}, TypeRabbit: {}, TypeFish: {}, TypeOther: {},
}

func (t Type) IsValid() bool {
	_, ok := validTypes[t]
	return ok
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet belongs to exactly one owner.
type Pet struct {
	ID           string
	OwnerID      string
	Name         string
	Type         Type
	Breed        *string
	Age          *int
	Weight       *float64 // kg
	Gender       *Gender
	Description  *string
	SpecialNeeds *string
	PhotoURL     *string
	IsNeutered   bool
	Vaccinated   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
