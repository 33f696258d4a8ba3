package host

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/money"
)

// MaxPricePerNight caps a host's nightly rate.
const MaxPricePerNight = money.Cents(100_000_00)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "host profile not found")
	ErrProfileExists     = apperror.New(http.StatusConflict, "host profile already exists")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "price must be positive and at most 100000.00")
	ErrInvalidPetType    = apperror.New(http.StatusBadRequest, "invalid accepted pet type")
	ErrInvalidHomeType   = apperror.New(http.StatusBadRequest, "invalid home type")
	ErrAddressRequired   = apperror.New(http.StatusBadRequest, "address, city, state and zip code are required")
	ErrInvalidMaxPets    = apperror.New(http.StatusBadRequest, "max pets must be at least 1")
	ErrInvalidPriceRange = apperror.New(http.StatusBadRequest, "min price must not exceed max price")
)

type HomeType string

const (
	HomeApartment HomeType = "APARTMENT"
	HomeHouse     HomeType = "HOUSE"
	HomeCondo     HomeType = "CONDO"
	HomeFarm      HomeType = "FARM"
)

func (h HomeType) IsValid() bool {
	switch h {
	case HomeApartment, HomeHouse, HomeCondo, HomeFarm:
		return true
	}
	return false
}

// Profile is a user's boarding listing. Rating is nil iff ReviewCount is 0.
type Profile struct {
	ID               string
	UserID           string
	Bio              *string
	Address          string
	City             string
	State            string
	ZipCode          string
	Latitude         *float64
	Longitude        *float64
	HomeType         *HomeType
	HasYard          bool
	AcceptedPetTypes []string // empty accepts every type
	MaxPets          int
	PricePerNight    money.Cents
	PricePerWeek     *money.Cents
	Photos           []string
	IsAvailable      bool
	Rating           *float64
	ReviewCount      int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined from users.
	FirstName string
	LastName  string
	AvatarURL *string
}

// Accepts reports whether a pet of the given type may be boarded here.
func (p *Profile) Accepts(petType string) bool {
	if len(p.AcceptedPetTypes) == 0 {
		return true
	}
	for _, t := range p.AcceptedPetTypes {
		if t == petType {
			return true
		}
	}
	return false
}

// Filter defines the public host search.
type Filter struct {
	City     string // case-insensitive substring
	PetType  string
	MinPrice *money.Cents
	MaxPrice *money.Cents
	Page     int
	PageSize int
}
