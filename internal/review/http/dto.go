package http

import (
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/review"
	userhttp "github.com/nekogravitycat/pethaven-backend/internal/user/http"
)

type AuthorTag struct {
	userhttp.UserTag
	AvatarURL *string `json:"avatar_url"`
}

type StayTag struct {
	PetName   string    `json:"pet_name"`
	PetType   string    `json:"pet_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type ReviewResponse struct {
	ID        string           `json:"id"`
	BookingID string           `json:"booking_id"`
	Author    AuthorTag        `json:"author"`
	Subject   userhttp.UserTag `json:"subject"`
	Stay      *StayTag         `json:"stay,omitempty"`
	Rating    int              `json:"rating"`
	Comment   *string          `json:"comment"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		Author: AuthorTag{
			UserTag:   userhttp.UserTag{ID: r.AuthorID, Name: r.AuthorName},
			AvatarURL: r.AuthorAvatarURL,
		},
		Subject:   userhttp.UserTag{ID: r.SubjectID, Name: r.SubjectName},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PetName != "" {
		resp.Stay = &StayTag{PetName: r.PetName, PetType: r.PetType, StartDate: r.StayStart, EndDate: r.StayEnd}
	}
	return resp
}

type StatsResponse struct {
	Count         int      `json:"count"`
	AverageRating *float64 `json:"average_rating"`
}

type SubjectReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Stats   StatsResponse    `json:"stats"`
}

type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" binding:"required,uuid"`
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string `json:"comment" binding:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// Validate performs custom validation for UpdateReviewRequest.
func (r *UpdateReviewRequest) Validate() error {
	if r.Rating == nil && r.Comment == nil {
		return review.ErrEmptyUpdate
	}
	return nil
}
