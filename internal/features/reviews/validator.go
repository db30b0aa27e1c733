package reviews

import (
	"strings"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

func validRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return apperror.BadRequest("Rating must be between 1.0 and 5.0")
	}
	return nil
}

func ValidateCreate(req *CreateReviewRequest) error {
	if strings.TrimSpace(req.Review) == "" {
		return apperror.BadRequest("Review can not be empty")
	}
	return validRating(req.Rating)
}

func ValidateUpdate(req *UpdateReviewRequest) error {
	if req.Review == nil && req.Rating == nil {
		return apperror.BadRequest("Nothing to update")
	}
	if req.Review != nil && strings.TrimSpace(*req.Review) == "" {
		return apperror.BadRequest("Review can not be empty")
	}
	if req.Rating != nil {
		return validRating(*req.Rating)
	}
	return nil
}
