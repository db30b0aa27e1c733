package tours

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

func validDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

func validName(name string) error {
	n := len(strings.TrimSpace(name))
	if n < 10 {
		return apperror.BadRequest("A tour name must have more or equal than 10 characters")
	}
	if n > 40 {
		return apperror.BadRequest("A tour name must have less or equal than 40 characters")
	}
	return nil
}

func ValidateCreate(req *CreateTourRequest) error {
	if err := validName(req.Name); err != nil {
		return err
	}
	if req.Duration <= 0 {
		return apperror.BadRequest("A tour must have a duration")
	}
	if req.MaxGroupSize <= 0 {
		return apperror.BadRequest("A tour must have a group size")
	}
	if !validDifficulty(req.Difficulty) {
		return apperror.BadRequest("Difficulty is either: easy, medium or difficult")
	}
	if req.Price <= 0 {
		return apperror.BadRequest("A tour must have a price")
	}
	if req.PriceDiscount != 0 && req.PriceDiscount >= req.Price {
		return apperror.BadRequest("Discount price should be below regular price")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return apperror.BadRequest("A tour must have a summary")
	}
	if strings.TrimSpace(req.ImageCover) == "" {
		return apperror.BadRequest("A tour must have a cover image")
	}
	return nil
}

// ValidateUpdate checks only the fields present in the patch. The
// discount-below-price rule needs the price the document will end up with,
// so the caller passes the current price.
func ValidateUpdate(req *UpdateTourRequest, currentPrice float64) error {
	if req.Name != nil {
		if err := validName(*req.Name); err != nil {
			return err
		}
	}
	if req.Duration != nil && *req.Duration <= 0 {
		return apperror.BadRequest("A tour must have a duration")
	}
	if req.MaxGroupSize != nil && *req.MaxGroupSize <= 0 {
		return apperror.BadRequest("A tour must have a group size")
	}
	if req.Difficulty != nil && !validDifficulty(*req.Difficulty) {
		return apperror.BadRequest("Difficulty is either: easy, medium or difficult")
	}

	price := currentPrice
	if req.Price != nil {
		if *req.Price <= 0 {
			return apperror.BadRequest("A tour must have a price")
		}
		price = *req.Price
	}
	if req.PriceDiscount != nil && *req.PriceDiscount != 0 && *req.PriceDiscount >= price {
		return apperror.BadRequest("Discount price should be below regular price")
	}
	return nil
}

// Slugify derives the URL slug stored alongside the tour name.
func Slugify(name string) string {
	return slug.Make(name)
}
