package usecase

import (
	"context"
	"strings"
	"time"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/service"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
)

// MaxImageBytes bounds uploaded search images.
const MaxImageBytes = 5 << 20

// Limiter hands out per-key request budget.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type ImageInput struct {
	Data     []byte
	MimeType string
}

type ImageSearchResult struct {
	Guess *entity.CarGuess `json:"guess"`
	// Query holds the listing parameters a client can apply directly.
	Query map[string]string `json:"query"`
}

type ImageSearchUseCase struct {
	classifier service.CarImageClassifier
	limiter    Limiter
}

// NewImageSearchUseCase accepts a nil classifier; searches then fail until
// one is configured.
func NewImageSearchUseCase(classifier service.CarImageClassifier, limiter Limiter) *ImageSearchUseCase {
	return &ImageSearchUseCase{
		classifier: classifier,
		limiter:    limiter,
	}
}

func (u *ImageSearchUseCase) ProcessImageSearch(ctx context.Context, key string, input ImageInput) (*ImageSearchResult, error) {
	if err := validateImage(input); err != nil {
		return nil, err
	}

	if ok, wait := u.limiter.Allow(key); !ok {
		logger.Warn("image search rate limited %s", logger.Fields(map[string]interface{}{
			"key":         key,
			"retry_after": wait,
		}))
		return nil, errors.TooManyRequests("Too many requests. Please try again later", wait)
	}

	if u.classifier == nil {
		return nil, errors.Internal("Image search is not configured", nil)
	}

	guess, err := u.classifier.Classify(ctx, input.Data, input.MimeType)
	if err != nil {
		return nil, err
	}

	query := map[string]string{}
	if guess.Make != "" {
		query["make"] = guess.Make
	}
	if guess.BodyType != "" {
		query["bodyType"] = guess.BodyType
	}

	return &ImageSearchResult{Guess: guess, Query: query}, nil
}

func validateImage(input ImageInput) error {
	if len(input.Data) == 0 {
		return errors.BadRequest("Image is required", nil)
	}
	if len(input.Data) > MaxImageBytes {
		return errors.BadRequest("Image must be 5MB or smaller", nil)
	}
	if !strings.HasPrefix(strings.ToLower(input.MimeType), "image/") {
		return errors.BadRequest("File must be an image", nil)
	}
	return nil
}
