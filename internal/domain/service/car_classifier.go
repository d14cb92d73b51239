package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"vehiql/internal/domain/entity"
	"vehiql/pkg/errors"
)

// CarImageClassifier identifies a car from a photo. Implementations return a
// VALIDATION_FAILED error when the model answer cannot be interpreted.
type CarImageClassifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (*entity.CarGuess, error)
}

// BodyTypes are the body types the classifier is allowed to answer with.
var BodyTypes = []string{"SUV", "Sedan", "Hatchback", "Convertible", "Coupe", "Wagon", "Pickup"}

var codeFence = regexp.MustCompile("```(?:json)?\\n?")

// ParseCarGuess decodes a model answer, tolerating Markdown code fences.
func ParseCarGuess(text string) (*entity.CarGuess, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))

	var guess entity.CarGuess
	if err := json.Unmarshal([]byte(cleaned), &guess); err != nil {
		return nil, errors.ValidationFailed("Failed to parse AI response", err)
	}

	guess.Make = strings.TrimSpace(guess.Make)
	guess.Color = strings.TrimSpace(guess.Color)
	guess.BodyType = normalizeBodyType(guess.BodyType)
	if guess.Confidence < 0 {
		guess.Confidence = 0
	}
	if guess.Confidence > 1 {
		guess.Confidence = 1
	}

	return &guess, nil
}

func normalizeBodyType(s string) string {
	s = strings.TrimSpace(s)
	for _, bt := range BodyTypes {
		if strings.EqualFold(bt, s) {
			return bt
		}
	}
	return s
}
