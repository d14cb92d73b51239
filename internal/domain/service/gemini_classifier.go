package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vehiql/internal/domain/entity"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
)

const carImagePrompt = `Analyze this car image and extract the following information for a search query:
1. Make (manufacturer)
2. Body type - must be one of: %s
3. Color

Format your response as a clean JSON object with these fields:
{
  "make": "",
  "bodyType": "",
  "color": "",
  "confidence": 0.0
}

For confidence, provide a value between 0 and 1 representing how confident you are in your overall identification.
Only respond with the JSON object, nothing else.`

// GeminiCarClassifier classifies car photos with a Gemini multimodal model.
type GeminiCarClassifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiCarClassifier(ctx context.Context, apiKey, modelName string) (*GeminiCarClassifier, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiCarClassifier{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiCarClassifier) Classify(ctx context.Context, image []byte, mimeType string) (*entity.CarGuess, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	prompt := fmt.Sprintf(carImagePrompt, `"`+strings.Join(BodyTypes, `", "`)+`"`)

	resp, err := g.model.GenerateContent(ctx, genai.ImageData(format, image), genai.Text(prompt))
	if err != nil {
		return nil, errors.Internal("Image classification failed", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, errors.ValidationFailed("Failed to parse AI response", nil)
	}

	logger.Debug("gemini classification response: %s", text)
	return ParseCarGuess(text)
}

func (g *GeminiCarClassifier) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		// first candidate with content wins
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}
