package portrait

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"historical-portrait-server/modules/common/config"
	"historical-portrait-server/modules/common/utils"
)

// upstreamFailureMessage - user-safe message for every upstream failure mode;
// the raw cause stays on the error for logging
const upstreamFailureMessage = "Failed to generate portrait. Please try again later."

// Service wraps the single outbound Gemini image-edit call.
type Service struct {
	genaiClient *genai.Client
}

func NewService() (*Service, error) {
	cfg := config.GetConfig()

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Service{genaiClient: genaiClient}, nil
}

// GeneratePortrait - send the prepared photo and instruction to Gemini and
// normalize the result to a data URI. One attempt only: a failed call is
// terminal for the request, and identical inputs always trigger a fresh
// generation.
func (s *Service) GeneratePortrait(ctx context.Context, imageData []byte, prompt string) (string, error) {
	cfg := config.GetConfig()

	log.Printf("🎨 Calling Gemini API (model: %s) with prompt length: %d", cfg.GeminiModel, len(prompt))

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(imageData, "image/jpeg"),
		},
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		cfg.GeminiModel,
		[]*genai.Content{content},
		nil,
	)
	if err != nil {
		return "", NewError(KindUpstreamFailure, upstreamFailureMessage,
			fmt.Errorf("Gemini API call failed: %w", err))
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ Received image from Gemini: %d bytes (%s)",
					len(part.InlineData.Data), part.InlineData.MIMEType)
				return normalizeImage(part.InlineData.Data, part.InlineData.MIMEType), nil
			}
		}
	}

	return "", NewError(KindUpstreamFailure, upstreamFailureMessage,
		fmt.Errorf("no image data in response"))
}

// normalizeImage - collapse the upstream payload into one representation: a
// data URI. PNG output is recompressed to WebP first; if that fails the
// original bytes are kept as-is.
func normalizeImage(data []byte, mimeType string) string {
	cfg := config.GetConfig()

	if mimeType == "" {
		mimeType = "image/png"
	}

	if mimeType == "image/png" {
		webpData, err := utils.ConvertPNGToWebP(data, float32(cfg.WebPQuality))
		if err == nil {
			return "data:image/webp;base64," + utils.ConvertImageToBase64(webpData)
		}
		log.Printf("⚠️  WebP conversion failed, keeping original PNG: %v", err)
	}

	return "data:" + mimeType + ";base64," + utils.ConvertImageToBase64(data)
}
