package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/hariomfashion/backend/internal/models"
)

// Service wraps the Gemini client used to draft product descriptions for the
// back office.
type Service struct {
	Client *genai.Client
	model  string
}

func NewService(apiKey string) (*Service, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Service{Client: client, model: "gemini-1.5-flash"}, nil
}

// GenerateProductDescription drafts a short storefront description from the
// product's attributes. The admin reviews and saves it; nothing is persisted
// here.
func (s *Service) GenerateProductDescription(ctx context.Context, product *models.Product) (string, error) {
	model := s.Client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You write product descriptions for Hari-Om Fashion, an Indian clothing store. " +
				"Two short paragraphs, warm but factual, no invented details, no emojis.",
		)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\nCategory: %s\nPrice: ₹%.0f\n", product.Name, product.Category, product.Price)
	if product.Fabric != "" {
		fmt.Fprintf(&b, "Fabric: %s\n", product.Fabric)
	}
	if len(product.Sizes) > 0 {
		fmt.Fprintf(&b, "Sizes: %s\n", strings.Join(product.Sizes, ", "))
	}
	if len(product.Colors) > 0 {
		fmt.Fprintf(&b, "Colors: %s\n", strings.Join(product.Colors, ", "))
	}
	if product.CareInstructions != "" {
		fmt.Fprintf(&b, "Care: %s\n", product.CareInstructions)
	}

	res, err := model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return "", fmt.Errorf("error generating description: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var out strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}
