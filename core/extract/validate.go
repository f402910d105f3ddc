package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/siherrmann/fuser/model"
)

// Validator sanity-checks entity merges after resolution. It is
// purely advisory: its findings may be logged or surfaced to an
// operator, but the engine never needs it to produce a result.
type Validator interface {
	ValidateMerges(ctx context.Context, entities []model.CrossVideoEntity) (string, error)
}

// NoopValidator is the degradation path when no AI collaborator is
// configured.
type NoopValidator struct{}

// ValidateMerges returns no findings.
func (NoopValidator) ValidateMerges(ctx context.Context, entities []model.CrossVideoEntity) (string, error) {
	return "", nil
}

// AnthropicValidator reviews merged entities with a Claude model.
type AnthropicValidator struct {
	client      anthropic.Client
	model       anthropic.Model
	maxEntities int
}

// NewAnthropicValidator creates a validator using the ANTHROPIC_API_KEY
// environment variable for authentication.
func NewAnthropicValidator() *AnthropicValidator {
	return &AnthropicValidator{
		client:      anthropic.NewClient(),
		model:       anthropic.ModelClaudeSonnet4_20250514,
		maxEntities: 50,
	}
}

// ValidateMerges asks the model to flag implausible merges among the
// resolved entities and returns its free-text review.
func (v *AnthropicValidator) ValidateMerges(ctx context.Context, entities []model.CrossVideoEntity) (string, error) {
	if len(entities) == 0 {
		return "", nil
	}

	message, err := v.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     v.model,
		MaxTokens: 512,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildMergeReviewPrompt(entities, v.maxEntities))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to request merge review: %w", err)
	}

	var review strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			review.WriteString(block.Text)
		}
	}
	return review.String(), nil
}

func buildMergeReviewPrompt(entities []model.CrossVideoEntity, limit int) string {
	var prompt strings.Builder
	prompt.WriteString("The following entities were merged from multiple video analyses. ")
	prompt.WriteString("List any merge that looks wrong (aliases that are clearly different real-world entities). ")
	prompt.WriteString("Answer 'OK' if all merges look plausible.\n\n")

	for i, entity := range entities {
		if i >= limit {
			prompt.WriteString(fmt.Sprintf("... and %d more\n", len(entities)-limit))
			break
		}
		prompt.WriteString(fmt.Sprintf("- %s (%s)", entity.Name, entity.Type))
		if len(entity.Aliases) > 0 {
			prompt.WriteString(", aliases: " + strings.Join(entity.Aliases, ", "))
		}
		prompt.WriteString("\n")
	}
	return prompt.String()
}
