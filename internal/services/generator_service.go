package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// MissingInputError reports a missing required input to the draft mapper.
// It signals a bug in the calling code rather than correctable user input.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// MapGeneratedToDraft reduces a multi-segment AI campaign strategy to a
// single persistable draft. Only the first template and the first schedule
// entry are used; segment labels the backend does not understand are
// dropped rather than rejected, since the AI is free to invent its own
// groupings. The human-chosen name always wins over anything the AI named.
func MapGeneratedToDraft(businessID primitive.ObjectID, generated *models.GeneratedCampaign, chosenName string) (*models.CreateGeneratedCampaignRequest, error) {
	if generated == nil {
		return nil, &MissingInputError{Field: "generated campaign"}
	}
	name := strings.TrimSpace(chosenName)
	if name == "" {
		return nil, &MissingInputError{Field: "campaign name"}
	}

	messageContent := "Default message"
	templateType := "generic"
	if len(generated.Templates) > 0 {
		if generated.Templates[0].Message != "" {
			messageContent = generated.Templates[0].Message
		}
		if generated.Templates[0].TemplateType != "" {
			templateType = generated.Templates[0].TemplateType
		}
	}

	req := &models.CreateGeneratedCampaignRequest{
		BusinessID:     businessID,
		Name:           name,
		MessageContent: messageContent,
		TemplateType:   templateType,
		ScheduleType:   models.ScheduleTypeImmediate,
		TargetLeads:    filterSegments(generated.Strategy.TargetSegments),
	}

	if len(generated.Schedule) > 0 {
		at, err := parseSendDatetime(generated.Schedule[0].SendDatetime)
		if err != nil {
			return nil, fmt.Errorf("invalid send_datetime %q: %w", generated.Schedule[0].SendDatetime, err)
		}
		req.ScheduleType = models.ScheduleTypeScheduled
		req.ScheduledAt = at
	}

	return req, nil
}

func filterSegments(segments []string) []string {
	filtered := make([]string, 0, len(segments))
	for _, tag := range segments {
		if models.ValidSegment(tag) {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}

func parseSendDatetime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime format")
}

// GeneratorService produces campaign strategies with Gemini
type GeneratorService struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeneratorService creates a new GeneratorService
func NewGeneratorService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeneratorService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generator API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeneratorService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateCampaign asks the model for a campaign strategy tailored to the
// business and its current segment distribution. The model is instructed to
// answer with the GeneratedCampaign JSON shape; anything else is an error
// surfaced to the caller.
func (s *GeneratorService) GenerateCampaign(ctx context.Context, business *models.Business, stats *models.SegmentStats, goal string) (*models.GeneratedCampaign, error) {
	prompt := buildCampaignPrompt(business, stats, goal)

	result, err := s.client.Models.GenerateContent(ctx,
		s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("campaign generation failed: %w", err)
	}

	raw := result.Text()
	var generated models.GeneratedCampaign
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		s.logger.Warn("generator returned non-conforming JSON", zap.Error(err))
		return nil, fmt.Errorf("failed to parse generated campaign: %w", err)
	}

	return &generated, nil
}

func buildCampaignPrompt(business *models.Business, stats *models.SegmentStats, goal string) string {
	var b strings.Builder
	b.WriteString("You are a WhatsApp marketing strategist. Design an outreach campaign as JSON with keys ")
	b.WriteString(`"strategy" (target_segments, campaign_type, key_message, reasoning, expected_response_rates), `)
	b.WriteString(`"templates" (message, template_type, personalization_tips), `)
	b.WriteString(`"schedule" (segment, send_datetime, priority, reasoning) and `)
	b.WriteString(`"insights" (best_practices, success_metrics, follow_up_tips).` + "\n")
	fmt.Fprintf(&b, "Business: %s (%s). %s\n", business.Name, business.Industry, business.Description)
	if stats != nil {
		fmt.Fprintf(&b, "Lead segments: %d hot, %d warm, %d cold (%d total).\n", stats.Hot, stats.Warm, stats.Cold, stats.Total)
	}
	if goal != "" {
		fmt.Fprintf(&b, "Campaign goal: %s\n", goal)
	}
	b.WriteString("Target segments must be drawn from hot, warm and cold. Use ISO-8601 send_datetime values.")
	return b.String()
}
