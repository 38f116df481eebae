package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gis-kpi-tracker/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxSuggestions = 5

// Client wraps the Anthropic API for KPI suggestions and alert messages.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates a text-generation client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildSuggestPrompt constructs the system and user prompts for KPI
// suggestions for a role.
func buildSuggestPrompt(role models.Role) (system string, user string) {
	system = `You are an expert in Key Performance Indicators (KPIs) for various roles within a GIS (Geographic Information System) team. Given a specific role, you will provide a list of relevant KPIs that can be used to measure performance and identify areas for improvement.

Return ONLY a JSON array of strings, one per suggested KPI, with exactly 5 entries. No markdown fencing or explanation.`

	user = fmt.Sprintf("Role: %s\n\nBased on the provided role, suggest 5 KPIs.", role)
	return
}

// buildAlertPrompt constructs the prompts for an alert message about a
// freshly reported issue.
func buildAlertPrompt(issue models.Issue) (system string, user string) {
	system = `You are an alert generation system designed to create push notifications based on reported GIS KPI issues.

Based on the issue's details, generate a concise and informative alert message suitable for stakeholders. Consider the priority and status of the issue to determine the urgency and content of the alert.

Return only the alert message text, nothing else.`

	var sb strings.Builder
	sb.WriteString("Issue Details:\n")
	sb.WriteString("- Role: " + string(issue.Role) + "\n")
	sb.WriteString("- KPI Parameter: " + issue.KPIParameter + "\n")
	sb.WriteString("- Description: " + issue.Description + "\n")
	sb.WriteString("- Priority: " + string(issue.Priority) + "\n")
	sb.WriteString("- Status: " + string(issue.Status) + "\n")
	user = sb.String()
	return
}

// SuggestKPIs asks the model for up to 5 KPI strings for the given role.
func (c *Client) SuggestKPIs(ctx context.Context, role models.Role) ([]string, error) {
	systemPrompt, userPrompt := buildSuggestPrompt(role)

	text, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(text)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// GenerateAlert composes a human-readable alert message for a new issue.
func (c *Client) GenerateAlert(ctx context.Context, issue models.Issue) (string, error) {
	systemPrompt, userPrompt := buildAlertPrompt(issue)

	text, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}
	return text, nil
}

// parseSuggestions unmarshals the model output as a JSON string array,
// stripping markdown fencing if present, and caps the result at 5 entries.
func parseSuggestions(text string) ([]string, error) {
	text = stripFence(text)

	var suggestions []string
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("parse suggestions as JSON: %w\nraw response: %s", err, text)
	}

	out := make([]string, 0, maxSuggestions)
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
