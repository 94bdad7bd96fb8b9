package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.StoryGenerator = (*Generator)(nil)

// Generator implements starprep.StoryGenerator using Google Gemini.
type Generator struct {
	client GenerativeClient
	model  string
}

// NewGenerator creates a new Generator.
func NewGenerator(client GenerativeClient, model string) *Generator {
	return &Generator{client: client, model: model}
}

// GenerateStory drafts a STAR story from the selected experiences.
func (g *Generator) GenerateStory(ctx context.Context, req starprep.GenerateRequest) (starprep.Story, error) {
	prompt := BuildPrompt(req)

	text, err := g.client.GenerateContent(ctx, g.model, prompt, BuildConfig())
	if err != nil {
		return starprep.Story{}, err
	}

	var payload struct {
		Title         string   `json:"title"`
		Situation     string   `json:"situation"`
		Task          string   `json:"task"`
		Action        string   `json:"action"`
		Result        string   `json:"result"`
		KeyThemes     []string `json:"key_themes"`
		TalkingPoints []string `json:"talking_points"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return starprep.Story{}, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	return starprep.Story{
		Title:         payload.Title,
		Situation:     payload.Situation,
		Task:          payload.Task,
		Action:        payload.Action,
		Result:        payload.Result,
		KeyThemes:     payload.KeyThemes,
		TalkingPoints: payload.TalkingPoints,
	}, nil
}

// BuildPrompt creates the user prompt for the Gemini API.
func BuildPrompt(req starprep.GenerateRequest) string {
	var sb strings.Builder
	sb.WriteString("Craft one behavioral interview story in STAR format from these resume experiences.\n\n")
	sb.WriteString("## Experiences\n\n")

	for i, exp := range req.Experiences {
		fmt.Fprintf(&sb, "### %s", exp.DisplayName())
		if exp.Company != "" {
			fmt.Fprintf(&sb, " @ %s", exp.Company)
		}
		sb.WriteString("\n")
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&sb, "- %s\n", bullet)
		}
		if i < len(req.Experiences)-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n## Requirements\n\n")
	fmt.Fprintf(&sb, "Theme: %s\n", req.Theme)
	fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	if req.CompanyContext != "" {
		fmt.Fprintf(&sb, "Target company: %s\n", req.CompanyContext)
	}
	sb.WriteString("\nGround every claim in the experiences above; do not invent facts.\n")

	return sb.String()
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *GenerateContentConfig {
	temp := float32(0.7)
	return &GenerateContentConfig{
		SystemInstruction: `You are an interview coach. You turn real resume experiences into compelling behavioral interview stories structured as Situation, Task, Action, Result. Stories must stay truthful to the source material.`,
		Temperature:       &temp,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    storySchema(),
	}
}

func storySchema() *Schema {
	stringList := &Schema{Type: "array", Items: &Schema{Type: "string"}}
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"title":          {Type: "string", Description: "Short memorable story title"},
			"situation":      {Type: "string"},
			"task":           {Type: "string"},
			"action":         {Type: "string"},
			"result":         {Type: "string"},
			"key_themes":     stringList,
			"talking_points": stringList,
		},
		Required: []string{"title", "situation", "task", "action", "result"},
	}
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, prompt string, config *GenerateContentConfig) (string, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, prompt string, config *GenerateContentConfig) (string, error) {
	return m.GenerateContentFn(ctx, model, prompt, config)
}
