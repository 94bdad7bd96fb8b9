package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateStory(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	client := &gemini.MockGenerativeClient{
		GenerateContentFn: func(_ context.Context, model, prompt string, config *gemini.GenerateContentConfig) (string, error) {
			assert.Equal(t, gemini.DefaultModel, model)
			assert.Equal(t, "application/json", config.ResponseMIMEType)
			require.NotNil(t, config.ResponseSchema)
			gotPrompt = prompt
			return `{"title":"Led the Migration","situation":"S","task":"T","action":"A","result":"R","key_themes":["Leadership"],"talking_points":["30% cost cut"]}`, nil
		},
	}

	g := gemini.NewGenerator(client, gemini.DefaultModel)
	story, err := g.GenerateStory(context.Background(), starprep.GenerateRequest{
		Experiences: []starprep.Experience{
			{Header: "Staff Engineer", Company: "Acme", Bullets: []string{"Led migration"}},
		},
		Theme: "Leadership Challenge",
		Tone:  "professional",
	})

	require.NoError(t, err)
	assert.Equal(t, "Led the Migration", story.Title)
	assert.Equal(t, []string{"Leadership"}, story.KeyThemes)
	assert.NoError(t, starprep.ValidateStory(story))

	assert.Contains(t, gotPrompt, "Staff Engineer @ Acme")
	assert.Contains(t, gotPrompt, "- Led migration")
	assert.Contains(t, gotPrompt, "Theme: Leadership Challenge")
}

func TestGenerator_PropagatesClientError(t *testing.T) {
	t.Parallel()

	client := &gemini.MockGenerativeClient{
		GenerateContentFn: func(context.Context, string, string, *gemini.GenerateContentConfig) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	_, err := gemini.NewGenerator(client, gemini.DefaultModel).GenerateStory(context.Background(), starprep.GenerateRequest{})

	require.Error(t, err)
}

func TestGenerator_RejectsMalformedResponse(t *testing.T) {
	t.Parallel()

	client := &gemini.MockGenerativeClient{
		GenerateContentFn: func(context.Context, string, string, *gemini.GenerateContentConfig) (string, error) {
			return "sorry, here is your story:", nil
		},
	}

	_, err := gemini.NewGenerator(client, gemini.DefaultModel).GenerateStory(context.Background(), starprep.GenerateRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestBuildPrompt_IncludesCompanyContext(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt(starprep.GenerateRequest{
		Experiences:    []starprep.Experience{{Title: "SRE"}},
		Theme:          "Teamwork",
		Tone:           "concise",
		CompanyContext: "Initech",
	})

	assert.Contains(t, prompt, "Target company: Initech")
	assert.Contains(t, prompt, "Tone: concise")
}
