// Package gemini generates STAR stories directly with Google Gemini, for
// running the client without the backend service.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the recommended Gemini model for story generation.
const DefaultModel = "gemini-3-flash-preview"

// Client wraps the Gemini genai.Client.
type Client struct {
	client *genai.Client
}

// NewClient creates a new Client with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// GenerateContent implements GenerativeClient by delegating to the genai.Client.
func (c *Client) GenerateContent(ctx context.Context, model string, prompt string, config *GenerateContentConfig) (string, error) {
	contents := []*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}}

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: config.ResponseMIMEType,
	}
	if config.Temperature != nil {
		genaiConfig.Temperature = config.Temperature
	}
	if config.SystemInstruction != "" {
		genaiConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemInstruction}},
		}
	}
	if config.ResponseSchema != nil {
		genaiConfig.ResponseSchema = convertSchema(config.ResponseSchema)
	}

	result, err := c.client.Models.GenerateContent(ctx, model, contents, genaiConfig)
	if err != nil {
		return "", wrapAPIError(err)
	}

	return result.Text(), nil
}

// wrapAPIError converts genai.APIError to our APIError type.
func wrapAPIError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.Code,
			Message:    fmt.Sprintf("gemini API error (HTTP %d): %s", apiErr.Code, apiErr.Message),
		}
	}
	return err
}

// convertSchema recursively converts our Schema to genai.Schema.
func convertSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	gs := &genai.Schema{
		Type:        genai.Type(s.Type),
		Required:    s.Required,
		Description: s.Description,
	}
	if s.Properties != nil {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			gs.Properties[k] = convertSchema(v)
		}
	}
	if s.Items != nil {
		gs.Items = convertSchema(s.Items)
	}
	return gs
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, prompt string, config *GenerateContentConfig) (string, error)
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction string
	Temperature       *float32
	ResponseMIMEType  string
	ResponseSchema    *Schema
}

// Schema represents the structure for controlled JSON generation.
type Schema struct {
	Type        string             // object, array, string, integer, number, boolean
	Properties  map[string]*Schema // For object types
	Items       *Schema            // For array types
	Required    []string           // Required property names
	Description string             // Field description
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Compile-time check that Client implements GenerativeClient.
var _ GenerativeClient = (*Client)(nil)
