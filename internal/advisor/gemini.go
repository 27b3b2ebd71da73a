package advisor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

const systemInstruction = `You are a paint colour consultant. Propose colours for repainting a room or facade.
Only use colour ids from the permitted list. Answer with a JSON array of objects {"id", "reason"}.`

// Gemini asks Google Gemini for suggestions.
type Gemini struct {
	Model       string
	Temperature float64
	// APIKey overrides GEMINI_API_KEY.
	APIKey string
}

// NewGemini returns a Gemini provider for model (DefaultModel when empty).
func NewGemini(model string, temperature float64) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{Model: model, Temperature: temperature}
}

// Suggest implements Provider.
func (g *Gemini) Suggest(ctx context.Context, req Request) ([]Suggestion, error) {
	apiKey := g.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if len(req.PermittedIDs) == 0 {
		return nil, fmt.Errorf("no permitted colour ids")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(float32(g.Temperature))
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema(req.PermittedIDs)

	chat := model.StartChat()
	for _, turn := range req.History {
		role := "user"
		if turn.Role == "model" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(turn.Text)}})
	}

	prompt := fmt.Sprintf("Permitted colour ids: %s\n\n%s", strings.Join(req.PermittedIDs, ", "), req.Prompt)
	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}
	return ParseResponse([]byte(text.String()))
}

func responseSchema(ids []string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":     {Type: genai.TypeString, Enum: append([]string(nil), ids...)},
				"reason": {Type: genai.TypeString},
			},
			Required: []string{"id", "reason"},
		},
	}
}
