// Package advisor defines the contract with the colour advisory service:
// given permitted colour ids and a free-text prompt, return a subset of ids
// with a reason for each.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoSuggestions is returned when a response holds no usable suggestion.
var ErrNoSuggestions = errors.New("no usable colour suggestions")

// Suggestion is one proposed catalog colour.
type Suggestion struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Turn is one earlier exchange in the conversation.
type Turn struct {
	Role string // "user" or "model"
	Text string
}

// Request is what the core sends to a provider.
type Request struct {
	PermittedIDs []string
	Prompt       string
	History      []Turn
}

// Provider proposes colours. Implementations must honour ctx.
type Provider interface {
	Suggest(ctx context.Context, req Request) ([]Suggestion, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) ([]Suggestion, error)

// Suggest calls f.
func (f ProviderFunc) Suggest(ctx context.Context, req Request) ([]Suggestion, error) {
	return f(ctx, req)
}

// Filter keeps suggestions whose id is permitted, drops duplicates and
// sorts the survivors by order(id). A nil order keeps the response order.
func Filter(suggestions []Suggestion, permitted []string, order func(id string) int) []Suggestion {
	allowed := make(map[string]bool, len(permitted))
	for _, id := range permitted {
		allowed[id] = true
	}
	seen := make(map[string]bool, len(suggestions))
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if !allowed[s.ID] || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool { return order(out[i].ID) < order(out[j].ID) })
	}
	return out
}

// ParseResponse decodes a JSON array of suggestions, or an object holding
// one under "suggestions". Markdown code fences around the JSON are ignored.
func ParseResponse(data []byte) ([]Suggestion, error) {
	text := stripFence(strings.TrimSpace(string(data)))
	if text == "" {
		return nil, ErrNoSuggestions
	}
	var list []Suggestion
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &list); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
	} else {
		var wrapped struct {
			Suggestions []Suggestion `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		list = wrapped.Suggestions
	}
	if len(list) == 0 {
		return nil, ErrNoSuggestions
	}
	return list, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
