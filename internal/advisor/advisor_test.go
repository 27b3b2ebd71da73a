package advisor

import (
	"context"
	"errors"
	"testing"
)

func TestFilterDropsUnknownAndSorts(t *testing.T) {
	rank := map[string]int{"a": 0, "b": 1, "c": 2}
	order := func(id string) int { return rank[id] }
	in := []Suggestion{{ID: "c", Reason: "3"}, {ID: "zzz"}, {ID: "a", Reason: "1"}, {ID: "c", Reason: "dup"}}
	got := Filter(in, []string{"a", "b", "c"}, order)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" || got[1].Reason != "3" {
		t.Fatalf("Filter = %+v", got)
	}
	if got := Filter(in, nil, order); len(got) != 0 {
		t.Fatalf("nothing permitted, got %+v", got)
	}
}

func TestParseResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
		err  bool
	}{
		{"array", `[{"id":"a","reason":"warm"}]`, 1, false},
		{"fenced", "```json\n[{\"id\":\"a\"},{\"id\":\"b\"}]\n```", 2, false},
		{"wrapped", `{"suggestions":[{"id":"a"}]}`, 1, false},
		{"empty", `[]`, 0, true},
		{"blank", "  ", 0, true},
		{"garbage", `not json`, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseResponse([]byte(c.in))
			if c.err {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse: %v", err)
			}
			if len(got) != c.want {
				t.Fatalf("got %d suggestions", len(got))
			}
		})
	}
	if _, err := ParseResponse([]byte("[]")); !errors.Is(err, ErrNoSuggestions) {
		t.Fatalf("expected ErrNoSuggestions, got %v", err)
	}
}

func TestProviderFunc(t *testing.T) {
	var p Provider = ProviderFunc(func(ctx context.Context, req Request) ([]Suggestion, error) {
		return []Suggestion{{ID: req.PermittedIDs[0]}}, nil
	})
	got, err := p.Suggest(context.Background(), Request{PermittedIDs: []string{"x"}})
	if err != nil || len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("Suggest = %+v %v", got, err)
	}
}

func TestGeminiRequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := NewGemini("", 0.5).Suggest(context.Background(), Request{PermittedIDs: []string{"a"}})
	if err == nil {
		t.Fatalf("expected missing key error")
	}
}
