package domain

import (
	"math"
	"time"
)

// Title is a catalog entry. The catalog source owns it; list storage
// re-persists whatever descriptive fields it carries. Fields this core
// never interprets ride along in Extra and round-trip untouched.
type Title struct {
	ID             string     `json:"id"`
	PrimaryTitle   string     `json:"primaryTitle,omitempty"`
	Genres         []string   `json:"genres,omitempty"`
	StartYear      *int       `json:"startYear,omitempty"`
	AverageRating  *float64   `json:"averageRating,omitempty"`
	NumVotes       *int       `json:"numVotes,omitempty"`
	RuntimeMinutes *int       `json:"runtimeMinutes,omitempty"`
	UserRating     *int       `json:"userRating,omitempty"`
	AddedAt        *time.Time `json:"addedAt,omitempty"`

	// Extra holds descriptive fields opaque to this core.
	Extra map[string]any `json:"-"`
}

// WatchHours returns the title's runtime rounded to whole hours.
// Titles without a runtime count as zero.
func (t Title) WatchHours() int {
	if t.RuntimeMinutes == nil {
		return 0
	}
	return int(math.Round(float64(*t.RuntimeMinutes) / 60.0))
}

// Document flattens the title into a schemaless document for storage.
// Extra fields are emitted first so the typed fields win on collision.
func (t Title) Document() map[string]any {
	doc := make(map[string]any, len(t.Extra)+8)
	for k, v := range t.Extra {
		doc[k] = v
	}
	doc["id"] = t.ID
	if t.PrimaryTitle != "" {
		doc["primaryTitle"] = t.PrimaryTitle
	}
	if len(t.Genres) > 0 {
		genres := make([]any, len(t.Genres))
		for i, g := range t.Genres {
			genres[i] = g
		}
		doc["genres"] = genres
	}
	if t.StartYear != nil {
		doc["startYear"] = float64(*t.StartYear)
	}
	if t.AverageRating != nil {
		doc["averageRating"] = *t.AverageRating
	}
	if t.NumVotes != nil {
		doc["numVotes"] = float64(*t.NumVotes)
	}
	if t.RuntimeMinutes != nil {
		doc["runtimeMinutes"] = float64(*t.RuntimeMinutes)
	}
	if t.UserRating != nil {
		doc["userRating"] = float64(*t.UserRating)
	}
	if t.AddedAt != nil {
		doc["addedAt"] = t.AddedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

// TitleFromDocument rebuilds a Title from a stored document. Fields it
// does not recognize land in Extra.
func TitleFromDocument(doc map[string]any) Title {
	var t Title
	for k, v := range doc {
		switch k {
		case "id":
			if s, ok := v.(string); ok {
				t.ID = s
			}
		case "primaryTitle":
			if s, ok := v.(string); ok {
				t.PrimaryTitle = s
			}
		case "genres":
			t.Genres = toStrings(v)
		case "startYear":
			t.StartYear = toIntPtr(v)
		case "averageRating":
			if f, ok := toFloat(v); ok {
				t.AverageRating = &f
			}
		case "numVotes":
			t.NumVotes = toIntPtr(v)
		case "runtimeMinutes":
			t.RuntimeMinutes = toIntPtr(v)
		case "userRating":
			t.UserRating = toIntPtr(v)
		case "addedAt":
			if ts, ok := toTime(v); ok {
				t.AddedAt = &ts
			}
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]any)
			}
			t.Extra[k] = v
		}
	}
	return t
}

func toStrings(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toIntPtr(v any) *int {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func toTime(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}
