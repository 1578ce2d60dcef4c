package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// WordData is the structured translation result produced by the sanitizer.
// Fields absent from the AI output decode to the empty string, so downstream
// consumers never see missing keys.
type WordData struct {
	Translation string `json:"translation"`
	IPA         string `json:"ipa"`
	Phonetic    string `json:"phonetic"`
	Type        string `json:"type"`
	Domain      string `json:"domain"`
	Example     string `json:"example"`
	Notes       string `json:"notes"`
	Level       string `json:"level"`
}

// NewsItemData is one item of the AI-generated positive news array.
type NewsItemData struct {
	Title        string `json:"title"`
	TitleMaori   string `json:"title_maori"`
	Content      string `json:"content"`
	SummaryMaori string `json:"summary_maori"`
	Link         string `json:"link"`
	ImageURL     string `json:"image_url"`
}

var (
	openFence  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closeFence = regexp.MustCompile("\\s*```$")
)

// StripFences removes a leading ``` or ```json fence and a trailing ``` from
// the text. Idempotent on already-clean input.
func StripFences(s string) string {
	clean := strings.TrimSpace(s)
	clean = openFence.ReplaceAllString(clean, "")
	clean = closeFence.ReplaceAllString(strings.TrimSpace(clean), "")
	return strings.TrimSpace(clean)
}

// ParseWordData strips fences and parses the text as a single JSON object.
// Text that does not start with '{' after stripping is rejected with
// ErrInvalidJSON.
func ParseWordData(raw string) (WordData, error) {
	clean := StripFences(raw)
	if clean == "" || !strings.HasPrefix(clean, "{") {
		return WordData{}, fmt.Errorf("%w: object expected", ErrInvalidJSON)
	}

	var data WordData
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		return WordData{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return data, nil
}

// ParseNewsItems strips fences and parses the text as a JSON array of news items.
func ParseNewsItems(raw string) ([]NewsItemData, error) {
	clean := StripFences(raw)
	if clean == "" || !strings.HasPrefix(clean, "[") {
		return nil, fmt.Errorf("%w: array expected", ErrInvalidJSON)
	}

	var items []NewsItemData
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return items, nil
}

// AllowedLevels are the difficulty levels a word may carry.
var AllowedLevels = []string{"beginner", "intermediate"}

// SanitizeLevel coerces unknown or missing levels to "beginner".
func SanitizeLevel(level string) string {
	for _, l := range AllowedLevels {
		if level == l {
			return level
		}
	}
	return "beginner"
}
