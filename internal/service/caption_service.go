package service

import (
	"fmt"
	"hash/fnv"
	"strings"

	"glimpse/internal/models"
)

// CaptionService produces caption suggestions for a post draft. It is a
// local stub: suggestions are canned templates picked deterministically
// from the topic, so the endpoint is stable for clients and tests.
type CaptionService struct{}

func NewCaptionService() *CaptionService {
	return &CaptionService{}
}

var captionTemplates = []string{
	"Moments like this: %s",
	"Caught in the act of %s",
	"A little bit of %s goes a long way",
	"Today's mood: %s",
	"Nothing but %s vibes",
	"%s, but make it memorable",
}

const maxCaptionSuggestions = 3

// Suggest returns up to three caption suggestions for the given topic.
func (s *CaptionService) Suggest(topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, models.NewValidationError("Topic is required")
	}
	if len(topic) > 200 {
		return nil, models.NewValidationError("Topic too long (max 200 characters)")
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(topic)))
	start := int(h.Sum32()) % len(captionTemplates)
	if start < 0 {
		start += len(captionTemplates)
	}

	suggestions := make([]string, 0, maxCaptionSuggestions)
	for i := 0; i < maxCaptionSuggestions; i++ {
		tmpl := captionTemplates[(start+i)%len(captionTemplates)]
		suggestions = append(suggestions, fmt.Sprintf(tmpl, topic))
	}
	return suggestions, nil
}
