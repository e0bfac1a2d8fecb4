package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/lexscan/internal/model"
)

const entitySystemPrompt = "You extract named entities from legal documents. " +
	"Respond with a JSON array only, no prose."

// Recognizer implements capability.EntityRecognizer over a Provider
type Recognizer struct {
	provider Provider
}

// NewRecognizer wraps provider
func NewRecognizer(provider Provider) *Recognizer {
	return &Recognizer{provider: provider}
}

// RecognizeEntities asks the model for entities and parses its JSON answer
func (r *Recognizer) RecognizeEntities(ctx context.Context, text string) ([]model.NamedEntity, error) {
	resp, err := r.provider.Complete(ctx, CompletionRequest{
		System:      entitySystemPrompt,
		Prompt:      BuildEntityPrompt(text),
		Temperature: 0.01,
	})
	if err != nil {
		return nil, err
	}

	entities, err := ParseEntities(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.provider.Name(), err)
	}
	return entities, nil
}

// BuildEntityPrompt constructs the NER prompt for one span
func BuildEntityPrompt(text string) string {
	return `List the named entities in the text below.
Use the labels PERSON, ORG (organization), LOC (location), DATE, MONEY or MISC.
Answer with a JSON array of objects: [{"text": "...", "label": "...", "confidence": 0.0}]
where confidence is between 0 and 1. Answer [] if there are none.

Text:
` + text
}

type rawEntity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ParseEntities reads a JSON entity array out of a model answer.
// Code fences and surrounding prose are ignored; confidence is clamped to [0,1].
func ParseEntities(answer string) ([]model.NamedEntity, error) {
	start := strings.Index(answer, "[")
	end := strings.LastIndex(answer, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in entity response")
	}

	var raw []rawEntity
	if err := json.Unmarshal([]byte(answer[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}

	entities := make([]model.NamedEntity, 0, len(raw))
	for _, e := range raw {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		entities = append(entities, model.NamedEntity{
			Text:       text,
			Label:      strings.ToUpper(strings.TrimSpace(e.Label)),
			Confidence: min(max(e.Confidence, 0), 1),
		})
	}
	return entities, nil
}
