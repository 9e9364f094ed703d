// Package models defines the wire types for the HTTP API.
package models

import (
	"fmt"
	"time"

	"github.com/gomibako/garbage-classifier-service/rules"
)

// Response language selectors.
const (
	LanguageJA   = "ja"
	LanguageEN   = "en"
	LanguageBoth = "both"
)

func ValidLanguage(language string) bool {
	switch language {
	case LanguageJA, LanguageEN, LanguageBoth:
		return true
	}
	return false
}

// Display bucket thresholds for confidence_level. Intentionally
// independent of the configurable confirmation threshold.
const (
	highConfidence   = 0.80
	mediumConfidence = 0.60
)

// ConfidenceLevel buckets a confidence for display.
func ConfidenceLevel(confidence float32) string {
	switch {
	case confidence >= highConfidence:
		return "high"
	case confidence >= mediumConfidence:
		return "medium"
	default:
		return "low"
	}
}

// FormatConfidence renders a confidence as a percentage string with
// one decimal place, e.g. "86.2%".
func FormatConfidence(confidence float32) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

type HealthResponse struct {
	Status      string    `json:"status"`
	AppName     string    `json:"app_name"`
	Version     string    `json:"version"`
	ModelLoaded bool      `json:"model_loaded"`
	Timestamp   time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PredictionResult is the full bilingual prediction body
// (language=both).
type PredictionResult struct {
	PredictedClass       string  `json:"predicted_class"`
	Confidence           float32 `json:"confidence"`
	ConfidencePercentage string  `json:"confidence_percentage"`

	JapaneseName string `json:"japanese_name"`
	Hiragana     string `json:"hiragana"`
	EnglishName  string `json:"english_name"`

	DescriptionJA string `json:"description_ja"`
	DescriptionEN string `json:"description_en"`

	ExamplesJA []string `json:"examples_ja"`
	ExamplesEN []string `json:"examples_en"`

	CollectionDayJA     string `json:"collection_day_ja"`
	CollectionDayEN     string `json:"collection_day_en"`
	CollectionFrequency string `json:"collection_frequency"`

	PreparationSteps []rules.PreparationStep `json:"preparation_steps"`

	NotesJA []string `json:"notes_ja"`
	NotesEN []string `json:"notes_en"`

	Color string `json:"color"`
	Icon  string `json:"icon"`

	AllProbabilities map[string]float32 `json:"all_probabilities"`

	NeedsConfirmation bool   `json:"needs_confirmation"`
	ConfidenceLevel   string `json:"confidence_level"`

	ProcessingTimeMS float64   `json:"processing_time_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// LocalizedResult carries a single language's text fields plus the
// language-independent ones (language=ja or language=en).
type LocalizedResult struct {
	PredictedClass       string  `json:"predicted_class"`
	Confidence           float32 `json:"confidence"`
	ConfidencePercentage string  `json:"confidence_percentage"`

	Category            string   `json:"category"`
	Description         string   `json:"description"`
	Examples            []string `json:"examples"`
	CollectionDay       string   `json:"collection_day"`
	CollectionFrequency string   `json:"collection_frequency"`
	PreparationSteps    []string `json:"preparation_steps"`
	Notes               []string `json:"notes"`

	Color string `json:"color"`
	Icon  string `json:"icon"`

	AllProbabilities map[string]float32 `json:"all_probabilities"`

	NeedsConfirmation bool   `json:"needs_confirmation"`
	ConfidenceLevel   string `json:"confidence_level"`

	ProcessingTimeMS float64   `json:"processing_time_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// Localize projects the bilingual result onto one language.
func (r *PredictionResult) Localize(language string) *LocalizedResult {
	out := &LocalizedResult{
		PredictedClass:       r.PredictedClass,
		Confidence:           r.Confidence,
		ConfidencePercentage: r.ConfidencePercentage,
		CollectionFrequency:  r.CollectionFrequency,
		Color:                r.Color,
		Icon:                 r.Icon,
		AllProbabilities:     r.AllProbabilities,
		NeedsConfirmation:    r.NeedsConfirmation,
		ConfidenceLevel:      r.ConfidenceLevel,
		ProcessingTimeMS:     r.ProcessingTimeMS,
		Timestamp:            r.Timestamp,
	}

	steps := make([]string, len(r.PreparationSteps))
	if language == LanguageJA {
		out.Category = r.JapaneseName
		out.Description = r.DescriptionJA
		out.Examples = r.ExamplesJA
		out.CollectionDay = r.CollectionDayJA
		out.Notes = r.NotesJA
		for i, step := range r.PreparationSteps {
			steps[i] = step.Japanese
		}
	} else {
		out.Category = r.EnglishName
		out.Description = r.DescriptionEN
		out.Examples = r.ExamplesEN
		out.CollectionDay = r.CollectionDayEN
		out.Notes = r.NotesEN
		for i, step := range r.PreparationSteps {
			steps[i] = step.English
		}
	}
	out.PreparationSteps = steps

	return out
}
