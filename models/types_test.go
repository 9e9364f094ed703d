package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gomibako/garbage-classifier-service/rules"
)

func TestConfidenceLevel(t *testing.T) {
	cases := []struct {
		confidence float32
		want       string
	}{
		{0.85, "high"},
		{0.80, "high"},
		{0.79, "medium"},
		{0.65, "medium"},
		{0.60, "medium"},
		{0.59, "low"},
		{0.50, "low"},
		{0.0, "low"},
		{1.0, "high"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ConfidenceLevel(tc.confidence), "confidence=%v", tc.confidence)
	}
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "86.2%", FormatConfidence(0.862))
	assert.Equal(t, "100.0%", FormatConfidence(1.0))
	assert.Equal(t, "0.0%", FormatConfidence(0.0))
	assert.Equal(t, "70.0%", FormatConfidence(0.70))
}

func TestValidLanguage(t *testing.T) {
	assert.True(t, ValidLanguage("ja"))
	assert.True(t, ValidLanguage("en"))
	assert.True(t, ValidLanguage("both"))
	assert.False(t, ValidLanguage(""))
	assert.False(t, ValidLanguage("fr"))
	assert.False(t, ValidLanguage("JA"))
}

func samplePrediction() *PredictionResult {
	return &PredictionResult{
		PredictedClass:       "plastic",
		Confidence:           0.91,
		ConfidencePercentage: "91.0%",
		JapaneseName:         "プラスチック製容器包装",
		Hiragana:             "ぷらすちっくせいようきほうそう",
		EnglishName:          "Plastic Containers & Packaging",
		DescriptionJA:        "説明",
		DescriptionEN:        "description",
		ExamplesJA:           []string{"ペットボトル"},
		ExamplesEN:           []string{"PET bottles"},
		CollectionDayJA:      "週1回",
		CollectionDayEN:      "Once a week",
		CollectionFrequency:  "weekly",
		PreparationSteps: []rules.PreparationStep{
			{Japanese: "すすぐ", English: "Rinse"},
			{Japanese: "潰す", English: "Crush"},
		},
		NotesJA:          []string{"メモ"},
		NotesEN:          []string{"note"},
		Color:            "#2ECC71",
		Icon:             "🧴",
		AllProbabilities: map[string]float32{"plastic": 0.91},
		ConfidenceLevel:  "high",
		ProcessingTimeMS: 12.5,
		Timestamp:        time.Now().UTC(),
	}
}

func TestLocalizeJapanese(t *testing.T) {
	loc := samplePrediction().Localize(LanguageJA)

	assert.Equal(t, "プラスチック製容器包装", loc.Category)
	assert.Equal(t, "説明", loc.Description)
	assert.Equal(t, []string{"ペットボトル"}, loc.Examples)
	assert.Equal(t, "週1回", loc.CollectionDay)
	assert.Equal(t, []string{"すすぐ", "潰す"}, loc.PreparationSteps)
	assert.Equal(t, []string{"メモ"}, loc.Notes)

	// Language-independent fields survive localization.
	assert.Equal(t, "plastic", loc.PredictedClass)
	assert.Equal(t, "#2ECC71", loc.Color)
	assert.Equal(t, "🧴", loc.Icon)
	assert.Equal(t, "weekly", loc.CollectionFrequency)
	assert.Equal(t, 12.5, loc.ProcessingTimeMS)
}

func TestLocalizeEnglish(t *testing.T) {
	loc := samplePrediction().Localize(LanguageEN)

	assert.Equal(t, "Plastic Containers & Packaging", loc.Category)
	assert.Equal(t, "description", loc.Description)
	assert.Equal(t, []string{"PET bottles"}, loc.Examples)
	assert.Equal(t, "Once a week", loc.CollectionDay)
	assert.Equal(t, []string{"Rinse", "Crush"}, loc.PreparationSteps)
	assert.Equal(t, []string{"note"}, loc.Notes)
}
