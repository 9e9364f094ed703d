package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gomibako/garbage-classifier-service/classifier"
	"github.com/gomibako/garbage-classifier-service/config"
	"github.com/gomibako/garbage-classifier-service/models"
	"github.com/gomibako/garbage-classifier-service/preprocess"
	"github.com/gomibako/garbage-classifier-service/rules"
)

// uploadField is the multipart form field carrying the image.
const uploadField = "file"

// Predictor is the slice of the classifier the HTTP layer depends on.
type Predictor interface {
	Ready() bool
	Predict(ctx context.Context, tensor *preprocess.Tensor) (*classifier.Result, error)
	ConfidenceThreshold() float64
	Info() classifier.Info
	Metrics() classifier.PoolMetrics
}

type AppState struct {
	Config     *config.Config
	Classifier Predictor
}

// handlePredict runs the full prediction pipeline: validate the
// upload, normalize it, run inference, join with the disposal rules
// and assemble the response. Every step either succeeds or fails the
// whole request; nothing is retried.
func (s *AppState) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	language := r.URL.Query().Get("language")
	if language == "" {
		language = models.LanguageBoth
	}
	if !models.ValidLanguage(language) {
		s.sendError(w, fmt.Sprintf("Invalid language: %q. Must be ja, en, or both.", language),
			http.StatusBadRequest)
		return
	}

	imgBytes, err := s.readImageUpload(r)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tensor, err := preprocess.Normalize(imgBytes)
	if err != nil {
		var tooSmall *preprocess.TooSmallError
		switch {
		case errors.As(err, &tooSmall):
			s.sendError(w, fmt.Sprintf("Image too small: %dx%d. Minimum size is %dx%d pixels.",
				tooSmall.Width, tooSmall.Height, preprocess.MinDimension, preprocess.MinDimension),
				http.StatusBadRequest)
		case errors.Is(err, preprocess.ErrUnreadable):
			s.sendError(w, "Failed to process image. Please upload a valid image file.",
				http.StatusBadRequest)
		default:
			s.sendError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	result, err := s.Classifier.Predict(r.Context(), tensor)
	if err != nil {
		switch {
		case errors.Is(err, classifier.ErrNotLoaded):
			s.sendError(w, "Model not loaded. Server is starting up.",
				http.StatusServiceUnavailable)
		case errors.Is(err, classifier.ErrBusy):
			s.sendError(w, "All inference sessions are busy. Please try again shortly.",
				http.StatusServiceUnavailable)
		default:
			log.Printf("prediction failed: %v", err)
			s.sendError(w, s.internalDetail(err), http.StatusInternalServerError)
		}
		return
	}

	rule, ok := rules.Lookup(result.Label)
	if !ok {
		// The model and the rules table disagree on the label set.
		log.Printf("no disposal rule for predicted class %q", result.Label)
		s.sendError(w, s.internalDetail(fmt.Errorf("unknown category returned: %s", result.Label)),
			http.StatusInternalServerError)
		return
	}

	response := buildPrediction(result, rule, s.Classifier.ConfidenceThreshold(), time.Since(start))

	log.Printf("prediction complete: %s (%s) in %.2fms",
		response.PredictedClass, response.ConfidencePercentage, response.ProcessingTimeMS)

	if language == models.LanguageBoth {
		s.writeJSON(w, http.StatusOK, response)
		return
	}
	s.writeJSON(w, http.StatusOK, response.Localize(language))
}

// readImageUpload validates the multipart upload and returns its raw
// bytes. Every rejection carries the offending value.
func (s *AppState) readImageUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(s.Config.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %v", err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("no image file provided; use %q as the form field name", uploadField)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("invalid file type: %s. Must be an image.", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(file, s.Config.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %v", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty file uploaded")
	}
	if int64(len(data)) > s.Config.MaxUploadBytes {
		return nil, fmt.Errorf("file too large: %.2fMB. Max %dMB allowed.",
			float64(header.Size)/(1<<20), s.Config.MaxUploadBytes>>20)
	}

	return data, nil
}

func buildPrediction(result *classifier.Result, rule rules.Rule, threshold float64, elapsed time.Duration) *models.PredictionResult {
	probabilities := make(map[string]float32, len(result.Probabilities))
	for label, p := range result.Probabilities {
		probabilities[string(label)] = p
	}

	return &models.PredictionResult{
		PredictedClass:       string(result.Label),
		Confidence:           result.Confidence,
		ConfidencePercentage: models.FormatConfidence(result.Confidence),

		JapaneseName: rule.JapaneseName,
		Hiragana:     rule.Hiragana,
		EnglishName:  rule.EnglishName,

		DescriptionJA: rule.DescriptionJA,
		DescriptionEN: rule.DescriptionEN,

		ExamplesJA: rule.ExamplesJA,
		ExamplesEN: rule.ExamplesEN,

		CollectionDayJA:     rule.CollectionDayJA,
		CollectionDayEN:     rule.CollectionDayEN,
		CollectionFrequency: rule.CollectionFrequency,

		PreparationSteps: rule.PreparationSteps,

		NotesJA: rule.NotesJA,
		NotesEN: rule.NotesEN,

		Color: rule.Color,
		Icon:  rule.Icon,

		AllProbabilities: probabilities,

		NeedsConfirmation: float64(result.Confidence) < threshold,
		ConfidenceLevel:   models.ConfidenceLevel(result.Confidence),

		ProcessingTimeMS: float64(elapsed.Microseconds()) / 1000.0,
		Timestamp:        time.Now().UTC(),
	}
}

func (s *AppState) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if !s.Classifier.Ready() {
		status = "degraded"
	}
	s.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:      status,
		AppName:     s.Config.AppName,
		Version:     s.Config.AppVersion,
		ModelLoaded: s.Classifier.Ready(),
		Timestamp:   time.Now().UTC(),
	})
}

func (s *AppState) handleModelInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Classifier.Info())
}

func (s *AppState) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Classifier.Metrics())
}

func (s *AppState) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"app":          s.Config.AppName,
		"version":      s.Config.AppVersion,
		"status":       "running",
		"model_loaded": s.Classifier.Ready(),
		"health":       "/api/v1/health",
		"predict":      "/api/v1/predict",
	})
}

func (s *AppState) handleAPIInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": "1.0",
		"endpoints": map[string]string{
			"health":     "/api/v1/health",
			"model_info": "/api/v1/model-info",
			"predict":    "/api/v1/predict",
		},
		"supported_categories": classifier.ClassNames(),
	})
}

// internalDetail hides server-fault details outside development mode.
func (s *AppState) internalDetail(err error) string {
	if s.Config.Development() {
		return err.Error()
	}
	return "An error occurred"
}

func (s *AppState) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func (s *AppState) sendError(w http.ResponseWriter, detail string, status int) {
	s.writeJSON(w, status, models.ErrorResponse{
		Error:     http.StatusText(status),
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
