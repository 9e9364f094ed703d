package main

import (
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/gomibako/garbage-classifier-service/classifier"
	"github.com/gomibako/garbage-classifier-service/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	log.Printf("starting %s v%s (%s)", cfg.AppName, cfg.AppVersion, cfg.Environment)

	if cfg.ONNXLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.ONNXLibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		log.Fatalf("Failed to initialize ONNX environment: %v", err)
	}
	defer ort.DestroyEnvironment()

	clf := classifier.New(classifier.Config{
		ModelPath:           cfg.ModelPath,
		PoolSize:            cfg.PoolSize,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
	})
	if err := clf.Load(); err != nil {
		// Keep serving: health reports degraded and predictions
		// return 503 until a restart with a valid model.
		log.Printf("model load failed: %v", err)
	}
	defer clf.Close()

	app := &AppState{
		Config:     cfg,
		Classifier: clf,
	}

	srv := &http.Server{
		Handler:      app.router(),
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	log.Printf("listening on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

func (s *AppState) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/api/v1", s.handleAPIInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/model-info", s.handleModelInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/predict", s.handlePredict).Methods(http.MethodPost)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	return s.withRecovery(s.withRequestLogging(s.withCORS(r)))
}
