// Package classifier owns the ONNX garbage classification model: its
// load lifecycle, a pool of inference sessions, and prediction.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/gomibako/garbage-classifier-service/preprocess"
)

// State is the model lifecycle. It moves Unloaded -> Loading -> Ready,
// or Unloaded -> Loading -> Failed, exactly once per process.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotLoaded reports a prediction attempted while the model is not
// in the Ready state.
var ErrNotLoaded = errors.New("model not loaded")

// InferenceError wraps a failure inside the forward pass. Callers
// decide whether to resubmit; the classifier never retries.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Cause)
}

func (e *InferenceError) Unwrap() error { return e.Cause }

// Result is one prediction: the top label, its confidence, and the
// full per-class distribution. Never mutated after construction.
type Result struct {
	Label         Label
	Confidence    float32
	Probabilities map[Label]float32
}

// Info describes the loaded model for the model-info endpoint.
type Info struct {
	Status              string   `json:"status"`
	InputShape          []int64  `json:"input_shape,omitempty"`
	OutputShape         []int64  `json:"output_shape,omitempty"`
	Classes             []string `json:"classes,omitempty"`
	NumClasses          int      `json:"num_classes,omitempty"`
	ModelPath           string   `json:"model_path,omitempty"`
	ConfidenceThreshold float64  `json:"confidence_threshold,omitempty"`
}

type Config struct {
	ModelPath           string
	PoolSize            int
	ConfidenceThreshold float64
}

// Classifier is constructed once at startup and shared read-only by
// every request handler.
type Classifier struct {
	modelPath string
	poolSize  int
	threshold float64

	state atomic.Int32
	pool  *sessionPool
}

func New(cfg Config) *Classifier {
	size := cfg.PoolSize
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &Classifier{
		modelPath: cfg.ModelPath,
		poolSize:  size,
		threshold: cfg.ConfidenceThreshold,
	}
}

// Load builds the session pool from the model artifact and warms it
// up. On failure the classifier stays in the Failed state and every
// Predict call reports ErrNotLoaded.
func (c *Classifier) Load() error {
	if !c.state.CompareAndSwap(int32(StateUnloaded), int32(StateLoading)) {
		return fmt.Errorf("load attempted in state %s", c.State())
	}

	if _, err := os.Stat(c.modelPath); err != nil {
		c.state.Store(int32(StateFailed))
		return fmt.Errorf("model file not found: %s", c.modelPath)
	}

	start := time.Now()
	pool, err := newSessionPool(c.modelPath, c.poolSize)
	if err != nil {
		c.state.Store(int32(StateFailed))
		return fmt.Errorf("load model %s: %w", c.modelPath, err)
	}
	c.pool = pool
	c.state.Store(int32(StateReady))

	log.Printf("model loaded from %s in %.2fms (%d sessions)",
		c.modelPath,ms(time.Since(start)), c.poolSize)

	c.warmup()
	return nil
}

// warmup runs one throwaway inference on random input so lazy kernel
// initialization happens now instead of on the first user request.
// A failed warm-up is logged but does not fail the load.
func (c *Classifier) warmup() {
	dummy := make([]float32, preprocess.TensorSize)
	for i := range dummy {
		dummy[i] = rand.Float32()
	}

	session, err := c.pool.acquire(context.Background())
	if err != nil {
		log.Printf("warning: model warm-up skipped: %v", err)
		return
	}
	defer c.pool.release(session)

	start := time.Now()
	if _, err := session.run(dummy); err != nil {
		log.Printf("warning: model warm-up failed: %v", err)
		return
	}
	log.Printf("model warmed up with dummy prediction in %.2fms", ms(time.Since(start)))
}

func (c *Classifier) State() State {
	return State(c.state.Load())
}

func (c *Classifier) Ready() bool {
	return c.State() == StateReady
}

func (c *Classifier) ConfidenceThreshold() float64 {
	return c.threshold
}

// Predict runs one forward pass. The state check happens before any
// tensor is touched; a non-Ready model always reports ErrNotLoaded.
func (c *Classifier) Predict(ctx context.Context, tensor *preprocess.Tensor) (*Result, error) {
	if !c.Ready() {
		return nil, ErrNotLoaded
	}

	session, err := c.pool.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.pool.release(session)

	return session.run(tensor.Data)
}

func (c *Classifier) Info() Info {
	if !c.Ready() {
		return Info{Status: "not_loaded"}
	}
	return Info{
		Status:              "loaded",
		InputShape:          inputShape,
		OutputShape:         outputShape,
		Classes:             ClassNames(),
		NumClasses:          NumClasses,
		ModelPath:           c.modelPath,
		ConfidenceThreshold: c.threshold,
	}
}

func (c *Classifier) Metrics() PoolMetrics {
	if c.pool == nil {
		return PoolMetrics{}
	}
	return c.pool.snapshot()
}

// Close releases every session. Safe to call regardless of state.
func (c *Classifier) Close() {
	if c.pool != nil {
		c.pool.destroy()
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
