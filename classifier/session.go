package classifier

import (
	"fmt"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/gomibako/garbage-classifier-service/preprocess"
)

// ONNX graph tensor names fixed at model export time.
const (
	inputName  = "input"
	outputName = "output"
)

var (
	inputShape  = []int64{1, preprocess.TargetHeight, preprocess.TargetWidth, preprocess.Channels}
	outputShape = []int64{1, int64(NumClasses)}
)

// modelSession is one ONNX session with its pre-bound input/output
// tensors. Bound tensors make Run() cheap but mean a session must
// never be used by two requests at once; the pool enforces that.
type modelSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

func newModelSession(modelPath string) (*modelSession, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()

	options.SetIntraOpNumThreads(runtime.NumCPU())
	options.SetInterOpNumThreads(runtime.NumCPU())

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(inputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(outputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &modelSession{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
	}, nil
}

func (s *modelSession) run(data []float32) (*Result, error) {
	copy(s.input.GetData(), data)

	if err := s.session.Run(); err != nil {
		return nil, &InferenceError{Cause: err}
	}

	return decodeScores(s.output.GetData()), nil
}

func (s *modelSession) destroy() {
	if s.session != nil {
		s.session.Destroy()
	}
	if s.input != nil {
		s.input.Destroy()
	}
	if s.output != nil {
		s.output.Destroy()
	}
}

// decodeScores maps the raw output vector onto the fixed label
// ordering. The strict comparison keeps the first occurrence on ties.
func decodeScores(scores []float32) *Result {
	probabilities := make(map[Label]float32, NumClasses)
	top := 0
	for i, label := range Labels {
		probabilities[label] = scores[i]
		if scores[i] > scores[top] {
			top = i
		}
	}
	return &Result{
		Label:         Labels[top],
		Confidence:    scores[top],
		Probabilities: probabilities,
	}
}
