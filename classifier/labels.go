package classifier

// Label is one of the five waste categories the model distinguishes.
type Label string

const (
	Glass   Label = "glass"
	Metal   Label = "metal"
	Organic Label = "organic"
	Paper   Label = "paper"
	Plastic Label = "plastic"
)

// Labels is the canonical class ordering. The model's output vector is
// aligned to this ordering at export time, so it must never change
// independently of the model artifact.
var Labels = [...]Label{Glass, Metal, Organic, Paper, Plastic}

// NumClasses is the size of the model's output vector.
const NumClasses = len(Labels)

// ClassNames returns the ordering as plain strings for JSON payloads.
func ClassNames() []string {
	names := make([]string, NumClasses)
	for i, label := range Labels {
		names[i] = string(label)
	}
	return names
}
