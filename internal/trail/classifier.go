package trail

// DefaultThreshold only treats pure white as bright.
const DefaultThreshold = 255

// Classifier decides whether a source pixel is bright.
type Classifier struct {
	Threshold uint8
}

// NewClassifier returns a classifier for the given per-channel threshold.
func NewClassifier(threshold uint8) Classifier {
	return Classifier{Threshold: threshold}
}

// Bright reports whether every channel meets the threshold.
func (c Classifier) Bright(r, g, b uint8) bool {
	return r >= c.Threshold && g >= c.Threshold && b >= c.Threshold
}
