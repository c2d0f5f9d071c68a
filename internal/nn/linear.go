package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/nbeats/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
	backend     B
}

// LinearOption configures a Linear layer.
type LinearOption func(*linearOptions)

type linearOptions struct {
	name string
	rng  *rand.Rand
	bias bool
}

// WithName prefixes parameter names, e.g. "block0.fc1" gives "block0.fc1.weight".
func WithName(name string) LinearOption {
	return func(o *linearOptions) { o.name = name }
}

// WithRand sets the random source used for weight initialization.
func WithRand(rng *rand.Rand) LinearOption {
	return func(o *linearOptions) { o.rng = rng }
}

// WithoutBias disables the bias term.
func WithoutBias() LinearOption {
	return func(o *linearOptions) { o.bias = false }
}

// NewLinear creates a new Linear layer.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, opts ...LinearOption) *Linear[B] {
	o := linearOptions{bias: true}
	for _, opt := range opts {
		opt(&o)
	}

	prefix := ""
	if o.name != "" {
		prefix = o.name + "."
	}

	weightTensor := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, o.rng, backend)
	l := &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter(prefix+"weight", weightTensor),
		backend:     backend,
	}
	if o.bias {
		l.bias = NewParameter(prefix+"bias", Zeros(tensor.Shape{outFeatures}, backend))
	}
	return l
}

// Forward computes y = x @ W.T + b.
//
// Panics if the input is not [batch_size, in_features].
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	output := input.MatMul(l.weight.Tensor().T())

	if l.bias != nil {
		// [out] -> [1, out] so it broadcasts over the batch.
		output = output.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
	}

	return output
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// SetWeights overwrites the layer's weights and bias in place.
// weight is row-major [out_features, in_features]; bias may be nil to zero it.
func (l *Linear[B]) SetWeights(weight, bias []float32) error {
	w := l.weight.Tensor().Data()
	if len(weight) != len(w) {
		return fmt.Errorf("weight has %d values, expected %d", len(weight), len(w))
	}
	copy(w, weight)

	if l.bias == nil {
		if bias != nil {
			return fmt.Errorf("layer has no bias")
		}
		return nil
	}
	b := l.bias.Tensor().Data()
	if bias == nil {
		clear(b)
		return nil
	}
	if len(bias) != len(b) {
		return fmt.Errorf("bias has %d values, expected %d", len(bias), len(b))
	}
	copy(b, bias)
	return nil
}
