package predictor

import (
	"errors"
	"math"
)

// DefaultLearningRate is the step applied to every corrected weight.
const DefaultLearningRate = 0.01

// zeroTolerance absorbs float drift when a weight is walked back to zero.
const zeroTolerance = 1e-9

var ErrInvalidLearningRate = errors.New("learning rate must be positive")

// Predictor is a sparse table of weights from input features to output features.
type Predictor struct {
	weights map[Feature]map[Feature]float64
	rate    float64
}

// New creates an empty predictor with the given learning rate.
func New(rate float64) (*Predictor, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, ErrInvalidLearningRate
	}
	return &Predictor{
		weights: make(map[Feature]map[Feature]float64),
		rate:    rate,
	}, nil
}

// Rate returns the learning rate.
func (p *Predictor) Rate() float64 {
	return p.rate
}

// Weight returns the weight from in to out; zero if absent.
func (p *Predictor) Weight(in, out Feature) float64 {
	return p.weights[in][out]
}

// Len returns the number of non-zero weights.
func (p *Predictor) Len() int {
	n := 0
	for _, row := range p.weights {
		n += len(row)
	}
	return n
}

// scores sums the weights of every active input per output feature.
func (p *Predictor) scores(input Key) map[Feature]float64 {
	sums := make(map[Feature]float64)
	input.Each(func(in Feature) {
		for out, w := range p.weights[in] {
			sums[out] += w
		}
	})
	return sums
}

// Prediction is the outcome expected for an input key.
type Prediction struct {
	Key   Key     // Best position plus every other positively scored output
	Next  Feature // Best position feature, valid when Known
	Known bool    // False when no position has any weight yet
}

// Predict returns the expected output for input: the highest scoring
// position (ties go to the lower cell index) plus every other output with a
// strictly positive score.
func (p *Predictor) Predict(input Key) Prediction {
	sums := p.scores(input)
	out := NewKey()

	var best Feature
	bestScore, found := math.Inf(-1), false
	for f, score := range sums {
		if f.Kind != Position {
			continue
		}
		if !found || score > bestScore || (score == bestScore && f.Value < best.Value) {
			best, bestScore, found = f, score, true
		}
	}
	if found {
		out.Put(best)
	}

	for f, score := range sums {
		if score > 0 {
			out.Put(f)
		}
	}
	return Prediction{Key: out, Next: best, Known: found}
}

// Update corrects the weights after the actual outcome is known. Outputs that
// were predicted but did not happen lose rate under every active input;
// outputs that happened without being predicted gain rate. Identical keys
// leave the table untouched.
func (p *Predictor) Update(input, predicted, actual Key) {
	predicted.Each(func(out Feature) {
		if actual.Has(out) {
			return
		}
		input.Each(func(in Feature) {
			p.adjust(in, out, -p.rate)
		})
	})
	actual.Each(func(out Feature) {
		if predicted.Has(out) {
			return
		}
		input.Each(func(in Feature) {
			p.adjust(in, out, p.rate)
		})
	})
}

// adjust moves one weight by delta. A weight that reaches zero, or would
// cross it, is removed so tables stay sparse and never flip sign.
func (p *Predictor) adjust(in, out Feature, delta float64) {
	row, ok := p.weights[in]
	if !ok {
		row = make(map[Feature]float64)
		p.weights[in] = row
	}

	old := row[out]
	next := old + delta
	crossed := old != 0 && math.Signbit(old) != math.Signbit(next)
	if crossed || math.Abs(next) < zeroTolerance {
		delete(row, out)
		if len(row) == 0 {
			delete(p.weights, in)
		}
		return
	}
	row[out] = next
}
