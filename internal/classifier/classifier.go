// Package classifier serves predictions from a pre-trained text
// classification artifact. The artifact is produced offline by the training
// side and consumed here as an opaque scorer: cleaned text in, label and
// per-class probabilities out. Nothing in this package retrains or mutates
// the model.
package classifier

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"strings"
)

// artifact is the serialized form of the trained pipeline: a tf-idf
// vocabulary over a binary logistic regression. Field layout is the contract
// with the training exporter; changing it invalidates every deployed model
// file.
type artifact struct {
	Classes      []string
	Vocabulary   map[string]int
	IDF          []float64
	Coefficients []float64
	Intercept    float64
}

// Model is the loaded artifact. It is read-only after Load and safe for
// concurrent use from request handlers.
type Model struct {
	art artifact
}

// Load reads and validates the artifact at path. A missing or undecodable
// artifact is a startup-fatal condition for callers; Load itself just
// returns the error.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	var art artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if len(art.Classes) != 2 {
		return nil, fmt.Errorf("model artifact: want 2 classes, got %d", len(art.Classes))
	}
	n := len(art.Vocabulary)
	if len(art.IDF) != n || len(art.Coefficients) != n {
		return nil, fmt.Errorf("model artifact: vocabulary size %d, idf %d, coefficients %d", n, len(art.IDF), len(art.Coefficients))
	}
	for term, idx := range art.Vocabulary {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("model artifact: term %q has index %d outside [0,%d)", term, idx, n)
		}
	}

	return &Model{art: art}, nil
}

// Classes returns the label names, negative class first.
func (m *Model) Classes() []string {
	return m.art.Classes
}

// Classify scores cleaned text and returns the predicted label with the
// confidence as a percentage rounded to two decimal places. Identical input
// always yields identical output for a fixed artifact.
func (m *Model) Classify(cleaned string) (string, float64) {
	p := m.probability(cleaned)

	// p is the probability of the positive class (index 1).
	label := m.art.Classes[1]
	conf := p
	if p < 0.5 {
		label = m.art.Classes[0]
		conf = 1 - p
	}
	return label, math.Round(conf*100*100) / 100
}

// probability computes the positive-class probability: tf-idf of the cleaned
// text, L2-normalized, through the logistic link.
func (m *Model) probability(cleaned string) float64 {
	weights := make(map[int]float64)
	for _, term := range strings.Fields(cleaned) {
		if idx, ok := m.art.Vocabulary[term]; ok {
			weights[idx]++
		}
	}

	var norm float64
	for idx, tf := range weights {
		w := tf * m.art.IDF[idx]
		weights[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
	}

	score := m.art.Intercept
	for idx, w := range weights {
		if norm > 0 {
			w /= norm
		}
		score += w * m.art.Coefficients[idx]
	}

	return 1 / (1 + math.Exp(-score))
}
