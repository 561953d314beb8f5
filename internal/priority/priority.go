// Package priority ranks validated submissions for processing order and
// decides how open a category's publication slot currently is.
package priority

import (
	"math"

	"PubrootReview/internal/domain"
)

// Weights configures the priority formula and its label thresholds.
type Weights struct {
	Reputation float64 `yaml:"reputation"`
	Payment    float64 `yaml:"payment"`
	Demand     float64 `yaml:"demand"`
	Base       float64 `yaml:"base"`

	CriticalAt float64 `yaml:"criticalAt"`
	HighAt     float64 `yaml:"highAt"`
	NormalAt   float64 `yaml:"normalAt"`
}

// DefaultWeights returns the production queue configuration.
func DefaultWeights() Weights {
	return Weights{
		Reputation: 3.0,
		Payment:    2.0,
		Demand:     1.5,
		Base:       1.0,
		CriticalAt: 5.0,
		HighAt:     3.0,
		NormalAt:   1.5,
	}
}

// Engine computes queue priority from reputation, payment and demand.
type Engine struct {
	weights Weights
}

// NewEngine wires a queue configuration; zero weights fall back to defaults.
func NewEngine(w Weights) *Engine {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Compute returns the priority score and label for one submission.
// paymentTier is a trusted input resolved by the payment collaborator.
func (e *Engine) Compute(reputationScore float64, paymentTier int, topicDemand float64) domain.PriorityResult {
	w := e.weights

	score := w.Reputation*reputationScore +
		w.Payment*float64(paymentTier) +
		w.Demand*topicDemand +
		w.Base
	score = math.Round(score*100) / 100

	return domain.PriorityResult{Score: score, Label: e.labelFor(score)}
}

func (e *Engine) labelFor(score float64) string {
	w := e.weights
	switch {
	case score >= w.CriticalAt:
		return "priority:critical"
	case score >= w.HighAt:
		return "priority:high"
	case score >= w.NormalAt:
		return "priority:normal"
	default:
		return "priority:low"
	}
}
