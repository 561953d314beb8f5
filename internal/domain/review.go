package domain

// Verdict is the external reviewer's accept/reject call.
type Verdict string

const (
	VerdictAccepted Verdict = "ACCEPTED"
	VerdictRejected Verdict = "REJECTED"
)

// Review is the structured result returned by the grounded review service.
type Review struct {
	Score      float64
	Verdict    Verdict
	Summary    string
	Strengths  []string
	Weaknesses []string
}

// LiteratureMatch is one related work found in an external academic source.
type LiteratureMatch struct {
	Source    string
	ID        string
	Title     string
	Abstract  string
	Authors   []string
	Published string
	URL       string
	Citations int
}

// ReviewContext bundles everything the reviewer sees besides the submission itself.
type ReviewContext struct {
	Novelty    NoveltyResult
	Literature []LiteratureMatch
}

// DecisionOutcome summarizes one completed pipeline run.
type DecisionOutcome string

const (
	OutcomeInvalid  DecisionOutcome = "invalid"
	OutcomeAccepted DecisionOutcome = "accepted"
	OutcomeRejected DecisionOutcome = "rejected"
	OutcomeError    DecisionOutcome = "error"
)
