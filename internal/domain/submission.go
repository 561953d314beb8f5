package domain

// RepoVisibility describes a submission's linked repository, if any.
type RepoVisibility string

const (
	RepoPublic  RepoVisibility = "public"
	RepoPrivate RepoVisibility = "private"
	RepoNone    RepoVisibility = "no-repo"
)

// ParsedSubmission holds the structured fields extracted from a raw submission.
// It lives only for the duration of one pipeline run.
type ParsedSubmission struct {
	Title             string
	Category          string
	Abstract          string
	Body              string
	SupportingRepo    string
	CommitSHA         string
	RepoVisibility    RepoVisibility
	PaymentCode       string
	Author            string
	WordCountAbstract int
	WordCountBody     int
}

// ValidationResult reports the gate outcome for one submission.
// Errors block processing; warnings never do.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Parsed   ParsedSubmission
}

// PriorityResult carries the queue placement computed for a submission.
type PriorityResult struct {
	Score float64
	Label string
}
