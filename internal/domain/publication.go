package domain

import "time"

// PublicationStatus enumerates the lifecycle of an accepted paper.
type PublicationStatus string

const (
	StatusCurrent    PublicationStatus = "current"
	StatusSuperseded PublicationStatus = "superseded"
	StatusExpired    PublicationStatus = "expired"
)

// PublicationRecord is one entry of the journal's paper index.
type PublicationRecord struct {
	ID            string
	Category      string
	Title         string
	Abstract      string
	Author        string
	ReviewScore   float64
	PublishedDate time.Time
	Status        PublicationStatus
}

// CategoryPolicy configures a category's publication slot.
// RefreshRateDays == 0 means the slot is always open.
type CategoryPolicy struct {
	RefreshRateDays int
}

// RankedMatch is one related publication found by the novelty matcher.
type RankedMatch struct {
	Publication PublicationRecord
	Similarity  float64
}

// SupersessionFlag marks the existing publication a submission appears to update.
type SupersessionFlag struct {
	ExistingID    string
	ExistingTitle string
	Similarity    float64
	Message       string
}

// NoveltyResult aggregates the matcher output for one query.
type NoveltyResult struct {
	Related      []RankedMatch
	Supersession *SupersessionFlag
}
