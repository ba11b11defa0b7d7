package models

import "time"

// Jar sources.
const (
	SourceAPI    = "monobank-api"
	SourceScrape = "scrape-headless"
)

// Jar is a donation jar balance. For SourceAPI balance and goal are minor
// currency units as reported by the bank; for SourceScrape they are rounded
// major units read from the public page.
type Jar struct {
	SendID       string `json:"sendId"`
	Title        string `json:"title,omitempty"`
	CurrencyCode int    `json:"currencyCode,omitempty"`
	Balance      int64  `json:"balance"`
	Goal         *int64 `json:"goal"`
	Source       string `json:"source"`
}

// JarSnapshot is a Jar observed at a point in time.
type JarSnapshot struct {
	Jar
	ObservedAt time.Time `json:"observedAt"`
}

// NewSnapshot stamps j with at.
func NewSnapshot(j *Jar, at time.Time) *JarSnapshot {
	return &JarSnapshot{Jar: *j, ObservedAt: at.UTC()}
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
