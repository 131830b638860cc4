package models

import "time"

// QuoteSource tags quote provenance. Synthetic quotes must never be
// presented as live data; the tag travels with the quote everywhere.
type QuoteSource string

const (
	SourceLive      QuoteSource = "live"
	SourceSynthetic QuoteSource = "synthetic"
)

// FallbackReason names why a synthetic quote was produced.
type FallbackReason string

const (
	ReasonNoCredential FallbackReason = "no_credential"
	ReasonUnauthorized FallbackReason = "unauthorized"
	ReasonNoData       FallbackReason = "no_data"
	ReasonNetwork      FallbackReason = "network_failure"
)

// MarketQuote is a best-effort quote for one instrument. Constructed fresh
// per request and never persisted.
type MarketQuote struct {
	Symbol    string         `json:"symbol"`  // broker form, e.g. EUR_USD
	Display   string         `json:"display"` // display form, e.g. EURUSD
	Bid       float64        `json:"bid"`
	Ask       float64        `json:"ask"`
	Spread    float64        `json:"spread"`
	High      float64        `json:"high"`
	Low       float64        `json:"low"`
	Volume    float64        `json:"volume"`
	Timestamp time.Time      `json:"timestamp"`
	Source    QuoteSource    `json:"source"`
	Reason    FallbackReason `json:"reason,omitempty"` // set only when synthetic
}

// Mid returns the bid/ask midpoint.
func (q *MarketQuote) Mid() float64 {
	return (q.Bid + q.Ask) / 2
}
