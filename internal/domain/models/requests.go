package models

// Requests for the market-data HTTP endpoints. Defined in domain for reuse.

type QuoteRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,min=3,max=12"`
}

type SignalRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,min=3,max=12"`
}

type HistoryRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,min=3,max=12"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}
