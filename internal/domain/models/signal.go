package models

import "time"

// Direction is the trade idea for a signal.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
	DirectionHold Direction = "HOLD"
)

// TradeSignal is a derived trade idea with price levels and risk metrics.
type TradeSignal struct {
	Symbol     string      `json:"symbol"`
	Display    string      `json:"display"`
	Direction  Direction   `json:"direction"`
	Entry      float64     `json:"entry"`
	StopLoss   float64     `json:"stop_loss"`
	TakeProfit float64     `json:"take_profit"`
	RiskReward float64     `json:"risk_reward"`
	Confidence float64     `json:"confidence"` // 0..1
	PipSize    float64     `json:"pip_size"`
	Source     QuoteSource `json:"source"` // provenance of the quote the signal was built from
	Factors    []string    `json:"factors,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
