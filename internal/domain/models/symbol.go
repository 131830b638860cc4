package models

// Category is a coarse instrument classification derived from symbol shape.
type Category string

const (
	CategoryForex Category = "FOREX"
	CategoryMetal Category = "METAL"
	CategoryIndex Category = "INDEX"
	CategoryOther Category = "OTHER"
)

// SymbolInfo is a read-only view combining both identifier representations.
type SymbolInfo struct {
	Broker   string   `json:"broker"`
	Display  string   `json:"display"`
	Category Category `json:"category"`
}
