package symbols

import (
	"strings"

	"FXPulse/internal/domain/models"
)

// Mapper translates between broker-native (EUR_USD) and display-native
// (EURUSD, GOLD) instrument identifiers. Both directions are derived from a
// single canonical table at construction so they cannot drift apart.
// Immutable after construction, safe for concurrent readers.
type Mapper struct {
	toDisplay map[string]string
	toBroker  map[string]string
	metals    map[string]struct{}
	indices   map[string]struct{}
}

// canonicalTable is the single source of truth: broker symbol → display symbol.
var canonicalTable = map[string]string{
	// majors
	"EUR_USD": "EURUSD",
	"GBP_USD": "GBPUSD",
	"USD_JPY": "USDJPY",
	"USD_CHF": "USDCHF",
	"AUD_USD": "AUDUSD",
	"USD_CAD": "USDCAD",
	"NZD_USD": "NZDUSD",
	// crosses
	"EUR_GBP": "EURGBP",
	"EUR_JPY": "EURJPY",
	"GBP_JPY": "GBPJPY",
	"EUR_CHF": "EURCHF",
	"AUD_JPY": "AUDJPY",
	"CHF_JPY": "CHFJPY",
	"EUR_AUD": "EURAUD",
	"GBP_CHF": "GBPCHF",
	"AUD_NZD": "AUDNZD",
	"CAD_JPY": "CADJPY",
	"NZD_JPY": "NZDJPY",
	"EUR_CAD": "EURCAD",
	"GBP_AUD": "GBPAUD",
	// metals
	"XAU_USD": "GOLD",
	"XAG_USD": "SILVER",
	// indices
	"US30_USD":   "US30",
	"NAS100_USD": "NAS100",
	"SPX500_USD": "SPX500",
	"DE30_EUR":   "DE30",
}

var metalBrokers = []string{"XAU_USD", "XAG_USD"}

var indexBrokers = []string{"US30_USD", "NAS100_USD", "SPX500_USD", "DE30_EUR"}

// NewMapper builds the bidirectional mapping from the canonical table.
func NewMapper() *Mapper {
	m := &Mapper{
		toDisplay: make(map[string]string, len(canonicalTable)),
		toBroker:  make(map[string]string, len(canonicalTable)),
		metals:    make(map[string]struct{}),
		indices:   make(map[string]struct{}),
	}
	for broker, display := range canonicalTable {
		m.toDisplay[broker] = display
		m.toBroker[display] = broker
	}
	for _, b := range metalBrokers {
		m.metals[b] = struct{}{}
		m.metals[stripSeparators(b)] = struct{}{}
		m.metals[canonicalTable[b]] = struct{}{}
	}
	for _, b := range indexBrokers {
		m.indices[b] = struct{}{}
		m.indices[stripSeparators(b)] = struct{}{}
		m.indices[canonicalTable[b]] = struct{}{}
	}
	return m
}

// ToDisplay converts a broker symbol to its display form. Unknown symbols
// fall back to stripping the separator, which is deterministic but lossy.
func (m *Mapper) ToDisplay(brokerSymbol string) string {
	s := normalize(brokerSymbol)
	if d, ok := m.toDisplay[s]; ok {
		return d
	}
	return stripSeparators(s)
}

// ToBroker converts a display symbol to its broker form. Unknown six-letter
// pairs are synthesized as XXX_YYY; anything else comes back unresolved.
func (m *Mapper) ToBroker(displaySymbol string) string {
	s := normalize(displaySymbol)
	if b, ok := m.toBroker[s]; ok {
		return b
	}
	cleaned := stripSeparators(s)
	if cleaned != s {
		if b, ok := m.toBroker[cleaned]; ok {
			return b
		}
	}
	if isSixAlpha(cleaned) {
		return cleaned[:3] + "_" + cleaned[3:]
	}
	return displaySymbol
}

// IsValid reports whether the symbol is a known instrument or matches the
// six-letter forex shape after separator stripping.
func (m *Mapper) IsValid(symbol string) bool {
	s := normalize(symbol)
	if _, ok := m.toDisplay[s]; ok {
		return true
	}
	if _, ok := m.toBroker[s]; ok {
		return true
	}
	cleaned := stripSeparators(s)
	if _, ok := m.toBroker[cleaned]; ok {
		return true
	}
	return isSixAlpha(cleaned)
}

// Classify returns a coarse category for the symbol. The six-alpha forex
// heuristic assumes ISO currency codes, so any non-forex six-letter ticker
// is misclassified as forex; there is no disambiguation upstream either.
func (m *Mapper) Classify(symbol string) models.Category {
	s := normalize(symbol)
	cleaned := stripSeparators(s)
	if _, ok := m.metals[s]; ok {
		return models.CategoryMetal
	}
	if _, ok := m.metals[cleaned]; ok {
		return models.CategoryMetal
	}
	if _, ok := m.indices[s]; ok {
		return models.CategoryIndex
	}
	if _, ok := m.indices[cleaned]; ok {
		return models.CategoryIndex
	}
	if isSixAlpha(cleaned) {
		return models.CategoryForex
	}
	return models.CategoryOther
}

// Info returns both representations plus the category for a symbol given in
// either form.
func (m *Mapper) Info(symbol string) models.SymbolInfo {
	broker := m.ToBroker(symbol)
	return models.SymbolInfo{
		Broker:   broker,
		Display:  m.ToDisplay(broker),
		Category: m.Classify(broker),
	}
}

// Brokers returns all broker symbols in the canonical table.
func (m *Mapper) Brokers() []string {
	out := make([]string, 0, len(m.toDisplay))
	for b := range m.toDisplay {
		out = append(out, b)
	}
	return out
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func stripSeparators(s string) string {
	return strings.NewReplacer("_", "", "/", "", "-", "").Replace(s)
}

func isSixAlpha(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
