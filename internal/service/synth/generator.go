package synth

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/symbols"
)

// Generator fabricates internally consistent market quotes for when no live
// feed is available. Quotes are tagged synthetic and carry the fallback
// reason; they are a development/demo placeholder, not market data.
type Generator struct {
	mapper *symbols.Mapper

	mu  sync.Mutex
	rnd *rand.Rand
}

// basePrices anchors synthesis per instrument. Roughly plausible levels;
// exact values are irrelevant as long as derived fields stay consistent.
var basePrices = map[string]float64{
	"EUR_USD": 1.0850,
	"GBP_USD": 1.2650,
	"USD_JPY": 149.50,
	"USD_CHF": 0.8850,
	"AUD_USD": 0.6550,
	"USD_CAD": 1.3650,
	"NZD_USD": 0.6050,
	"EUR_GBP": 0.8580,
	"EUR_JPY": 162.20,
	"GBP_JPY": 189.10,
	"EUR_CHF": 0.9600,
	"AUD_JPY": 97.90,
	"CHF_JPY": 168.90,
	"EUR_AUD": 1.6560,
	"GBP_CHF": 1.1190,
	"AUD_NZD": 1.0830,
	"CAD_JPY": 109.50,
	"NZD_JPY": 90.40,
	"EUR_CAD": 1.4810,
	"GBP_AUD": 1.9310,
	"XAU_USD": 2350.00,
	"XAG_USD": 28.40,
	"US30_USD":   39100.0,
	"NAS100_USD": 18300.0,
	"SPX500_USD": 5300.0,
	"DE30_EUR":   18500.0,
}

const defaultBasePrice = 1.0

// perturbation and high/low band, both ±0.5%.
const intradayBand = 0.005

// NewGenerator creates a generator seeded from the clock.
func NewGenerator(mapper *symbols.Mapper) *Generator {
	return NewGeneratorWithSeed(mapper, time.Now().UnixNano())
}

// NewGeneratorWithSeed creates a deterministic generator for tests.
func NewGeneratorWithSeed(mapper *symbols.Mapper, seed int64) *Generator {
	return &Generator{
		mapper: mapper,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

// Generate fabricates a quote for a broker symbol.
func (g *Generator) Generate(brokerSymbol string, reason models.FallbackReason) *models.MarketQuote {
	base, ok := basePrices[brokerSymbol]
	if !ok {
		base = defaultBasePrice
	}

	g.mu.Lock()
	perturb := (g.rnd.Float64()*2 - 1) * intradayBand
	volume := 1000 + g.rnd.Float64()*4000
	g.mu.Unlock()

	mid := base * (1 + perturb)
	spread := g.SpreadFor(brokerSymbol)
	bid := mid - spread/2
	ask := bid + spread

	return &models.MarketQuote{
		Symbol:    brokerSymbol,
		Display:   g.mapper.ToDisplay(brokerSymbol),
		Bid:       bid,
		Ask:       ask,
		Spread:    spread,
		High:      bid * (1 + intradayBand),
		Low:       bid * (1 - intradayBand),
		Volume:    volume,
		Timestamp: time.Now().UTC(),
		Source:    models.SourceSynthetic,
		Reason:    reason,
	}
}

// SpreadFor returns the fixed synthetic spread in price units. JPY pairs and
// metals quote fewer decimal places, so their spreads are wider in absolute
// terms; indices wider still.
func (g *Generator) SpreadFor(brokerSymbol string) float64 {
	switch g.mapper.Classify(brokerSymbol) {
	case models.CategoryMetal:
		return 0.50
	case models.CategoryIndex:
		return 2.5
	case models.CategoryForex:
		if strings.Contains(brokerSymbol, "JPY") {
			return 0.030
		}
		return 0.00020
	default:
		return 0.0005
	}
}
