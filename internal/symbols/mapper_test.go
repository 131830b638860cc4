package symbols

import (
	"testing"

	"FXPulse/internal/domain/models"
)

func TestRoundTripAllCanonical(t *testing.T) {
	m := NewMapper()
	for _, broker := range m.Brokers() {
		display := m.ToDisplay(broker)
		back := m.ToBroker(display)
		if back != broker {
			t.Errorf("round trip %s -> %s -> %s", broker, display, back)
		}
	}
}

func TestToBrokerSynthesizesUnknownPairs(t *testing.T) {
	m := NewMapper()
	cases := map[string]string{
		"EURSEK": "EUR_SEK",
		"USDNOK": "USD_NOK",
		"GBPZAR": "GBP_ZAR",
	}
	for display, want := range cases {
		if got := m.ToBroker(display); got != want {
			t.Errorf("ToBroker(%s) = %s, want %s", display, got, want)
		}
	}
	// Non-forex six-letter tickers get split too; a known approximation.
	if got := m.ToBroker("GOOGLE"); got != "GOO_GLE" {
		t.Errorf("ToBroker(GOOGLE) = %s, want GOO_GLE", got)
	}
}

func TestToDisplayFallbackStripsSeparator(t *testing.T) {
	m := NewMapper()
	if got := m.ToDisplay("EUR_SEK"); got != "EURSEK" {
		t.Errorf("ToDisplay(EUR_SEK) = %s", got)
	}
}

func TestClassify(t *testing.T) {
	m := NewMapper()
	tests := []struct {
		symbol string
		want   models.Category
	}{
		{"XAU_USD", models.CategoryMetal},
		{"GOLD", models.CategoryMetal},
		{"US30_USD", models.CategoryIndex},
		{"NAS100", models.CategoryIndex},
		{"EUR_USD", models.CategoryForex},
		{"EURUSD", models.CategoryForex},
		{"EURSEK", models.CategoryForex},
		{"ABC", models.CategoryOther},
		{"US30USD", models.CategoryIndex},
	}
	for _, tt := range tests {
		if got := m.Classify(tt.symbol); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	m := NewMapper()
	valid := []string{"GBP/JPY", "EUR_USD", "EURUSD", "GOLD", "US30", "EURSEK", "eur_usd"}
	for _, s := range valid {
		if !m.IsValid(s) {
			t.Errorf("IsValid(%s) = false, want true", s)
		}
	}
	invalid := []string{"ABC", "", "EUR_USD_X", "1234567"}
	for _, s := range invalid {
		if m.IsValid(s) {
			t.Errorf("IsValid(%s) = true, want false", s)
		}
	}
}

func TestInfoEitherRepresentation(t *testing.T) {
	m := NewMapper()
	fromBroker := m.Info("XAU_USD")
	fromDisplay := m.Info("GOLD")
	if fromBroker != fromDisplay {
		t.Fatalf("info mismatch: %+v vs %+v", fromBroker, fromDisplay)
	}
	if fromBroker.Broker != "XAU_USD" || fromBroker.Display != "GOLD" || fromBroker.Category != models.CategoryMetal {
		t.Fatalf("unexpected info %+v", fromBroker)
	}
}
