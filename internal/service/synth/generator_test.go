package synth

import (
	"math"
	"testing"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/symbols"
)

func TestGenerateConsistency(t *testing.T) {
	g := NewGeneratorWithSeed(symbols.NewMapper(), 1)

	for i := 0; i < 100; i++ {
		q := g.Generate("EUR_USD", models.ReasonNoCredential)

		if q.Source != models.SourceSynthetic {
			t.Fatalf("source = %s", q.Source)
		}
		if q.Reason != models.ReasonNoCredential {
			t.Fatalf("reason = %s", q.Reason)
		}
		if q.Ask <= q.Bid {
			t.Fatalf("ask %v <= bid %v", q.Ask, q.Bid)
		}
		if math.Abs(q.Spread-(q.Ask-q.Bid)) > 1e-9 {
			t.Fatalf("spread %v != ask-bid %v", q.Spread, q.Ask-q.Bid)
		}
		if q.High <= q.Bid || q.Low >= q.Bid {
			t.Fatalf("high/low %v/%v not bracketing bid %v", q.High, q.Low, q.Bid)
		}
	}
}

func TestGeneratePerturbationBounded(t *testing.T) {
	g := NewGeneratorWithSeed(symbols.NewMapper(), 2)
	base := 1.0850 // EUR_USD anchor

	for i := 0; i < 200; i++ {
		q := g.Generate("EUR_USD", models.ReasonNetwork)
		mid := q.Mid()
		if math.Abs(mid-base)/base > 0.006 {
			t.Fatalf("mid %v strayed more than 0.5%% (+spread) from base %v", mid, base)
		}
	}
}

func TestJPYSpreadWiderThanMajor(t *testing.T) {
	g := NewGeneratorWithSeed(symbols.NewMapper(), 3)

	jpy := g.Generate("USD_JPY", models.ReasonNoCredential)
	eur := g.Generate("EUR_USD", models.ReasonNoCredential)
	if jpy.Spread <= eur.Spread {
		t.Fatalf("USD_JPY spread %v should exceed EUR_USD spread %v", jpy.Spread, eur.Spread)
	}
}

func TestSpreadByCategory(t *testing.T) {
	g := NewGeneratorWithSeed(symbols.NewMapper(), 4)

	forex := g.SpreadFor("EUR_USD")
	metal := g.SpreadFor("XAU_USD")
	index := g.SpreadFor("US30_USD")
	if metal <= forex {
		t.Fatalf("metal spread %v should exceed forex %v", metal, forex)
	}
	if index <= metal {
		t.Fatalf("index spread %v should exceed metal %v", index, metal)
	}
}

func TestGenerateUnknownSymbolUsesDefaultBase(t *testing.T) {
	g := NewGeneratorWithSeed(symbols.NewMapper(), 5)

	q := g.Generate("EUR_SEK", models.ReasonNoData)
	if q.Bid <= 0 || q.Ask <= q.Bid {
		t.Fatalf("degenerate quote %+v", q)
	}
	if q.Display != "EURSEK" {
		t.Fatalf("display = %s", q.Display)
	}
}
