package oanda

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	xhttp "FXPulse/pkg/http"
)

var _ drepo.LiveFeed = (*Client)(nil)

// Client fetches the latest candle for an instrument from the OANDA v20
// REST API. It implements repository.LiveFeed: one attempt per call, a
// bounded timeout, and typed errors for the quote service to map.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// New creates a new OANDA pricing client.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool { return c.apiKey != "" }

// OANDA encodes prices as strings.
type candleOHLC struct {
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
}

type candle struct {
	Time     string     `json:"time"`
	Volume   float64    `json:"volume"`
	Complete bool       `json:"complete"`
	Bid      candleOHLC `json:"bid"`
	Ask      candleOHLC `json:"ask"`
}

type candlesResponse struct {
	Instrument string   `json:"instrument"`
	Candles    []candle `json:"candles"`
}

// FetchQuote fetches the latest bid/ask candle for a broker symbol.
func (c *Client) FetchQuote(ctx context.Context, brokerSymbol string) (*models.MarketQuote, error) {
	var cr candlesResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v3/instruments/%s/candles", c.baseURL, brokerSymbol),
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: map[string][]string{
			"count":       {"1"},
			"granularity": {"H1"},
			"price":       {"BA"},
		},
	}, &cr)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			if se.StatusCode == 401 || se.StatusCode == 403 {
				return nil, models.ErrUnauthorized
			}
			return nil, &models.NetworkError{Op: "candles", Err: err}
		}
		return nil, &models.NetworkError{Op: "candles", Err: err}
	}

	if len(cr.Candles) == 0 {
		return nil, models.ErrNoData
	}

	latest := cr.Candles[len(cr.Candles)-1]
	bid, err := strconv.ParseFloat(latest.Bid.C, 64)
	if err != nil {
		return nil, fmt.Errorf("parse bid: %w", err)
	}
	ask, err := strconv.ParseFloat(latest.Ask.C, 64)
	if err != nil {
		return nil, fmt.Errorf("parse ask: %w", err)
	}
	high, err := strconv.ParseFloat(latest.Bid.H, 64)
	if err != nil {
		return nil, fmt.Errorf("parse high: %w", err)
	}
	low, err := strconv.ParseFloat(latest.Bid.L, 64)
	if err != nil {
		return nil, fmt.Errorf("parse low: %w", err)
	}

	ts := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, latest.Time); err == nil {
		ts = t
	}

	return &models.MarketQuote{
		Symbol:    brokerSymbol,
		Bid:       bid,
		Ask:       ask,
		Spread:    ask - bid,
		High:      high,
		Low:       low,
		Volume:    latest.Volume,
		Timestamp: ts,
		Source:    models.SourceLive,
	}, nil
}
