package broker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultAlpacaBaseURL is the live trading endpoint; an alternate endpoint
// (e.g. paper trading) can be configured.
const DefaultAlpacaBaseURL = "https://api.alpaca.markets"

// AlpacaBroker implements Broker against the Alpaca trading REST API.
type AlpacaBroker struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Client    *http.Client
}

// NewAlpacaBroker creates a broker client with optional proxy support.
func NewAlpacaBroker(baseURL, apiKey, apiSecret, proxyURL string) *AlpacaBroker {
	if baseURL == "" {
		baseURL = DefaultAlpacaBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlpacaBroker{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (a *AlpacaBroker) Name() string { return "alpaca" }

// BuyingPower fetches the account and returns its current buying power.
// Alpaca serializes monetary fields as strings.
func (a *AlpacaBroker) BuyingPower() (float64, error) {
	req, err := http.NewRequest("GET", a.BaseURL+"/v2/account", nil)
	if err != nil {
		return 0, err
	}
	a.auth(req)

	resp, err := a.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch account: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("fetch account: status %d, body: %s", resp.StatusCode, string(body))
	}

	var account struct {
		BuyingPower string `json:"buying_power"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return 0, fmt.Errorf("decode account: %w", err)
	}
	power, err := strconv.ParseFloat(account.BuyingPower, 64)
	if err != nil {
		return 0, fmt.Errorf("parse buying_power %q: %w", account.BuyingPower, err)
	}
	return power, nil
}

// SubmitOrder places a notional BUY market order, good for the day.
// The generated client_order_id makes accidental resubmission visible
// on the brokerage side.
func (a *AlpacaBroker) SubmitOrder(symbol string, notional float64) (*Order, error) {
	payload := map[string]string{
		"symbol":          symbol,
		"notional":        strconv.FormatFloat(notional, 'f', 2, 64),
		"side":            "buy",
		"type":            "market",
		"time_in_force":   "day",
		"client_order_id": uuid.NewString(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequest("POST", a.BaseURL+"/v2/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	a.auth(req)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("submit order: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &Order{
		ID:       result.ID,
		Symbol:   symbol,
		Notional: notional,
		Status:   result.Status,
	}, nil
}

func (a *AlpacaBroker) auth(req *http.Request) {
	req.Header.Set("APCA-API-KEY-ID", a.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", a.APISecret)
}
