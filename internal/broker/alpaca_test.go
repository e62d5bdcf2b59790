package broker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAlpacaBroker_BuyingPower(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/account" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("APCA-API-KEY-ID") != "key" || r.Header.Get("APCA-API-SECRET-KEY") != "secret" {
			t.Error("missing auth headers")
		}
		json.NewEncoder(w).Encode(map[string]string{"buying_power": "100000.00"})
	}))
	defer srv.Close()

	b := NewAlpacaBroker(srv.URL, "key", "secret", "")
	power, err := b.BuyingPower()
	if err != nil {
		t.Fatalf("BuyingPower: %v", err)
	}
	if power != 100000.00 {
		t.Errorf("buying power = %v, want 100000.00", power)
	}
}

func TestAlpacaBroker_SubmitOrder(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/orders" || r.Method != "POST" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "order-1", "status": "accepted"})
	}))
	defer srv.Close()

	b := NewAlpacaBroker(srv.URL, "key", "secret", "")
	order, err := b.SubmitOrder("AAPL", 11000)
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if order.ID != "order-1" || order.Symbol != "AAPL" || order.Notional != 11000 {
		t.Errorf("unexpected order: %+v", order)
	}
	if got["symbol"] != "AAPL" || got["notional"] != "11000.00" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got["side"] != "buy" || got["type"] != "market" || got["time_in_force"] != "day" {
		t.Errorf("unexpected order parameters: %+v", got)
	}
	if got["client_order_id"] == "" {
		t.Error("expected a client_order_id")
	}
}

func TestAlpacaBroker_SubmitOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"insufficient buying power"}`))
	}))
	defer srv.Close()

	b := NewAlpacaBroker(srv.URL, "key", "secret", "")
	if _, err := b.SubmitOrder("AAPL", 1e9); err == nil {
		t.Error("expected error for rejected order")
	}
}

func TestNewAlpacaBroker_DefaultBaseURL(t *testing.T) {
	b := NewAlpacaBroker("", "key", "secret", "")
	if b.BaseURL != DefaultAlpacaBaseURL {
		t.Errorf("BaseURL = %q, want %q", b.BaseURL, DefaultAlpacaBaseURL)
	}
}
