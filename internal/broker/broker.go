package broker

import "fmt"

// Order is the brokerage's acknowledgement of a submitted order.
type Order struct {
	ID       string
	Symbol   string
	Notional float64
	Status   string
}

// Broker defines the interface for the trading account: buying power at run
// start and synchronous market-order submission. SubmitOrder may fail
// per-call; callers isolate failures to the single symbol being processed.
type Broker interface {
	BuyingPower() (float64, error)
	SubmitOrder(symbol string, notional float64) (*Order, error)
	Name() string
}

// MockBroker returns controllable fixed data for development and testing.
type MockBroker struct {
	Power     float64
	PowerErr  error
	FailFor   map[string]error // per-symbol submission failures
	Submitted []*Order
}

func (m *MockBroker) Name() string { return "mock" }

func (m *MockBroker) BuyingPower() (float64, error) {
	if m.PowerErr != nil {
		return 0, m.PowerErr
	}
	return m.Power, nil
}

func (m *MockBroker) SubmitOrder(symbol string, notional float64) (*Order, error) {
	if err, ok := m.FailFor[symbol]; ok {
		return nil, err
	}
	o := &Order{
		ID:       fmt.Sprintf("mock-%d", len(m.Submitted)+1),
		Symbol:   symbol,
		Notional: notional,
		Status:   "accepted",
	}
	m.Submitted = append(m.Submitted, o)
	return o, nil
}
