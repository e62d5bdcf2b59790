package sheet

// Source defines the interface for fetching the screener worksheet as a grid
// of cell strings, header row included.
type Source interface {
	FetchRows() ([][]string, error)
	Name() string
}

// MockSource returns a fixed grid for development and testing.
type MockSource struct {
	Grid [][]string
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchRows() ([][]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Grid, nil
}
