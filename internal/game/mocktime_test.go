package game

import "time"

// mockTime is a controllable TimeProvider for deterministic tick tests.
type mockTime struct {
	now time.Time
}

func newMockTime() *mockTime {
	return &mockTime{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *mockTime) Now() time.Time { return m.now }

func (m *mockTime) Advance(d time.Duration) { m.now = m.now.Add(d) }

// testConfig is DefaultConfig with a fixed seed and a short chain.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.InitialLength = 4
	return cfg
}

func testChain(n int) *Chain {
	return NewChain(ChainOptions{Length: n, CellSize: CellSize, Rate: InterpolationRate})
}
