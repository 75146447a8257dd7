package fixture

// Marker annotates a test with fixture behaviour.
type Marker func(*markers)

type markers struct {
	noTeardown  bool
	xfail       bool
	xfailReason string
}

func applyMarkers(ms []Marker) markers {
	var m markers
	for _, apply := range ms {
		if apply != nil {
			apply(&m)
		}
	}
	return m
}

// NoTeardown leaves the browser running after the test so a failed session
// can be inspected. The process is not reaped by the fixture.
func NoTeardown() Marker {
	return func(m *markers) { m.noTeardown = true }
}

// ExpectFailure declares the test as an expected failure. Its failures do not
// collect diagnostics and are recorded as skipped in the report.
func ExpectFailure(reason string) Marker {
	return func(m *markers) {
		m.xfail = true
		m.xfailReason = reason
	}
}
