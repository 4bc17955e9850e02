package helpers

// TB is the part of testing.TB the fixtures need. *testing.T satisfies it; the BDD
// suite supplies a per-scenario implementation.
type TB interface {
	Helper()
	Fatalf(format string, args ...interface{})
	Cleanup(func())
}
