//go:build release

package assert

// soft is a no-op in release builds: soft assertions are elided entirely,
// matching spec.md §7 ("Release builds may elide checks, but the overflow
// guard in Frac comparisons remains active").
func soft(cond bool, format string, args ...any) {}
