package smrswap

// autoCollectKind enumerates the three auto-collect policies: collect at a
// queue-depth threshold, never, or after every write.
type autoCollectKind uint8

const (
	autoCollectThreshold autoCollectKind = iota
	autoCollectDisabled
	autoCollectEveryWrite
)

// AutoCollect configures when SwapContainer.Store/Update/Swap automatically
// invoke Collect. The zero value is AutoCollectThreshold(64).
type AutoCollect struct {
	kind autoCollectKind
	n    int
}

// AutoCollectThreshold collects automatically once the retired queue's
// depth exceeds n after a retirement. n must be positive.
func AutoCollectThreshold(n int) AutoCollect {
	if n <= 0 {
		panic("smrswap: AutoCollectThreshold requires n > 0")
	}
	return AutoCollect{kind: autoCollectThreshold, n: n}
}

// AutoCollectDisabled never collects automatically; the caller must call
// Collect explicitly. garbage_count then grows without bound as long as any
// reader stays pinned across writes.
var AutoCollectDisabled = AutoCollect{kind: autoCollectDisabled}

// AutoCollectEveryWrite collects after every single retirement.
var AutoCollectEveryWrite = AutoCollect{kind: autoCollectEveryWrite}

const defaultAutoCollectThreshold = 64

// Option configures a SwapContainer at construction time. The only
// construction-time knobs are the publication Strategy and the AutoCollect
// policy.
type Option func(*containerConfig)

type containerConfig struct {
	strategy    Strategy
	autoCollect AutoCollect
}

func defaultConfig() containerConfig {
	return containerConfig{
		strategy:    WritePreferred,
		autoCollect: AutoCollectThreshold(defaultAutoCollectThreshold),
	}
}

// WithStrategy selects the publication strategy. The default is
// WritePreferred; see Strategy for the tradeoff.
func WithStrategy(s Strategy) Option {
	return func(c *containerConfig) { c.strategy = s }
}

// WithAutoCollect selects the auto-collect policy. The default is
// AutoCollectThreshold(64).
func WithAutoCollect(a AutoCollect) Option {
	return func(c *containerConfig) { c.autoCollect = a }
}
