package main

import "smrswap"

type Side uint8
type OrderType uint8

const (
	Bid Side = iota
	Ask
)

const (
	Limit OrderType = iota
	Market
	IOC      // Immediate-Or-Cancel
	FOK      // Fill-Or-Kill
	PostOnly // Must not cross book
)

// Order is a single order resting in, or rejected by, the book. Only the
// matching goroutine ever touches one; readers see Depth snapshots instead.
type Order struct {
	ID        uint64
	Side      Side
	Type      OrderType
	Price     int64
	Qty       int64 // original quantity
	Remaining int64
	SeqID     uint64
	Resting   bool // false once filled, canceled or rejected
}

// bookLevel is a FIFO queue of resting orders at one price.
type bookLevel struct {
	price    int64
	queue    []*Order
	totalQty int64
}

func (lvl *bookLevel) enqueue(o *Order) {
	lvl.queue = append(lvl.queue, o)
	lvl.totalQty += o.Remaining
}

func (lvl *bookLevel) head() *Order { return lvl.queue[0] }

func (lvl *bookLevel) popHead() {
	lvl.queue[0] = nil
	lvl.queue = lvl.queue[1:]
}

func (lvl *bookLevel) unlink(o *Order) {
	for i, q := range lvl.queue {
		if q == o {
			lvl.queue = append(lvl.queue[:i], lvl.queue[i+1:]...)
			lvl.totalQty -= o.Remaining
			return
		}
	}
}

// Quote is one price level of a published Depth snapshot.
type Quote struct {
	Price  int64
	Qty    int64
	Orders int
}

// Depth is the immutable book snapshot published after every mutation.
// Bids are ordered highest-first, asks lowest-first.
type Depth struct {
	Seq  uint64
	Bids []Quote
	Asks []Quote
}

// Best returns the top of each side, or zero Quotes for an empty side.
func (d Depth) Best() (bid, ask Quote) {
	if len(d.Bids) > 0 {
		bid = d.Bids[0]
	}
	if len(d.Asks) > 0 {
		ask = d.Asks[0]
	}
	return bid, ask
}

// ---------------- Matching Engine ---------------- //

// Engine owns the mutable book on its matching goroutine and republishes an
// immutable Depth snapshot through a SwapContainer after every mutation.
// Snapshot readers never lock and never see a half-applied order: they pin
// whichever Depth was current when they loaded and hold it for as long as
// they keep the guard open, even while the matcher keeps trading.
type Engine struct {
	bids  *levelTree
	asks  *levelTree
	seq   uint64
	depth *smrswap.SwapContainer[Depth]
}

func NewEngine(opts ...smrswap.Option) *Engine {
	return &Engine{
		bids:  newLevelTree(),
		asks:  newLevelTree(),
		depth: smrswap.New(Depth{}, opts...),
	}
}

// DepthReaders returns the factory snapshot consumers use to obtain their
// per-goroutine readers.
func (e *Engine) DepthReaders() *smrswap.ReaderFactory[Depth] {
	return e.depth.Factory()
}

// Depth returns the matcher-side view of the current snapshot.
func (e *Engine) Depth() *Depth { return e.depth.Get() }

// Place runs matching for a new order, rests any leftover per the order
// type, and publishes the resulting snapshot.
func (e *Engine) Place(side Side, otype OrderType, price int64, id uint64, qty int64) *Order {
	e.seq++
	o := &Order{
		ID: id, Side: side, Type: otype, Price: price,
		Qty: qty, Remaining: qty, SeqID: e.seq,
	}

	// Market orders don't use price
	if o.Type == Market {
		o.Price = 0
	}

	// FOK dry-runs liquidity first: reject without partial fill
	if o.Type == FOK && e.availableLiquidity(side, o.Price, o.Remaining) < o.Remaining {
		e.publish()
		return o
	}

	// PostOnly never takes: rejected outright if it would cross
	if o.Type == PostOnly {
		if !e.wouldCross(o) {
			e.rest(o)
		}
		e.publish()
		return o
	}

	e.match(o)

	// Decide what to do with leftover
	if o.Type == Limit && o.Remaining > 0 {
		e.rest(o)
	}
	// Market, IOC, FOK leftovers are canceled

	e.publish()
	return o
}

// Cancel removes a resting order from the book and publishes the resulting
// snapshot. Canceling an order that is no longer resting is a no-op.
func (e *Engine) Cancel(o *Order) {
	if !o.Resting {
		return
	}
	o.Resting = false
	e.seq++

	tree := e.bids
	if o.Side == Ask {
		tree = e.asks
	}
	if lvl := tree.Find(o.Price); lvl != nil {
		lvl.unlink(o)
		if len(lvl.queue) == 0 {
			tree.Delete(o.Price)
		}
	}
	e.publish()
}

// Collect manually drains retired snapshots; see SwapContainer.Collect.
func (e *Engine) Collect() { e.depth.Collect() }

// GarbageCount reports how many displaced snapshots await reclamation.
func (e *Engine) GarbageCount() int { return e.depth.GarbageCount() }

// match executes trades against the opposite side.
func (e *Engine) match(o *Order) {
	for o.Remaining > 0 {
		var best *bookLevel
		if o.Side == Bid {
			best = e.asks.Min()
			if best == nil || (o.Type != Market && best.price > o.Price) {
				break
			}
		} else {
			best = e.bids.Max()
			if best == nil || (o.Type != Market && best.price < o.Price) {
				break
			}
		}

		head := best.head()
		trade := min(o.Remaining, head.Remaining)
		o.Remaining -= trade
		head.Remaining -= trade
		best.totalQty -= trade

		if head.Remaining == 0 {
			head.Resting = false
			best.popHead()
			if len(best.queue) == 0 {
				if o.Side == Bid {
					e.asks.Delete(best.price)
				} else {
					e.bids.Delete(best.price)
				}
			}
		}
	}
}

// rest enqueues a leftover order into the book.
func (e *Engine) rest(o *Order) {
	o.Resting = true
	if o.Side == Bid {
		e.bids.Upsert(o.Price).enqueue(o)
	} else {
		e.asks.Upsert(o.Price).enqueue(o)
	}
}

// wouldCross reports whether o would trade immediately against the
// opposite side's best level.
func (e *Engine) wouldCross(o *Order) bool {
	if o.Side == Bid {
		best := e.asks.Min()
		return best != nil && best.price <= o.Price
	}
	best := e.bids.Max()
	return best != nil && best.price >= o.Price
}

// availableLiquidity totals the opposite side's quantity up to the price
// limit, stopping as soon as the FOK precheck is satisfiable.
func (e *Engine) availableLiquidity(side Side, limitPrice, desired int64) int64 {
	available := int64(0)
	if side == Bid {
		e.asks.Ascend(func(lvl *bookLevel) bool {
			if lvl.price > limitPrice {
				return false
			}
			available += lvl.totalQty
			return available < desired
		})
	} else {
		e.bids.Descend(func(lvl *bookLevel) bool {
			if lvl.price < limitPrice {
				return false
			}
			available += lvl.totalQty
			return available < desired
		})
	}
	return available
}

// publish freezes the current book state into a Depth and stores it. The
// slices are built fresh per snapshot so a pinned reader's Depth is never
// aliased by later mutations.
func (e *Engine) publish() {
	d := Depth{
		Seq:  e.seq,
		Bids: make([]Quote, 0, e.bids.Size()),
		Asks: make([]Quote, 0, e.asks.Size()),
	}
	e.bids.Descend(func(lvl *bookLevel) bool {
		d.Bids = append(d.Bids, Quote{Price: lvl.price, Qty: lvl.totalQty, Orders: len(lvl.queue)})
		return true
	})
	e.asks.Ascend(func(lvl *bookLevel) bool {
		d.Asks = append(d.Asks, Quote{Price: lvl.price, Qty: lvl.totalQty, Orders: len(lvl.queue)})
		return true
	})
	e.depth.Store(d)
}
