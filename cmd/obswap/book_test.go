package main

import (
	"sync"
	"testing"

	"smrswap"
)

func TestLimitOrderInsertAndMatch(t *testing.T) {
	e := NewEngine()

	// Place a bid @100
	bid := e.Place(Bid, Limit, 100, 1, 10)
	if !bid.Resting {
		t.Fatal("expected resting bid order")
	}

	// Place an ask @100 (crosses immediately)
	ask := e.Place(Ask, Limit, 100, 2, 10)

	if bid.Remaining != 0 || ask.Remaining != 0 {
		t.Errorf("expected both fully filled, got bid=%d ask=%d", bid.Remaining, ask.Remaining)
	}
	if bid.Resting || ask.Resting {
		t.Error("filled orders must not rest")
	}
}

func TestIOCOrder(t *testing.T) {
	e := NewEngine()

	// Add some resting ask @100
	_ = e.Place(Ask, Limit, 100, 1, 5)

	// Place IOC bid @100 qty=10 (only 5 available)
	bid := e.Place(Bid, IOC, 100, 2, 10)

	if bid.Resting {
		t.Error("IOC leftover must not rest")
	}
	if bid.Remaining != 5 { // 10 wanted, 5 filled, 5 canceled
		t.Errorf("expected leftover canceled=5, got %d", bid.Remaining)
	}
}

func TestFOKOrder(t *testing.T) {
	e := NewEngine()

	// Only 5 ask liquidity available
	_ = e.Place(Ask, Limit, 100, 1, 5)

	// Place FOK bid @100 qty=10 (not enough liquidity)
	bid := e.Place(Bid, FOK, 100, 2, 10)

	if bid.Remaining != bid.Qty {
		t.Errorf("FOK must not partially fill, got remaining=%d", bid.Remaining)
	}
	if got, _ := e.Depth().Best(); got.Qty != 0 {
		// book untouched: only the resting ask remains
		t.Errorf("expected empty bid side, got %+v", got)
	}

	// Enough liquidity: fills completely
	fill := e.Place(Bid, FOK, 100, 3, 5)
	if fill.Remaining != 0 {
		t.Errorf("expected full fill, got remaining=%d", fill.Remaining)
	}
}

func TestPostOnlyOrder(t *testing.T) {
	e := NewEngine()

	// Add ask @100
	resting := e.Place(Ask, Limit, 100, 1, 5)

	// Place PostOnly bid @101 (would cross): rejected without trading
	bid := e.Place(Bid, PostOnly, 101, 2, 5)
	if bid.Resting {
		t.Error("crossing PostOnly must be rejected")
	}
	if resting.Remaining != 5 {
		t.Errorf("rejected PostOnly must not trade, ask remaining=%d", resting.Remaining)
	}

	// Place PostOnly bid @99 (does not cross, should rest)
	bid2 := e.Place(Bid, PostOnly, 99, 3, 5)
	if !bid2.Resting {
		t.Error("non-crossing PostOnly should rest")
	}
}

func TestBidAskSeparation(t *testing.T) {
	e := NewEngine()

	_ = e.Place(Bid, Limit, 99, 1, 5)
	_ = e.Place(Ask, Limit, 101, 2, 5)

	bestBid, bestAsk := e.Depth().Best()
	if bestBid.Qty == 0 || bestAsk.Qty == 0 {
		t.Fatal("expected both sides populated")
	}
	if bestBid.Price >= bestAsk.Price {
		t.Errorf("expected bestBid < bestAsk, got %d >= %d", bestBid.Price, bestAsk.Price)
	}
}

func TestCancelRemovesFromDepth(t *testing.T) {
	e := NewEngine()

	o := e.Place(Bid, Limit, 100, 1, 5)
	e.Cancel(o)
	if o.Resting {
		t.Error("expected not resting after cancel")
	}
	if d := e.Depth(); len(d.Bids) != 0 {
		t.Errorf("expected empty bid depth, got %+v", d.Bids)
	}

	e.Cancel(o) // second cancel is a no-op
}

func TestPinnedSnapshotSurvivesTrading(t *testing.T) {
	e := NewEngine()
	_ = e.Place(Bid, Limit, 99, 1, 5)
	_ = e.Place(Ask, Limit, 101, 2, 5)

	r := e.DepthReaders().NewReader()
	defer r.Close()
	g := r.Load()
	before := *g.Value()

	// Trade through both sides while the snapshot stays pinned.
	_ = e.Place(Ask, Limit, 99, 3, 5)
	_ = e.Place(Bid, Limit, 101, 4, 5)

	if len(g.Value().Bids) != len(before.Bids) || len(g.Value().Asks) != len(before.Asks) {
		t.Error("pinned snapshot changed under the reader")
	}
	if d := e.Depth(); len(d.Bids) != 0 || len(d.Asks) != 0 {
		t.Errorf("expected empty book after trading through, got %+v", d)
	}

	g.Close()
	e.Collect()
	if n := e.GarbageCount(); n != 0 {
		t.Errorf("expected all retired snapshots reclaimed, got %d", n)
	}
}

func TestConcurrentSnapshotReaders(t *testing.T) {
	e := NewEngine(smrswap.WithAutoCollect(smrswap.AutoCollectEveryWrite))
	factory := e.DepthReaders()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := factory.NewReader()
			defer r.Close()
			lastSeq := uint64(0)
			for j := 0; j < 500; j++ {
				g := r.Load()
				d := g.Value()
				if d.Seq < lastSeq {
					t.Errorf("snapshot sequence went backwards: %d after %d", d.Seq, lastSeq)
				}
				lastSeq = d.Seq
				for k := 1; k < len(d.Bids); k++ {
					if d.Bids[k].Price >= d.Bids[k-1].Price {
						t.Error("bid depth not strictly descending")
					}
				}
				g.Close()
			}
		}()
	}

	for i := 0; i < 500; i++ {
		price := int64(90 + i%20)
		side := Bid
		if i%2 == 1 {
			side = Ask
		}
		o := e.Place(side, Limit, price, uint64(i), 10)
		if i%3 == 0 {
			e.Cancel(o)
		}
	}
	wg.Wait()
}
