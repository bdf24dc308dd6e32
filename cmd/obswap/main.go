package main

import (
	"fmt"
	"sync"

	"smrswap"
)

func printDepth(prefix string, d *Depth) {
	for _, q := range d.Bids {
		fmt.Printf("%s  BID %d: qty=%d orders=%d\n", prefix, q.Price, q.Qty, q.Orders)
	}
	for _, q := range d.Asks {
		fmt.Printf("%s  ASK %d: qty=%d orders=%d\n", prefix, q.Price, q.Qty, q.Orders)
	}
}

func main() {
	engine := NewEngine(smrswap.WithStrategy(smrswap.ReadPreferred))

	// --- Demo: Add initial orders --- //
	fmt.Println("Placing initial bid/ask orders...")

	o1 := engine.Place(Bid, Limit, 100, 1, 10_000)
	_ = engine.Place(Bid, Limit, 100, 2, 20_000)
	_ = engine.Place(Ask, Limit, 101, 3, 15_000)

	fmt.Println("Init snapshot:")
	printDepth("", engine.Depth())

	// A reader pins whichever snapshot is current when it loads, racing the
	// next burst of trading; its view stays frozen no matter what the
	// matcher does meanwhile.
	readers := engine.DepthReaders()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r := readers.NewReader()
		defer r.Close()
		g := r.Load()
		defer g.Close()
		printDepth("[snap]", g.Value())
	}()

	// --- Cancel + IOC while the snapshot reader runs --- //
	engine.Cancel(o1)
	_ = engine.Place(Bid, IOC, 101, 4, 5_000)

	wg.Wait()

	// Reader released its pin: every displaced snapshot is reclaimable now.
	engine.Collect()

	fmt.Println("Final snapshot:")
	printDepth("", engine.Depth())
	fmt.Printf("retired snapshots pending: %d\n", engine.GarbageCount())
}
