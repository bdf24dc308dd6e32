package smrswap

import "testing"

func TestStrategyString(t *testing.T) {
	if WritePreferred.String() != "write-preferred" {
		t.Errorf("unexpected String() for WritePreferred: %q", WritePreferred.String())
	}
	if ReadPreferred.String() != "read-preferred" {
		t.Errorf("unexpected String() for ReadPreferred: %q", ReadPreferred.String())
	}
}

func TestReadPreferredContainerCorrectness(t *testing.T) {
	c := New(0, WithStrategy(ReadPreferred))
	r := c.Local()
	defer r.Close()

	g := r.Load()
	if *g.Value() != 0 {
		t.Fatalf("expected initial value 0, got %d", *g.Value())
	}
	g.Close()

	for i := 1; i <= 20; i++ {
		c.Store(i)
	}
	g2 := r.Load()
	defer g2.Close()
	if *g2.Value() != 20 {
		t.Fatalf("expected latest value 20 under read-preferred, got %d", *g2.Value())
	}
	if c.Version() != 20 {
		t.Fatalf("expected version 20, got %d", c.Version())
	}
}
