package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-rails/internal/games/rails/core"
)

func TestTrailPushNewestFirst(t *testing.T) {
	tr := core.NewTrail(3)
	for i := 1; i <= 2; i++ {
		tr.Push(core.Vec{X: float64(i)})
	}

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", tr.Len())
	}
	if tr.At(0).X != 2 || tr.At(1).X != 1 {
		t.Errorf("order = %v, expected newest first", tr.Points())
	}
}

func TestTrailEvictsOldest(t *testing.T) {
	tr := core.NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(core.Vec{X: float64(i)})
	}

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", tr.Len())
	}
	expected := []float64{5, 4, 3}
	for i, x := range expected {
		if tr.At(i).X != x {
			t.Errorf("At(%d) = %v, expected %v", i, tr.At(i).X, x)
		}
	}
}

func TestTrailFill(t *testing.T) {
	tr := core.NewTrail(10)
	tr.Push(core.Vec{X: 9})
	tr.Fill(core.Vec{X: 1, Z: 2}, 4)

	if tr.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", tr.Len())
	}
	for _, p := range tr.Points() {
		if p != (core.Vec{X: 1, Z: 2}) {
			t.Errorf("point %v, expected fill value", p)
		}
	}

	tr.Fill(core.Vec{}, 50)
	if tr.Len() != tr.Cap() {
		t.Errorf("Fill beyond capacity gave Len() = %d", tr.Len())
	}
}
