package lfo

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestTriangleShape(t *testing.T) {
	l := New(1, 1, Triangle, nil)
	// 100 samples per cycle.
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.Sample(100)
	}
	if math.Abs(samples[0]+1) > 0.05 {
		t.Errorf("triangle at phase 0: got %f, want -1.0", samples[0])
	}
	if math.Abs(samples[25]) > 0.05 {
		t.Errorf("triangle at phase 0.25: got %f, want ~0", samples[25])
	}
	if math.Abs(samples[50]-1) > 0.05 {
		t.Errorf("triangle at phase 0.5: got %f, want 1.0", samples[50])
	}
}

func TestSquareShape(t *testing.T) {
	l := New(1, 2, Square, nil)
	// 128 samples per cycle keeps the phase steps exact.
	if v := l.Sample(128); v != 2 {
		t.Errorf("square first half: got %f, want 2.0", v)
	}
	for i := 1; i < 64; i++ {
		l.Sample(128)
	}
	if v := l.Sample(128); v != -2 {
		t.Errorf("square second half: got %f, want -2.0", v)
	}
}

func TestSawShape(t *testing.T) {
	l := New(1, 1, Saw, nil)
	if v := l.Sample(100); math.Abs(v-1) > 0.05 {
		t.Errorf("saw at phase 0: got %f, want 1.0", v)
	}
}

func TestInactiveReturnsZero(t *testing.T) {
	if v := New(5, 0, Triangle, nil).Sample(44100); v != 0 {
		t.Errorf("zero depth should return 0, got %f", v)
	}
	if v := New(0, 1, Triangle, nil).Sample(44100); v != 0 {
		t.Errorf("zero rate should return 0, got %f", v)
	}
	if New(0, 1, Triangle, nil).Active() {
		t.Error("zero-rate LFO should not be active")
	}
}

func TestHoldSteppedAndBounded(t *testing.T) {
	l := New(8, 1, Hold, rand.New(rand.NewPCG(1, 2)))
	// 128 samples per cycle; levels only change on cycle boundaries.
	var levels []float64
	for i := 0; i < 3*128; i++ {
		v := l.Sample(1024)
		if math.Abs(v) > 1 {
			t.Fatalf("hold sample exceeds depth: %f", v)
		}
		if i%128 == 0 {
			levels = append(levels, v)
		} else if v != levels[len(levels)-1] {
			t.Fatalf("level changed mid-cycle at sample %d", i)
		}
	}
	if levels[1] == levels[2] {
		t.Fatalf("hold did not pick new levels: %v", levels)
	}
}

func TestReset(t *testing.T) {
	l := New(1, 1, Triangle, nil)
	first := l.Sample(100)
	for i := 0; i < 30; i++ {
		l.Sample(100)
	}
	l.Reset()
	if v := l.Sample(100); v != first {
		t.Fatalf("after reset = %f, want %f", v, first)
	}
}
