package effects

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

const rate = beep.SampleRate(44100)

func TestEchoRepeatsImpulse(t *testing.T) {
	d := NewEcho(rate, 100, 0.5, 0, 0.5)
	d.Process([2]float64{1, 1})
	for i := 0; i < 4409; i++ { // 100ms at 44100Hz
		d.Process([2]float64{})
	}
	out := d.Process([2]float64{})
	if math.Abs(out[0]) < 0.01 || math.Abs(out[1]) < 0.01 {
		t.Errorf("expected delayed output, got %v", out)
	}
}

func TestEchoCrossFeedsOtherChannel(t *testing.T) {
	d := NewEcho(rate, 1, 0.9, 1, 1)
	n := len(d.buf)
	d.Process([2]float64{1, 0})
	for i := 0; i < n-1; i++ {
		d.Process([2]float64{})
	}
	first := d.Process([2]float64{})
	if first[0] != 1 || first[1] != 0 {
		t.Fatalf("first repeat = %v, want [1 0]", first)
	}
	for i := 0; i < n-1; i++ {
		d.Process([2]float64{})
	}
	second := d.Process([2]float64{})
	if second[0] != 0 || math.Abs(second[1]-0.9) > 1e-12 {
		t.Fatalf("second repeat = %v, want [0 0.9]", second)
	}
}

func TestEchoReset(t *testing.T) {
	d := NewEcho(rate, 10, 0.5, 0, 1)
	d.Process([2]float64{1, 1})
	d.Reset()
	for i := 0; i < 1000; i++ {
		if out := d.Process([2]float64{}); out != [2]float64{} {
			t.Fatalf("output after reset = %v", out)
		}
	}
}

func TestRoomProducesTail(t *testing.T) {
	r := NewRoom(rate, 0.5, 0.7, 0.5)
	r.Process([2]float64{1, 1})
	var peak float64
	for i := 0; i < 10000; i++ {
		out := r.Process([2]float64{})
		peak = math.Max(peak, out[0])
	}
	if peak < 0.001 {
		t.Error("expected reverb tail")
	}
}

func TestLimiterReducesLoud(t *testing.T) {
	c := NewLimiter(rate, -10, 4, 1, 50)
	var out [2]float64
	for i := 0; i < 1000; i++ {
		out = c.Process([2]float64{1, 1})
	}
	if out[0] >= 1 {
		t.Errorf("limiter should reduce loud signals, got %f", out[0])
	}
	quiet := NewLimiter(rate, -10, 4, 1, 50)
	if got := quiet.Process([2]float64{0.1, -0.1}); got != [2]float64{0.1, -0.1} {
		t.Errorf("quiet signal changed: %v", got)
	}
}

func TestChainAppliesEffectsInOrder(t *testing.T) {
	c := NewChain(
		NewLimiter(rate, -6, 8, 1, 50),
		NewEcho(rate, 10, 0, 0, 0.5),
	)
	out := c.Process([2]float64{0.5, 0.5})
	if out[0] == 0 || out[1] == 0 {
		t.Error("chain should produce output")
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d", c.Len())
	}
}

type constant struct{ left int }

func (c *constant) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := min(len(samples), c.left)
	for i := range samples[:n] {
		samples[i] = [2]float64{1, 1}
	}
	c.left -= n
	return n, true
}

func (c *constant) Err() error { return nil }

type halve struct{}

func (halve) Process(f [2]float64) [2]float64 { return [2]float64{f[0] / 2, f[1] / 2} }
func (halve) Reset()                          {}

func TestApplyWrapsStreamer(t *testing.T) {
	s := Apply(&constant{left: 10}, halve{})
	buf := make([][2]float64, 16)
	n, ok := s.Stream(buf)
	if n != 10 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if buf[i] != [2]float64{0.5, 0.5} {
			t.Fatalf("frame %d = %v", i, buf[i])
		}
	}
	if _, ok := s.Stream(buf); ok {
		t.Fatal("expected drained stream")
	}
	if s.Err() != nil {
		t.Fatal("unexpected error")
	}
}

func TestTremoloDipsAndRecovers(t *testing.T) {
	tr := NewTremolo(100, 1, 0.5)
	lo, hi := 2.0, 0.0
	for i := 0; i < 100; i++ {
		out := tr.Process([2]float64{1, 1})
		lo, hi = math.Min(lo, out[0]), math.Max(hi, out[0])
	}
	if hi != 1 || math.Abs(lo-0.5) > 0.03 {
		t.Fatalf("gain range = [%v, %v], want [0.5, 1]", lo, hi)
	}
	tr.Reset()
	if out := tr.Process([2]float64{1, 1}); out[0] != 1 {
		t.Fatalf("after reset = %v, want full gain", out)
	}
}
