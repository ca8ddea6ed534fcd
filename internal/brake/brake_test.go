package brake

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock/clocktest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect/detecttest"
)

// wheel sums the scrolled notches, standing in for the reel. A non-zero
// limit makes it saturate in [0, limit] like the game does.
type wheel struct {
	mu       sync.Mutex
	position int
	limit    int
}

func (w *wheel) Scroll(n int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.position += n
	if w.limit > 0 {
		w.position = clamp(w.position, 0, w.limit)
	}
	return nil
}

func (w *wheel) Position() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChangeMatchesBoundedCounter(t *testing.T) {
	const max = 30
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 50; run++ {
		initial := rng.Intn(max + 1)
		w := &wheel{position: initial}
		b := New(initial, max, w, discard())
		ref := initial

		for i := 0; i < 200; i++ {
			delta := rng.Intn(21) - 10
			ref += delta
			if ref < 0 {
				ref = 0
			}
			if ref > max {
				ref = max
			}

			got := b.Change(delta)
			if got != ref || b.Value() != ref {
				t.Fatalf("run %d step %d: value = %d, want %d", run, i, got, ref)
			}
			if w.Position() != ref {
				t.Fatalf("run %d step %d: wheel at %d, tracked %d", run, i, w.Position(), ref)
			}
		}
	}
}

func TestResetAlwaysEndsAtTarget(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		drift   int // untracked wheel offset
		target  int
		want    int
	}{
		{"from max", 30, 0, 12, 12},
		{"from zero", 0, 0, 29, 29},
		{"reel drifted", 10, -4, 20, 20},
		{"target above max", 5, 0, 40, 30},
		{"target below zero", 5, 0, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &wheel{position: tt.initial + tt.drift, limit: 30}
			b := New(tt.initial, 30, w, discard())
			b.Reset(tt.target)

			if b.Value() != tt.want {
				t.Fatalf("value = %d, want %d", b.Value(), tt.want)
			}
			if w.Position() != tt.want {
				t.Fatalf("wheel at %d, want %d", w.Position(), tt.want)
			}
		})
	}
}

func TestConcurrentChangesStayInBounds(t *testing.T) {
	w := &wheel{position: 15}
	b := New(15, 30, w, discard())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if (i+g)%3 == 0 {
					b.Reset(20)
				} else if g%2 == 0 {
					b.Change(1)
				} else {
					b.Change(-1)
				}
				if v := b.Value(); v < 0 || v > 30 {
					t.Errorf("value %d out of bounds", v)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func newRegulator(initial int) (*Regulator, *FrictionBrake, *detecttest.Fake, *clocktest.Fake) {
	cfg := config.Default().Brake
	clk := clocktest.New()
	det := detecttest.New()
	b := New(initial, cfg.Max, &wheel{position: initial}, discard())
	return NewRegulator(b, det, clk, cfg, discard()), b, det, clk
}

func TestRegulatorStates(t *testing.T) {
	r, b, det, clk := newRegulator(20)
	ctx := context.Background()
	cfg := config.Default().Brake

	step := func() {
		t.Helper()
		if err := r.step(ctx); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	step()
	if r.State() != Idle {
		t.Fatalf("state = %v, want Idle", r.State())
	}

	det.Set(detect.ProbeFishHooked, true)
	step()
	if r.State() != Armed {
		t.Fatalf("state = %v, want Armed", r.State())
	}
	armed := clk.Now()

	for r.State() == Armed {
		step()
	}
	if r.State() != Adjusting {
		t.Fatalf("state = %v, want Adjusting", r.State())
	}
	if elapsed := clk.Now().Sub(armed); elapsed < cfg.StartDelay {
		t.Fatalf("adjusting after %v, before the start delay", elapsed)
	}
	if b.Value() != 20 {
		t.Fatalf("brake changed while armed: %d", b.Value())
	}

	steps := int(cfg.IncreaseInterval / cfg.PollDelay)
	for i := 0; i < steps; i++ {
		step()
	}
	if b.Value() != 21 {
		t.Fatalf("brake = %d after one interval, want 21", b.Value())
	}

	det.Set(detect.ProbeTensionHigh, true)
	step()
	if b.Value() != 20 {
		t.Fatalf("brake = %d after high tension, want 20", b.Value())
	}
	det.Set(detect.ProbeTensionHigh, false)
	det.Set(detect.ProbeReelBurning, true)
	step()
	if b.Value() != 19 {
		t.Fatalf("brake = %d with burning reel, want 19", b.Value())
	}

	det.Set(detect.ProbeFishHooked, false)
	step()
	if r.State() != Idle {
		t.Fatalf("state = %v, want Idle", r.State())
	}
}

func TestRegulatorLostFishWhileArmed(t *testing.T) {
	r, _, det, _ := newRegulator(20)
	det.Script(detect.ProbeFishHooked, true, false)

	_ = r.step(context.Background())
	_ = r.step(context.Background())
	if r.State() != Idle {
		t.Fatalf("state = %v, want Idle", r.State())
	}
}

func TestRegulatorRunsUntilCancelled(t *testing.T) {
	cfg := config.Default().Brake
	b := New(20, cfg.Max, &wheel{}, discard())
	r := NewRegulator(b, detecttest.New(), clock.Real(), cfg, discard())

	stop := r.Start(context.Background())
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not join the regulator")
	}
	stop() // second call is a no-op
}

// flakySensor panics on its first hook reading, then reports no fish.
type flakySensor struct {
	mu    sync.Mutex
	reads int
}

func (s *flakySensor) IsFishHooked() bool {
	s.mu.Lock()
	s.reads++
	n := s.reads
	s.mu.Unlock()
	if n == 1 {
		panic("sensor glitch")
	}
	return false
}

func (s *flakySensor) IsTensionHigh() bool { return false }
func (s *flakySensor) IsReelBurning() bool { return false }

func (s *flakySensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func TestRegulatorSurvivesPanic(t *testing.T) {
	cfg := config.Default().Brake
	cfg.PollDelay = time.Millisecond
	sensor := &flakySensor{}
	r := NewRegulator(New(20, cfg.Max, &wheel{}, discard()), sensor, clock.Real(), cfg, discard())

	stop := r.Start(context.Background())
	defer stop()

	deadline := time.Now().Add(2 * time.Second)
	for sensor.Reads() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("regulator stopped polling after a panic: %d reads", sensor.Reads())
		}
		time.Sleep(time.Millisecond)
	}
}
