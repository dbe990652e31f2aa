// Package harness runs deterministic workloads against vec.Vector with
// instrumented elements and reports the lifecycle traffic they cause,
// alongside a native append-slice baseline.
package harness

import (
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/tangledbytes/go-vec/pkg/vec"
	"github.com/tangledbytes/go-vec/pkg/vec/vectest"
)

// Runner executes scenarios and logs their results.
type Runner struct {
	log zerolog.Logger
}

// New returns a Runner logging through log.
func New(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes every scenario in cfg.
func (r *Runner) Run(cfg *Config) error {
	for _, s := range cfg.Scenarios {
		if err := r.runScenario(s); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return nil
}

func (r *Runner) runScenario(s Scenario) error {
	vectest.TrackedOps.Reset()

	v, err := vec.NewWithSize[vectest.Tracked](s.Elements)
	if err != nil {
		return err
	}
	defer v.Destroy()

	rng := rand.New(rand.NewSource(s.Seed))
	for op := 0; op < s.Operations; op++ {
		if err := r.step(v, rng, s); err != nil {
			return err
		}
	}

	elemSize := uint64(unsafe.Sizeof(vectest.Tracked{}))
	c := &vectest.TrackedOps
	r.log.Info().
		Str("scenario", s.Name).
		Int("len", v.Len()).
		Int("cap", v.Cap()).
		Str("storage", humanize.IBytes(uint64(v.Cap())*elemSize)).
		Int("inits", c.Inits).
		Int("clones", c.Clones).
		Int("moves", c.Moves).
		Int("move_assigns", c.MoveAssigns).
		Int("destroys", c.Destroys).
		Int("alive", c.Alive()).
		Msg("vector scenario done")

	if c.Alive() != v.Len() {
		return fmt.Errorf("alive count %d does not match length %d", c.Alive(), v.Len())
	}

	r.baseline(s)
	return nil
}

func (r *Runner) step(v *vec.Vector[vectest.Tracked], rng *rand.Rand, s Scenario) error {
	roll := rng.Intn(100)
	switch {
	case roll < s.InsertPercent:
		pos := 0
		if v.Len() > 0 {
			pos = rng.Intn(v.Len() + 1)
		}
		_, err := v.Insert(pos, vectest.NewTracked(rng.Int(), "insert"))
		return err
	case roll < s.InsertPercent+s.ErasePercent:
		if v.Len() == 0 {
			return nil
		}
		_, err := v.Erase(rng.Intn(v.Len()))
		return err
	case roll%2 == 0 && v.Len() > 0:
		v.PopBack()
		return nil
	default:
		return v.PushBack(vectest.NewTracked(rng.Int(), "push"))
	}
}

// baseline runs the same operation mix against a plain Go slice so the two
// growth behaviors can be compared in the logs.
func (r *Runner) baseline(s Scenario) {
	rng := rand.New(rand.NewSource(s.Seed))
	buf := make([]int, s.Elements)
	grows := 0
	for op := 0; op < s.Operations; op++ {
		roll := rng.Intn(100)
		switch {
		case roll < s.InsertPercent:
			pos := 0
			if len(buf) > 0 {
				pos = rng.Intn(len(buf) + 1)
			}
			before := cap(buf)
			buf = append(buf[:pos], append([]int{rng.Int()}, buf[pos:]...)...)
			if cap(buf) != before {
				grows++
			}
		case roll < s.InsertPercent+s.ErasePercent:
			if len(buf) == 0 {
				continue
			}
			pos := rng.Intn(len(buf))
			buf = append(buf[:pos], buf[pos+1:]...)
		case roll%2 == 0 && len(buf) > 0:
			buf = buf[:len(buf)-1]
		default:
			before := cap(buf)
			buf = append(buf, rng.Int())
			if cap(buf) != before {
				grows++
			}
		}
	}
	r.log.Info().
		Str("scenario", s.Name).
		Int("len", len(buf)).
		Int("cap", cap(buf)).
		Int("reallocations", grows).
		Msg("native slice baseline done")
}
