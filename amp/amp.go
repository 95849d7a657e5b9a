// Package amp runs rows of amplifiers, each controlled by its own copy of
// an IntCode program that is first given the amplifier's phase setting.
//
// In a chain the signal passes through every amplifier once. In a feedback
// loop the last amplifier's output is fed back into the first until the
// last amplifier halts.
package amp

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

var (
	ErrDeadlock = errors.New("every amplifier is waiting for input")
	ErrNoOutput = errors.New("amplifier produced no output")
)

// Func computes the signal that leaves a row of amplifiers running prog
// with the given phases, when signal enters it.
type Func func(prog *intcode.Machine, phases []int64, signal int64) (int64, error)

var (
	_ Func = Chain
	_ Func = Loop
)

// newAmps returns one clone of prog per phase, with the phase queued.
func newAmps(prog *intcode.Machine, phases []int64) []*intcode.Machine {
	amps := make([]*intcode.Machine, len(phases))
	for i, p := range phases {
		amps[i] = prog.Clone()
		amps[i].Push(p)
	}
	return amps
}

// Chain passes signal through each amplifier in turn, running each one to
// completion.
func Chain(prog *intcode.Machine, phases []int64, signal int64) (int64, error) {
	for i, m := range newAmps(prog, phases) {
		m.Push(signal)
		if err := m.RunUntilComplete(); err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", i)
		}
		v, ok := m.LastOutput()
		if !ok {
			return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", i)
		}
		signal = v
	}
	return signal, nil
}

// Loop connects the amplifiers in a ring, every output becoming the next
// amplifier's input, and feeds signal to the first one. Amplifiers are
// scheduled round-robin, each running until it needs input it does not
// have. Loop returns the last value emitted by the last amplifier once it
// halts.
func Loop(prog *intcode.Machine, phases []int64, signal int64) (int64, error) {
	amps := newAmps(prog, phases)
	n := len(amps)
	if n == 0 {
		return signal, nil
	}
	amps[0].Push(signal)

	var (
		last    int64
		emitted bool
	)
	for {
		progress := false
		for i, m := range amps {
		run:
			for {
				it := m.RunUntilInterrupt()
				switch it.Reason {
				case intcode.ProducedOutput:
					amps[(i+1)%n].Push(it.Value)
					progress = true
					if i == n-1 {
						last, emitted = it.Value, true
					}
				case intcode.Errored:
					return 0, errors.Wrapf(m.Err(), "amplifier %d", i)
				default:
					break run
				}
			}
		}
		if amps[n-1].Halted() {
			if !emitted {
				return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", n-1)
			}
			return last, nil
		}
		if !progress {
			return 0, ErrDeadlock
		}
	}
}

// Max runs every ordering of phases through run, starting from a zero
// signal, and returns the highest signal along with the ordering that
// produced it.
func Max(prog *intcode.Machine, phases []int64, run Func) (best int64, order []int64, err error) {
	permute(slices.Clone(phases), len(phases), func(p []int64) bool {
		v, e := run(prog, p, 0)
		if e != nil {
			err = errors.Wrapf(e, "phases %v", p)
			return false
		}
		if order == nil || v > best {
			best, order = v, slices.Clone(p)
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls f with every permutation of p[:k] (Heap's algorithm),
// stopping early if f returns false.
func permute(p []int64, k int, f func([]int64) bool) bool {
	if k <= 1 {
		return f(p)
	}
	for i := 0; i < k-1; i++ {
		if !permute(p, k-1, f) {
			return false
		}
		if k%2 == 0 {
			p[i], p[k-1] = p[k-1], p[i]
		} else {
			p[0], p[k-1] = p[k-1], p[0]
		}
	}
	return permute(p, k-1, f)
}
