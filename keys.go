package gbsdata

import "fmt"

// Key selects samples in Dataset.Select. The three implementations are
// Index (one sample), Span (a possibly open, possibly strided range) and
// Bounds (an explicit start/stop pair). Keys are resolved against the
// dataset length at call time, so one key value can be reused across
// datasets of different sizes.
type Key interface {
	// indexes returns the sample positions the key selects from a dataset
	// of length n, already normalized to [0, n).
	indexes(n int) ([]int, error)
}

// Index selects a single sample. Negative values count from the end, so
// Index(-1) is the last sample. A position outside the dataset fails with
// ErrIndexOutOfRange.
type Index int

func (k Index) indexes(n int) ([]int, error) {
	i := int(k)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, int(k), n)
	}
	return []int{i}, nil
}

// Span selects a range of samples with Python slice semantics: bounds may
// be omitted, negative bounds count from the end, out-of-range bounds clamp
// instead of failing, and a negative step walks backwards. The zero Span
// selects every sample; From, To and By refine it:
//
//	gbsdata.Span{}              // all samples
//	gbsdata.Span{}.From(10)     // samples 10..
//	gbsdata.Span{}.To(-1)       // all but the last
//	gbsdata.Span{}.By(-1)       // all samples, reversed
//	gbsdata.Span{}.From(2).To(8).By(2)
//
// A zero step fails with ErrInvalidKey. An empty range selects nothing and
// is not an error.
type Span struct {
	start, stop, step          int
	hasStart, hasStop, hasStep bool
}

// All returns the Span selecting every sample. It reads better than a bare
// Span{} literal at call sites.
func All() Span { return Span{} }

// From sets the start bound.
func (s Span) From(start int) Span {
	s.start, s.hasStart = start, true
	return s
}

// To sets the stop bound. The sample at the stop position is excluded.
func (s Span) To(stop int) Span {
	s.stop, s.hasStop = stop, true
	return s
}

// By sets the step.
func (s Span) By(step int) Span {
	s.step, s.hasStep = step, true
	return s
}

func (s Span) indexes(n int) ([]int, error) {
	start, stop, step, err := s.clamp(n)
	if err != nil {
		return nil, err
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

// clamp normalizes the span against length n exactly the way Python's
// slice.indices does: negative bounds shift by n, then clamp to [0, n] for
// a positive step or [-1, n-1] for a negative one.
func (s Span) clamp(n int) (start, stop, step int, err error) {
	step = 1
	if s.hasStep {
		if s.step == 0 {
			return 0, 0, 0, fmt.Errorf("%w: step must not be zero", ErrInvalidKey)
		}
		step = s.step
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}

	if !s.hasStart {
		start = lower
		if step < 0 {
			start = upper
		}
	} else {
		start = s.start
		if start < 0 {
			start += n
		}
		start = min(max(start, lower), upper)
	}

	if !s.hasStop {
		stop = upper
		if step < 0 {
			stop = lower
		}
	} else {
		stop = s.stop
		if stop < 0 {
			stop += n
		}
		stop = min(max(stop, lower), upper)
	}

	return start, stop, step, nil
}

// Bounds selects the samples in [Start, Stop), both bounds required, with
// the same normalization and clamping as Span. A zero Step means 1. Use it
// when the range arrives as plain numbers, e.g. from a request or flag.
type Bounds struct {
	Start, Stop int
	Step        int
}

func (b Bounds) indexes(n int) ([]int, error) {
	s := Span{}.From(b.Start).To(b.Stop)
	if b.Step != 0 {
		s = s.By(b.Step)
	}
	return s.indexes(n)
}
