package gbsdata

import (
	"testing"

	"github.com/photonq/gbsdata/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// loadTestGraph writes the small graph fixture under the planted stem and
// loads it through the real leaf constructor.
func loadTestGraph(t *testing.T) *GraphDataset {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, testutil.WriteGraph(dir, "planted", testutil.SmallGraph()))

	d, err := Planted(WithDir(dir))
	require.NoError(t, err)
	return d
}

func TestDatasetMetadata(t *testing.T) {
	d := loadTestGraph(t)
	fx := testutil.SmallGraph()

	assert.Equal(t, "planted", d.Name())
	assert.Equal(t, len(fx.Samples), d.Len())
	assert.Equal(t, len(fx.Samples[0]), d.Modes())
	assert.Equal(t, 8.0, d.NMean())
	assert.True(t, d.Threshold())

	rows, cols := d.Data().Dims()
	assert.Equal(t, d.Len(), rows)
	assert.Equal(t, d.Modes(), cols)
}

func TestSample(t *testing.T) {
	d := loadTestGraph(t)
	fx := testutil.SmallGraph()

	t.Run("EverySample", func(t *testing.T) {
		for i, want := range fx.Samples {
			got, err := d.Sample(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Len(t, got, d.Modes())
		}
	})

	t.Run("NegativeIndex", func(t *testing.T) {
		last, err := d.Sample(-1)
		require.NoError(t, err)
		assert.Equal(t, fx.Samples[len(fx.Samples)-1], last)

		first, err := d.Sample(-d.Len())
		require.NoError(t, err)
		assert.Equal(t, fx.Samples[0], first)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := d.Sample(d.Len())
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = d.Sample(-d.Len() - 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("RowsAreCopies", func(t *testing.T) {
		s, err := d.Sample(1)
		require.NoError(t, err)
		s[0] = 99

		again, err := d.Sample(1)
		require.NoError(t, err)
		assert.Equal(t, fx.Samples[1], again)
	})
}

func TestSelect(t *testing.T) {
	d := loadTestGraph(t)

	t.Run("IndexKey", func(t *testing.T) {
		got, err := d.Select(Index(2))
		require.NoError(t, err)
		require.Len(t, got, 1)

		want, err := d.Sample(2)
		require.NoError(t, err)
		assert.Equal(t, want, got[0])
	})

	t.Run("SpanMatchesSamples", func(t *testing.T) {
		got, err := d.Select(Span{}.From(1).To(5))
		require.NoError(t, err)
		require.Len(t, got, 4)

		for i, row := range got {
			want, err := d.Sample(1 + i)
			require.NoError(t, err)
			assert.Equal(t, want, row)
		}
	})

	t.Run("FullSpan", func(t *testing.T) {
		got, err := d.Select(All())
		require.NoError(t, err)
		assert.Len(t, got, d.Len())
	})

	t.Run("EmptySpanIsNotNil", func(t *testing.T) {
		got, err := d.Select(Span{}.From(5).To(2))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Reversed", func(t *testing.T) {
		got, err := d.Select(Span{}.By(-1))
		require.NoError(t, err)
		require.Len(t, got, d.Len())

		first, err := d.Sample(0)
		require.NoError(t, err)
		assert.Equal(t, first, got[d.Len()-1])
	})

	t.Run("BoundsKey", func(t *testing.T) {
		viaBounds, err := d.Select(Bounds{Start: 1, Stop: 4})
		require.NoError(t, err)
		viaSpan, err := d.Select(Span{}.From(1).To(4))
		require.NoError(t, err)
		assert.Equal(t, viaSpan, viaBounds)
	})

	t.Run("NilKey", func(t *testing.T) {
		_, err := d.Select(nil)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("IndexKeyOutOfRange", func(t *testing.T) {
		_, err := d.Select(Index(d.Len()))
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("ZeroStep", func(t *testing.T) {
		_, err := d.Select(Span{}.By(0))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestCounts(t *testing.T) {
	d := loadTestGraph(t)

	t.Run("PerSample", func(t *testing.T) {
		counts, err := d.Counts(AxisSamples)
		require.NoError(t, err)
		require.Len(t, counts, d.Len())

		for i, c := range counts {
			s, err := d.Sample(i)
			require.NoError(t, err)
			total := 0
			for _, v := range s {
				total += v
			}
			assert.Equal(t, total, c, "sample %d", i)
		}
	})

	t.Run("PerMode", func(t *testing.T) {
		counts, err := d.Counts(AxisModes)
		require.NoError(t, err)
		require.Len(t, counts, d.Modes())

		for j, c := range counts {
			total := 0
			for s := range d.All() {
				total += s[j]
			}
			assert.Equal(t, total, c, "mode %d", j)
		}
	})

	t.Run("BadAxis", func(t *testing.T) {
		_, err := d.Counts(Axis(2))
		assert.ErrorIs(t, err, ErrInvalidAxis)

		_, err = d.Counts(Axis(-1))
		assert.ErrorIs(t, err, ErrInvalidAxis)
	})
}

func TestIteration(t *testing.T) {
	d := loadTestGraph(t)

	t.Run("VisitsEverySampleInOrder", func(t *testing.T) {
		i := 0
		for s := range d.All() {
			want, err := d.Sample(i)
			require.NoError(t, err)
			assert.Equal(t, want, s)
			i++
		}
		assert.Equal(t, d.Len(), i)
	})

	t.Run("RestartsFromTheTop", func(t *testing.T) {
		var first, second [][]int
		for s := range d.All() {
			first = append(first, s)
		}
		for s := range d.All() {
			second = append(second, s)
		}
		assert.Equal(t, first, second)
	})

	t.Run("BreakDoesNotPoisonLaterPasses", func(t *testing.T) {
		seen := 0
		for range d.All() {
			seen++
			if seen == 2 {
				break
			}
		}

		total := 0
		for range d.All() {
			total++
		}
		assert.Equal(t, d.Len(), total)
	})

	t.Run("Enumerate", func(t *testing.T) {
		want := 0
		for i, s := range d.Enumerate() {
			assert.Equal(t, want, i)
			assert.Len(t, s, d.Modes())
			want++
		}
		assert.Equal(t, d.Len(), want)
	})

	t.Run("NestedIteration", func(t *testing.T) {
		pairs := 0
		for range d.All() {
			for range d.All() {
				pairs++
			}
		}
		assert.Equal(t, d.Len()*d.Len(), pairs)
	})
}

func TestConcurrentIteration(t *testing.T) {
	d := loadTestGraph(t)

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			i := 0
			for s := range d.All() {
				want, err := d.Sample(i)
				if err != nil {
					return err
				}
				if !assert.ObjectsAreEqual(want, s) {
					t.Errorf("sample %d mismatch under concurrency", i)
				}
				i++
			}
			if i != d.Len() {
				t.Errorf("iterator saw %d samples, want %d", i, d.Len())
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
