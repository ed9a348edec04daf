package dudect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelchT(t *testing.T) {
	same := []float64{10, 11, 9, 10, 10, 11, 9, 10}
	if got := WelchT(same, same); got != 0 {
		t.Errorf("WelchT(g, g) = %g, want 0", got)
	}

	// Clearly separated distributions must give a large |t|.
	g0 := make([]float64, 200)
	g1 := make([]float64, 200)
	for i := range g0 {
		g0[i] = 100 + float64(i%7)
		g1[i] = 200 + float64(i%7)
	}
	if got := math.Abs(WelchT(g0, g1)); got < 10 {
		t.Errorf("|t| for separated groups = %g, want >= 10", got)
	}

	// Zero variance, different means.
	flat0 := []float64{5, 5, 5}
	flat1 := []float64{6, 6, 6}
	if got := WelchT(flat0, flat1); !math.IsInf(got, -1) {
		t.Errorf("WelchT zero-variance diff = %g, want -Inf", got)
	}
}

func TestRandDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
	c := NewRand(43)
	assert.NotEqual(t, NewRand(42).Next(), c.Next())

	buf1 := make([]byte, 64)
	buf2 := make([]byte, 64)
	NewRand(7).Fill(buf1)
	NewRand(7).Fill(buf2)
	assert.Equal(t, buf1, buf2)
}

func TestResultVerdicts(t *testing.T) {
	ct := Result{Name: "x", Leaky: false, T: 2.5}
	assert.False(t, ct.Leak(10))
	assert.True(t, ct.Pass(10))

	leaked := Result{Name: "x", Leaky: false, T: -42}
	assert.True(t, leaked.Leak(10))
	assert.False(t, leaked.Pass(10))

	control := Result{Name: "y", Leaky: true, T: 42}
	assert.True(t, control.Pass(10))
	quietControl := Result{Name: "y", Leaky: true, T: 1}
	assert.False(t, quietControl.Pass(10))
}

// Run the whole suite at a tiny sample count: this checks that every target
// executes against its buffers without panicking, not that the timing
// verdicts hold (which needs real sample counts and a quiet machine).
func TestBuiltinTargetsExecute(t *testing.T) {
	opts := Options{
		Samples:      4,
		Reps:         2,
		BufSize:      512,
		Threshold:    10,
		ThrashBytes:  0,
		ThrashStride: 64,
		Seed:         0x123456789ABCDEF0,
	}
	r := NewRunner(opts)
	targets := BuiltinTargets()
	require.NotEmpty(t, targets)

	var seen int
	results := r.RunAll(targets, func(Result) { seen++ })
	assert.Len(t, results, len(targets))
	assert.Equal(t, len(targets), seen)
	for _, res := range results {
		assert.Equal(t, opts.Samples, res.Samples, res.Name)
		assert.False(t, math.IsNaN(res.T), "t is NaN for %s", res.Name)
	}

	// CT targets and leaky controls come in pairs.
	var ct, leaky int
	for _, tgt := range targets {
		if tgt.Leaky {
			leaky++
		} else {
			ct++
		}
	}
	assert.Equal(t, ct, leaky)
}

func TestRunnerThrash(t *testing.T) {
	r := NewRunner(Options{
		Samples: 2, Reps: 1, BufSize: 16, Threshold: 10,
		ThrashBytes: 4096, ThrashStride: 64, Seed: 1,
	})
	require.Len(t, r.thrash, 4096)
	r.thrashCache() // must not panic with a small buffer
}
