// Package dudect measures whether an operation's execution time depends on a
// secret input. Calls are partitioned into two classes by the secret, timed
// individually with the cache thrashed between samples, and compared with
// Welch's t-test. A |t| above the configured threshold means the two classes
// are distinguishable, i.e. the operation leaks.
//
// The suite carries intentionally leaky counterparts for each constant-time
// target so a run also demonstrates that the test has discriminative power
// on the machine at hand.
package dudect

import (
	"math"
	"time"
)

// Options controls a suite run.
type Options struct {
	Samples      int     // timed samples per class
	Reps         int     // operation invocations per sample
	BufSize      int     // scratch buffer size handed to targets
	Threshold    float64 // |t| above this is reported as a leak
	ThrashBytes  int     // cache-thrash buffer size; 0 disables thrashing
	ThrashStride int     // stride for thrash reads
	Seed         uint64  // input PRNG seed
}

// TargetFunc runs the operation under test once. a and b are scratch
// buffers of the target's size, already filled with fresh random bytes;
// secret is the class (0 or 1) whose influence on timing is being tested.
// Implementations must fold their results into the runner's sink so the
// work cannot be optimized away.
type TargetFunc func(r *Rand, sink *uint64, a, b []byte, reps, secret int)

// Target is one operation in the suite.
type Target struct {
	Name    string
	Leaky   bool // negative control: expected to exceed the threshold
	BufSize int  // overrides Options.BufSize when non-zero
	Fn      TargetFunc
}

// Result is the measurement for one target.
type Result struct {
	Name    string
	Leaky   bool
	Samples int
	Mean0   float64 // ns, class 0
	Mean1   float64 // ns, class 1
	T       float64 // Welch t-statistic
}

// Leak reports whether the measured |t| exceeds threshold.
func (r Result) Leak(threshold float64) bool {
	return math.Abs(r.T) > threshold
}

// Pass reports whether the target behaved as expected: below the threshold
// for CT targets, above it for the leaky controls.
func (r Result) Pass(threshold float64) bool {
	return r.Leak(threshold) == r.Leaky
}

// Runner executes targets under one set of options.
type Runner struct {
	opts   Options
	rng    *Rand
	thrash []byte
	sink   uint64
}

// NewRunner allocates the thrash buffer and seeds the input generator.
func NewRunner(opts Options) *Runner {
	r := &Runner{opts: opts, rng: NewRand(opts.Seed)}
	if opts.ThrashBytes > 0 {
		r.thrash = make([]byte, opts.ThrashBytes)
		for i := range r.thrash {
			r.thrash[i] = 1
		}
	}
	return r
}

// thrashCache walks the thrash buffer to evict the target's working set, so
// each sample starts from a comparable cache state.
func (r *Runner) thrashCache() {
	if len(r.thrash) == 0 {
		return
	}
	stride := r.opts.ThrashStride
	if stride < 1 {
		stride = 64
	}
	var acc uint8
	for off := 0; off < len(r.thrash); off += stride {
		acc ^= r.thrash[off]
	}
	r.sink ^= uint64(acc)
}

// RunTarget measures one target and returns its result.
func (r *Runner) RunTarget(t Target) Result {
	size := t.BufSize
	if size == 0 {
		size = r.opts.BufSize
	}
	a := make([]byte, size)
	b := make([]byte, size)

	g0 := make([]float64, r.opts.Samples)
	g1 := make([]float64, r.opts.Samples)

	for s := 0; s < r.opts.Samples; s++ {
		r.rng.Fill(a)
		r.rng.Fill(b)
		r.thrashCache()
		t0 := time.Now()
		t.Fn(r.rng, &r.sink, a, b, r.opts.Reps, 0)
		g0[s] = float64(time.Since(t0).Nanoseconds())

		r.rng.Fill(a)
		r.rng.Fill(b)
		r.thrashCache()
		t1 := time.Now()
		t.Fn(r.rng, &r.sink, a, b, r.opts.Reps, 1)
		g1[s] = float64(time.Since(t1).Nanoseconds())
	}

	return Result{
		Name:    t.Name,
		Leaky:   t.Leaky,
		Samples: r.opts.Samples,
		Mean0:   mean(g0),
		Mean1:   mean(g1),
		T:       WelchT(g0, g1),
	}
}

// RunAll measures every target in order. When progress is non-nil it is
// called with each result as it completes.
func (r *Runner) RunAll(targets []Target, progress func(Result)) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		res := r.RunTarget(t)
		results = append(results, res)
		if progress != nil {
			progress(res)
		}
	}
	return results
}

func mean(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		m += x
	}
	return m / float64(len(xs))
}

// WelchT computes Welch's t-statistic between two sample groups. Groups
// must hold at least two samples each; the result is 0 when both groups
// have zero variance and equal means, and ±Inf when the means differ with
// zero variance.
func WelchT(g0, g1 []float64) float64 {
	m0 := mean(g0)
	m1 := mean(g1)
	var v0, v1 float64
	for _, x := range g0 {
		d := x - m0
		v0 += d * d
	}
	for _, x := range g1 {
		d := x - m1
		v1 += d * d
	}
	v0 /= float64(len(g0) - 1)
	v1 /= float64(len(g1) - 1)

	denom := math.Sqrt(v0/float64(len(g0)) + v1/float64(len(g1)))
	num := m0 - m1
	if denom == 0 {
		if num == 0 {
			return 0
		}
		return math.Inf(int(math.Copysign(1, num)))
	}
	return num / denom
}
