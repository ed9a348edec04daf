//go:build flatline_nobarrier

package flatline

// barrier is compiled out under the flatline_nobarrier build tag.
func barrier(p any) {}
