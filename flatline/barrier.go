//go:build !flatline_nobarrier

package flatline

import "runtime"

// barrier pins p as live past this point so the compiler cannot treat the
// preceding stores as dead or sink them across the call boundary. Every bulk
// memory primitive ends with one. The flatline_nobarrier build tag replaces
// it with a no-op.
//
//go:noinline
func barrier(p any) {
	runtime.KeepAlive(p)
}
