package main

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// cpuFeatures reports the SIMD-relevant feature flags of the host, next to
// which the compiled backend name is printed. The flags are informational
// only; backend selection happens at build time.
func cpuFeatures() string {
	var feats []string
	if cpu.X86.HasSSE2 {
		feats = append(feats, "sse2")
	}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.ARM64.HasASIMD {
		feats = append(feats, "neon")
	}
	if len(feats) == 0 {
		return "none"
	}
	return strings.Join(feats, ",")
}
