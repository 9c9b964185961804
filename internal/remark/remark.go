// Package remark implements the remark normalizer of §4.3: optional
// type-prefixing followed by deduplication against previously emitted
// remarks within the same conversion invocation.
package remark

import "fmt"

// Prefix returns remark prefixed with "[<type>] " when appendType is set.
func Prefix(remark, proxyType string, appendType bool) string {
	if !appendType {
		return remark
	}
	return fmt.Sprintf("[%s] %s", proxyType, remark)
}

// Dedup mirrors the external process_remark(remark, existing, force_random)
// collaborator: it returns a remark guaranteed unique against existing,
// appending a numeric discriminator "-N" on collision. forceRandom is
// accepted for interface parity with the original collaborator but this
// repo never sets it - discriminators are deterministic by design so
// script/provider output stays byte-reproducible across runs.
func Dedup(remark string, existing []string, forceRandom bool) string {
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r] = struct{}{}
	}

	if _, collides := seen[remark]; !collides {
		return remark
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", remark, n)
		if _, collides := seen[candidate]; !collides {
			return candidate
		}
	}
}
