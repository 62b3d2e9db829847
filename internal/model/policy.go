package model

import (
	"strings"

	"github.com/CZERTAINLY/class-lens/internal/location"
)

// FilterPolicy decides whether a candidate location takes part in a scan.
// Policies must be side effect free and safe for concurrent use. A policy is
// consulted exactly once per discovered candidate, before any Resource is
// materialized, so rejected candidates never pay for wrapping an open
// operation. A panicking policy propagates to the caller - policy
// correctness is a caller contract.
type FilterPolicy func(location.Location) bool

// IncludeAll accepts every candidate.
func IncludeAll(location.Location) bool {
	return true
}

// Excluding rejects every location whose URI contains one of the given
// substrings. Used to turn the exclude list of a config file into a policy.
func Excluding(substrings ...string) FilterPolicy {
	if len(substrings) == 0 {
		return IncludeAll
	}
	return func(loc location.Location) bool {
		uri := loc.URI()
		for _, s := range substrings {
			if s != "" && strings.Contains(uri, s) {
				return false
			}
		}
		return true
	}
}
