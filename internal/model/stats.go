package model

import "iter"

const (
	StatsSourcesTotal      = "/sources/total"
	StatsErrSources        = "/sources/error"
	StatsResourcesTotal    = "/resources/total"
	StatsResourcesExcluded = "/resources/excluded"
	StatsErrResources      = "/resources/error"
)

// Stats counts classpath sources and the class file resources discovered in
// them. Implementations must be safe for concurrent use.
type Stats interface {
	IncSources()
	IncErrSources()
	IncResources()
	IncExcludedResources()
	IncErrResources()
	Stats() iter.Seq2[string, string]
}
