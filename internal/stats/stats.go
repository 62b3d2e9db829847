package stats

import (
	"expvar"
	"iter"
	"maps"
	"slices"

	"github.com/CZERTAINLY/class-lens/internal/model"
)

// Stats holds expvar-backed counters for the discovery process and publishes
// them under a common key prefix. All counters are expvar.Map and are safe
// for concurrent updates. When the standard expvar HTTP handler is
// registered, these values are available at /debug/vars.
//
// - <prefix>/sources/total — classpath entries resolved (directories and archives)
// - <prefix>/sources/error — classpath entries that could not be scanned at all
// - <prefix>/resources/total — class file candidates considered across all sources
// - <prefix>/resources/excluded — candidates rejected by the filter policy
// - <prefix>/resources/error — resources whose open failed
type Stats struct {
	prefix    string
	root      *expvar.Map
	sources   *expvar.Map
	resources *expvar.Map
}

// New publishes a new set of metrics. Registering the same metrics twice
// causes panic, so for tests, the prefix should be unique.
func New(prefix string) *Stats {
	root := expvar.NewMap(prefix)
	sources := new(expvar.Map).Init()
	resources := new(expvar.Map).Init()

	sources.Add("total", 0)
	sources.Add("error", 0)

	resources.Add("total", 0)
	resources.Add("error", 0)
	resources.Add("excluded", 0)

	root.Set("sources", sources)
	root.Set("resources", resources)

	return &Stats{
		prefix:    prefix,
		root:      root,
		sources:   sources,
		resources: resources,
	}
}

func (s *Stats) IncSources() {
	s.sources.Add("total", 1)
}
func (s *Stats) IncErrSources() {
	s.sources.Add("error", 1)
}
func (s *Stats) IncResources() {
	s.resources.Add("total", 1)
}
func (s *Stats) IncExcludedResources() {
	s.resources.Add("excluded", 1)
}
func (s *Stats) IncErrResources() {
	s.resources.Add("error", 1)
}

// Stats returns a name, value iterator across registered metrics. This uses
// expvar.Do under the hood, so is safe to be called concurrently. Stats are
// returned in an alphabetic order.
func (s Stats) Stats() iter.Seq2[string, string] {
	stats := make(map[string]string, 5)
	s.sources.Do(func(kv expvar.KeyValue) {
		stats["/sources/"+kv.Key] = kv.Value.String()
	})
	s.resources.Do(func(kv expvar.KeyValue) {
		stats["/resources/"+kv.Key] = kv.Value.String()
	})

	keys := slices.Sorted(maps.Keys(stats))
	return func(yield func(string, string) bool) {
		for _, key := range keys {
			if !yield(s.prefix+key, stats[key]) {
				return
			}
		}
	}
}

var _ model.Stats = (*Stats)(nil)
