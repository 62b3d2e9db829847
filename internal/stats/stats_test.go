package stats_test

import (
	"maps"
	"testing"

	"github.com/CZERTAINLY/class-lens/internal/model"
	"github.com/CZERTAINLY/class-lens/internal/stats"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := stats.New(t.Name())
	require.NotNil(t, s)
}

func TestIncSources(t *testing.T) {
	s := stats.New(t.Name())

	s.IncSources()
	s.IncSources()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "2", collected[t.Name()+model.StatsSourcesTotal])
}

func TestIncErrSources(t *testing.T) {
	s := stats.New(t.Name())

	s.IncErrSources()
	s.IncErrSources()
	s.IncErrSources()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "3", collected[t.Name()+model.StatsErrSources])
}

func TestIncResources(t *testing.T) {
	s := stats.New(t.Name())

	for range 10 {
		s.IncResources()
	}

	collected := maps.Collect(s.Stats())
	require.Equal(t, "10", collected[t.Name()+model.StatsResourcesTotal])
}

func TestStatsIterator(t *testing.T) {
	s := stats.New(t.Name())

	s.IncSources()
	s.IncSources()
	s.IncErrSources()
	s.IncResources()
	s.IncExcludedResources()
	s.IncErrResources()

	collected := maps.Collect(s.Stats())

	require.Len(t, collected, 5)
	require.Equal(t, "2", collected[t.Name()+model.StatsSourcesTotal])
	require.Equal(t, "1", collected[t.Name()+model.StatsErrSources])
	require.Equal(t, "1", collected[t.Name()+model.StatsResourcesTotal])
	require.Equal(t, "1", collected[t.Name()+model.StatsResourcesExcluded])
	require.Equal(t, "1", collected[t.Name()+model.StatsErrResources])
}

func TestStatsIteratorFiltersPrefix(t *testing.T) {
	s1 := stats.New("prefix-a")
	s2 := stats.New("prefix-b")

	s1.IncSources()
	s2.IncSources()
	s2.IncSources()

	collected := maps.Collect(s1.Stats())

	require.Len(t, collected, 5)
	for k := range collected {
		require.True(t, len(k) > 8 && k[:8] == "prefix-a", "key %s should start with prefix-a", k)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	s := stats.New(t.Name())

	done := make(chan bool)
	for range 10 {
		go func() {
			for range 100 {
				s.IncSources()
				s.IncResources()
				s.IncExcludedResources()
			}
			done <- true
		}()
	}

	for range 10 {
		<-done
	}

	collected := maps.Collect(s.Stats())
	require.Equal(t, "1000", collected[t.Name()+model.StatsSourcesTotal])
	require.Equal(t, "1000", collected[t.Name()+model.StatsResourcesTotal])
	require.Equal(t, "1000", collected[t.Name()+model.StatsResourcesExcluded])
}
