package model_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/CZERTAINLY/class-lens/internal/location"
	"github.com/CZERTAINLY/class-lens/internal/model"

	"github.com/stretchr/testify/require"
)

func TestResourceOpenTwice(t *testing.T) {
	t.Parallel()
	opened := 0
	r := model.NewResource(
		location.New("file:///x/Foo.class"),
		func() (io.ReadCloser, error) {
			opened++
			return io.NopCloser(strings.NewReader("\xca\xfe\xba\xbe")), nil
		})

	// construction does no I/O
	require.Equal(t, 0, opened)

	first, err := r.Open()
	require.NoError(t, err)
	second, err := r.Open()
	require.NoError(t, err)
	require.Equal(t, 2, opened)

	b1, err := io.ReadAll(first)
	require.NoError(t, err)
	b2, err := io.ReadAll(second)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
	require.NoError(t, first.Close())
	require.NoError(t, second.Close())
}

func TestResourceOpenError(t *testing.T) {
	t.Parallel()
	cause := errors.New("gone")
	loc := location.New("jar:file:///x.jar!/a/B.class")
	r := model.NewResource(loc, func() (io.ReadCloser, error) {
		return nil, cause
	})

	_, err := r.Open()
	require.Error(t, err)

	var oerr *model.OpenError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, loc, oerr.Location)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), loc.URI())
}

func TestExcluding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		scenario string
		given    []string
		uri      string
		then     bool
	}{
		{"no substrings includes all", nil, "file:///a/Foo.class", true},
		{"matching substring excludes", []string{"/test/"}, "file:///a/test/Foo.class", false},
		{"non matching includes", []string{"/test/"}, "file:///a/main/Foo.class", true},
		{"empty substring is ignored", []string{""}, "file:///a/Foo.class", true},
		{"any of several excludes", []string{"/gen/", "/test/"}, "file:///a/gen/Foo.class", false},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			include := model.Excluding(tt.given...)
			require.Equal(t, tt.then, include(location.New(tt.uri)))
		})
	}
}
