package util_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fifotax/fifotax/util"
)

func TestTern(t *testing.T) {
	require.Equal(t, util.Tern(true, "a", "b"), "a")
	require.Equal(t, util.Tern(false, "a", "b"), "b")
	require.Equal(t, util.Tern(true, 1, 2), 1)
}

func TestMapKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	keys := util.MapKeys(m)
	sort.Strings(keys)
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestDefaultMap(t *testing.T) {
	rq := require.New(t)

	nCreated := 0
	m := util.NewDefaultMap(func(k string) int {
		nCreated++
		return len(k)
	})

	v, ok := m.GetIfSet("foo")
	rq.False(ok)
	rq.Equal(0, v)
	rq.Equal(0, m.Len())

	rq.Equal(3, m.Get("foo"))
	rq.Equal(1, nCreated)
	rq.Equal(3, m.Get("foo"))
	rq.Equal(1, nCreated)

	v, ok = m.GetIfSet("foo")
	rq.True(ok)
	rq.Equal(3, v)

	m.Get("quux")
	keys := m.Keys()
	sort.Strings(keys)
	rq.Equal([]string{"foo", "quux"}, keys)
	rq.Equal(2, m.Len())
}

func TestSet(t *testing.T) {
	rq := require.New(t)

	s := util.NewSet[string]()
	rq.False(s.Has("a"))
	s.Add("a")
	rq.True(s.Has("a"))
	rq.False(s.Has("b"))
}
