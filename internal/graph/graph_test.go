package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

// fakeUniverse is a plain map-backed graph.Universe for tests.
type fakeUniverse map[string][]string

func (u fakeUniverse) Parents(k asset.Key) []asset.Key {
	var out []asset.Key
	for _, p := range u[k.String()] {
		out = append(out, asset.New(p))
	}
	return out
}

func TestBuild_DropsSelfLoops(t *testing.T) {
	univ := fakeUniverse{"a": {"a", "b"}}
	um := Build([]asset.Key{asset.New("a")}, univ)
	assert.False(t, um[asset.New("a")].Contains(asset.New("a")))
	assert.True(t, um[asset.New("a")].Contains(asset.New("b")))
}

func TestBuild_EmptySelectionIsNoop(t *testing.T) {
	um := Build(nil, fakeUniverse{})
	assert.Empty(t, um)
}

func TestTopoSort_OrdersParentsBeforeChildren(t *testing.T) {
	// a <- b <- c  (c depends on b depends on a)
	univ := fakeUniverse{
		"a": {},
		"b": {"a"},
		"c": {"b"},
	}
	selected := []asset.Key{asset.New("c"), asset.New("b"), asset.New("a")}
	um := Build(selected, univ)

	order, err := TopoSort(um)
	require.NoError(t, err)
	require.Len(t, order, 3)

	pos := map[string]int{}
	for i, k := range order {
		pos[k.String()] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestTopoSort_DeterministicAcrossRuns(t *testing.T) {
	univ := fakeUniverse{
		"x": {},
		"y": {},
		"z": {"x", "y"},
	}
	selected := []asset.Key{asset.New("z"), asset.New("x"), asset.New("y")}
	um := Build(selected, univ)

	first, err := TopoSort(um)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := TopoSort(um)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopoSort_UnmonitoredParentImposesNoOrder(t *testing.T) {
	// "ext" is a parent but never selected/monitored.
	univ := fakeUniverse{"a": {"ext"}}
	um := Build([]asset.Key{asset.New("a")}, univ)

	order, err := TopoSort(um)
	require.NoError(t, err)
	assert.Equal(t, []asset.Key{asset.New("a")}, order)
}

func TestTopoSort_DetectsCycle(t *testing.T) {
	univ := fakeUniverse{
		"a": {"b"},
		"b": {"a"},
	}
	selected := []asset.Key{asset.New("a"), asset.New("b")}
	um := Build(selected, univ)

	_, err := TopoSort(um)
	assert.ErrorIs(t, err, ErrCycleDetected)
}
