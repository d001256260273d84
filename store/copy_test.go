package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/gohooks/topo"
)

// ToolsProvider is used to check that interface-typed cells keep their
// concrete implementation.
type ToolsProvider interface {
	GetName() string
}

type MockToolsProvider struct {
	Name string
}

func (m *MockToolsProvider) GetName() string {
	return m.Name
}

type AnotherProvider struct {
	Name      string
	ExtraData string
}

func (a *AnotherProvider) GetName() string {
	return a.Name
}

type inventory struct {
	Owner  string
	Items  []string
	Counts map[string]int
	Ref    *point
	hidden []int
}

// versioned counts how often the store clones it.
type versioned struct {
	Value  string
	clones *int
}

func (v versioned) Clone() versioned {
	*v.clones++
	return versioned{Value: v.Value, clones: v.clones}
}

func TestGetReturnsOwnedCopy(t *testing.T) {
	s := NewStore()
	id := topo.ID(1)
	require.NoError(t, Set(s, id, inventory{
		Owner:  "ana",
		Items:  []string{"a"},
		Counts: map[string]int{"a": 1},
		Ref:    &point{X: 1},
	}))

	got, _ := Get[inventory](s, id)
	got.Items[0] = "mutated"
	got.Counts["a"] = 99
	got.Ref.X = 99

	again, _ := Get[inventory](s, id)
	assert.Equal(t, []string{"a"}, again.Items)
	assert.Equal(t, 1, again.Counts["a"])
	assert.Equal(t, 1, again.Ref.X)
}

func TestSetStoresOwnedCopy(t *testing.T) {
	s := NewStore()
	id := topo.ID(1)
	items := []string{"a", "b"}
	require.NoError(t, Set(s, id, items))

	items[0] = "changed after set"

	got, _ := Get[[]string](s, id)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCopyKeepsNilsAndUnexportedFields(t *testing.T) {
	s := NewStore()
	id := topo.ID(1)
	require.NoError(t, Set(s, id, inventory{Owner: "bo", hidden: []int{1}}))

	got, ok := Get[inventory](s, id)
	require.True(t, ok)
	assert.Nil(t, got.Items)
	assert.Nil(t, got.Counts)
	assert.Nil(t, got.Ref)
	assert.Equal(t, []int{1}, got.hidden, "unexported fields are copied shallowly")
}

func TestCopyDisabledShares(t *testing.T) {
	s := NewStore(WithCopyValues(false))
	id := topo.ID(1)
	items := []string{"a"}
	require.NoError(t, Set(s, id, items))

	items[0] = "shared"
	got, _ := Get[[]string](s, id)
	assert.Equal(t, "shared", got[0])
}

func TestClonerIsUsed(t *testing.T) {
	s := NewStore()
	clones := 0
	require.NoError(t, Set(s, topo.ID(1), versioned{Value: "v", clones: &clones}))
	assert.Equal(t, 1, clones)

	got, _ := Get[versioned](s, topo.ID(1))
	assert.Equal(t, "v", got.Value)
	assert.Equal(t, 2, clones)
}

func TestInterfaceCellsKeepImplementation(t *testing.T) {
	s := NewStore()
	providers := []ToolsProvider{
		&MockToolsProvider{Name: "Provider1"},
		&AnotherProvider{Name: "Provider2", ExtraData: "Extra2"},
		nil,
	}

	for i, p := range providers {
		require.NoError(t, Set(s, topo.ID(i), p))
	}

	p1, ok := Get[ToolsProvider](s, topo.ID(0))
	require.True(t, ok)
	assert.Equal(t, "Provider1", p1.GetName())
	assert.IsType(t, &MockToolsProvider{}, p1)
	assert.NotSame(t, providers[0], p1, "pointer targets are copied")

	p2, ok := Get[ToolsProvider](s, topo.ID(1))
	require.True(t, ok)
	another, isAnother := p2.(*AnotherProvider)
	require.True(t, isAnother)
	assert.Equal(t, "Extra2", another.ExtraData)

	p3, ok := Get[ToolsProvider](s, topo.ID(2))
	assert.True(t, ok, "a stored nil interface is still a value")
	assert.Nil(t, p3)
}

func TestCopyOfNestedContainers(t *testing.T) {
	src := map[string][]map[string]int{
		"a": {{"x": 1}},
	}
	out := clone(src)
	out["a"][0]["x"] = 2
	assert.Equal(t, 1, src["a"][0]["x"])

	arr := [2][]int{{1}, {2}}
	arrCopy := clone(arr)
	arrCopy[0][0] = 9
	assert.Equal(t, 1, arr[0][0])
}

func TestCopyOfHandlesKeepsBinding(t *testing.T) {
	s := NewStore()
	type peers struct {
		Left, Right State[string]
	}
	p := peers{Left: Handle[string](s, topo.ID(1)), Right: Handle[string](s, topo.ID(2))}
	require.NoError(t, Set(s, topo.ID(3), p))

	got, _ := Get[peers](s, topo.ID(3))
	assert.Same(t, s, got.Left.Store())
	assert.Equal(t, p, got)
}

type treeNode struct {
	Name   string
	Parent *treeNode
	Kids   []*treeNode
}

func TestCopyOfPointerCycles(t *testing.T) {
	s := NewStore()
	id := topo.ID(1)

	root := &treeNode{Name: "root"}
	root.Kids = []*treeNode{{Name: "leaf", Parent: root}}
	require.NoError(t, Set(s, id, root))

	got, ok := Get[*treeNode](s, id)
	require.True(t, ok)
	require.Len(t, got.Kids, 1)
	assert.NotSame(t, root, got)
	assert.Same(t, got, got.Kids[0].Parent, "the copied child points at the copied root")
	assert.Equal(t, "leaf", got.Kids[0].Name)

	got.Kids[0].Name = "changed"
	again, _ := Get[*treeNode](s, id)
	assert.Equal(t, "leaf", again.Kids[0].Name)
}

func TestCopyKeepsSharedPointersShared(t *testing.T) {
	s := NewStore()
	id := topo.ID(2)

	shared := &point{X: 1}
	require.NoError(t, Set(s, id, []*point{shared, shared}))

	got, ok := Get[[]*point](s, id)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.NotSame(t, shared, got[0])
	assert.Same(t, got[0], got[1])
}

func TestCopyOfSelfReferencingMap(t *testing.T) {
	s := NewStore()
	id := topo.ID(3)

	m := map[string]interface{}{"name": "loop"}
	m["self"] = m
	require.NoError(t, Set(s, id, m))

	got, ok := Get[map[string]interface{}](s, id)
	require.True(t, ok)
	assert.Equal(t, "loop", got["name"])
	inner, ok := got["self"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "loop", inner["name"])
}
