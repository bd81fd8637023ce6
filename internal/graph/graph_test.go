package graph

import (
	"errors"
	"reflect"
	"testing"
)

func chain(t *testing.T, keys ...string) *DepGraph[string] {
	t.Helper()
	g := New[string]()
	for _, k := range keys {
		if err := g.AddNode(k, "data-"+k); err != nil {
			t.Fatalf("AddNode(%s): %v", k, err)
		}
	}
	for i := 1; i < len(keys); i++ {
		if err := g.AddDependency(keys[i], keys[i-1]); err != nil {
			t.Fatalf("AddDependency(%s, %s): %v", keys[i], keys[i-1], err)
		}
	}
	return g
}

func TestDepGraph_AddNodeAndData(t *testing.T) {
	g := New[string]()
	if err := g.AddNode("root", "payload"); err != nil {
		t.Fatalf("AddNode returned error: %v", err)
	}
	if !g.HasNode("root") {
		t.Fatal("root should exist")
	}
	d, err := g.NodeData("root")
	if err != nil {
		t.Fatalf("NodeData returned error: %v", err)
	}
	if d != "payload" {
		t.Errorf("NodeData = %q, want %q", d, "payload")
	}
	if g.Size() != 1 {
		t.Errorf("Size = %d, want 1", g.Size())
	}
}

func TestDepGraph_AddNodeRejectsDuplicate(t *testing.T) {
	g := New[string]()
	_ = g.AddNode("a", "first")

	err := g.AddNode("a", "second")
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("err = %v, want ErrDuplicateNode", err)
	}
	d, _ := g.NodeData("a")
	if d != "first" {
		t.Errorf("payload overwritten: got %q", d)
	}
}

func TestDepGraph_NodeDataNotFound(t *testing.T) {
	g := New[int]()
	_, err := g.NodeData("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDepGraph_AddDependencyMissingNodes(t *testing.T) {
	g := New[int]()
	_ = g.AddNode("a", 1)

	if err := g.AddDependency("a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing target: err = %v", err)
	}
	if err := g.AddDependency("missing", "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing source: err = %v", err)
	}
}

func TestDepGraph_DependenciesOfRootFirst(t *testing.T) {
	g := chain(t, "root", "child", "grandchild")

	deps, err := g.DependenciesOf("grandchild")
	if err != nil {
		t.Fatalf("DependenciesOf returned error: %v", err)
	}
	want := []string{"root", "child"}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("deps = %v, want %v", deps, want)
	}

	deps, err = g.DependenciesOf("root")
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Errorf("root deps = %v, want none", deps)
	}
}

func TestDepGraph_DependenciesOfUnknown(t *testing.T) {
	g := New[int]()
	if _, err := g.DependenciesOf("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDepGraph_DuplicateEdgeIsNoop(t *testing.T) {
	g := chain(t, "a", "b")
	if err := g.AddDependency("b", "a"); err != nil {
		t.Fatal(err)
	}
	deps, _ := g.DirectDependenciesOf("b")
	if len(deps) != 1 {
		t.Errorf("direct deps = %v, want [a]", deps)
	}
	dependants, _ := g.DirectDependantsOf("a")
	if !reflect.DeepEqual(dependants, []string{"b"}) {
		t.Errorf("dependants = %v, want [b]", dependants)
	}
}

func TestDepGraph_CycleDetected(t *testing.T) {
	g := chain(t, "a", "b", "c")
	// close the loop: a depends on c
	if err := g.AddDependency("a", "c"); err != nil {
		t.Fatal(err)
	}

	_, err := g.DependenciesOf("c")
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("err %T is not a *CycleError", err)
	}
	if ce.Path[0] != ce.Path[len(ce.Path)-1] {
		t.Errorf("witness %v does not close", ce.Path)
	}
	if len(ce.Path) != 4 {
		t.Errorf("witness %v, want 3 distinct keys", ce.Path)
	}
}

func TestDepGraph_SelfDependencyIsCycle(t *testing.T) {
	g := New[int]()
	_ = g.AddNode("a", 1)
	_ = g.AddDependency("a", "a")

	_, err := g.DependenciesOf("a")
	if err == nil || err.Error() != "dependency cycle: a -> a" {
		t.Errorf("err = %v", err)
	}
}

func TestDepGraph_OverallOrder(t *testing.T) {
	g := New[int]()
	for _, k := range []string{"leaf", "other", "root", "mid"} {
		_ = g.AddNode(k, 0)
	}
	_ = g.AddDependency("leaf", "mid")
	_ = g.AddDependency("mid", "root")

	order, err := g.OverallOrder()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"root", "mid", "leaf", "other"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !reflect.DeepEqual(g.Keys(), []string{"leaf", "other", "root", "mid"}) {
		t.Errorf("keys not in insertion order: %v", g.Keys())
	}
}
