package arbor

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if s.Root().Type != NodeTypeContainer {
		t.Errorf("root.Type = %v, want container", s.Root().Type)
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.DebugMode() || !globalDebug {
		t.Error("debug should be on")
	}
	s.SetDebugMode(false)
	if s.DebugMode() || globalDebug {
		t.Error("debug should be off")
	}
}

func TestSceneAddAndNodeByTag(t *testing.T) {
	s := NewScene()
	s.Add(nil)
	if s.Root().NumChildren() != 0 {
		t.Fatal("Add(nil) should be ignored")
	}
	n := NewContainer("tagged")
	n.SetTag(42)
	s.Add(n)
	if s.NodeByTag(42) != n {
		t.Error("NodeByTag(42) should find the added node")
	}
	if s.NodeByTag(43) != nil {
		t.Error("NodeByTag(43) should be nil")
	}
}

func TestSceneUpdateTicksControllers(t *testing.T) {
	s := NewScene()
	n := NewContainer("mover")
	ctl := NewComController()
	n.AddComponent(ctl)
	s.Add(n)
	ctl.Run(TweenPosition(n, 10, 0, 1, ease.Linear))

	s.Update(0.5)
	s.Update(0.5)
	if n.X < 9.5 {
		t.Errorf("X = %f, want ~10", n.X)
	}
	// world transforms lag one tick behind the controllers
	s.Update(0)
	if x, _ := n.WorldPosition(); x < 9.5 {
		t.Errorf("world x = %f, want ~10", x)
	}
}

func TestSceneUpdateSkipsHidden(t *testing.T) {
	s := NewScene()
	hidden := NewContainer("hidden")
	hidden.SetVisible(false)
	child := NewContainer("child")
	hidden.AddChild(child)
	s.Add(hidden)

	ticks := 0
	ctl := NewComController()
	ctl.OnUpdate = func(*ComController, float32) { ticks++ }
	child.AddComponent(ctl)

	s.Update(0.1)
	if ticks != 0 {
		t.Errorf("controller under a hidden node ticked %d times", ticks)
	}
	hidden.SetVisible(true)
	s.Update(0.1)
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}
