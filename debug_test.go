package arbor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLog redirects the global logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = old })
	return &buf
}

func debugScene(t *testing.T) *Scene {
	t.Helper()
	s := NewScene()
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
	return s
}

func expectDisposedPanic(t *testing.T) {
	t.Helper()
	r := recover()
	if r == nil {
		t.Fatal("expected panic, got none")
	}
	if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
		t.Errorf("panic message should mention 'disposed', got: %s", msg)
	}
}

func TestDebugMode_DisposedChildPanics(t *testing.T) {
	s := debugScene(t)
	child := NewContainer("child")
	child.Dispose()

	defer expectDisposedPanic(t)
	s.Root().AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	debugScene(t)
	parent := NewContainer("parent")
	parent.Dispose()

	defer expectDisposedPanic(t)
	parent.AddChild(NewContainer("child"))
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)
	child := NewContainer("child")
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic, got: %v", r)
		}
	}()
	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := debugScene(t)
	buf := captureLog(t)

	current := s.Root()
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := NewContainer(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}
	if !strings.Contains(buf.String(), "tree depth exceeds limit") {
		t.Errorf("expected tree depth warning, got: %q", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := debugScene(t)
	buf := captureLog(t)

	parent := NewContainer("many_children")
	s.Root().AddChild(parent)
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
	}
	out := buf.String()
	if !strings.Contains(out, "child count exceeds limit") || !strings.Contains(out, "many_children") {
		t.Errorf("expected child count warning, got: %q", out)
	}
}

func TestDebugMode_DuplicateComponentWarning(t *testing.T) {
	debugScene(t)
	buf := captureLog(t)

	n := NewContainer("dup")
	n.AddComponent(newStub("A"))
	n.AddComponent(newStub("A"))
	if !strings.Contains(buf.String(), "duplicate component class") {
		t.Errorf("expected duplicate component warning, got: %q", buf.String())
	}
}

func TestDebugMode_PlaceholderWarning(t *testing.T) {
	debugScene(t)
	buf := captureLog(t)

	atlas, err := LoadAtlas([]byte(sheetJSON), nil)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	atlas.Region("dragon.png")
	if !strings.Contains(buf.String(), "dragon.png") {
		t.Errorf("expected placeholder warning naming the frame, got: %q", buf.String())
	}
}

func TestReleaseMode_NoWarnings(t *testing.T) {
	buf := captureLog(t)
	parent := NewContainer("quiet")
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.AddChild(NewContainer("c"))
	}
	if buf.Len() != 0 {
		t.Errorf("release mode logged: %q", buf.String())
	}
}
