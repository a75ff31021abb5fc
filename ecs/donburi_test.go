package ecs

import (
	"testing"

	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

const sceneJSON = `{
	"classname": "CCNode", "name": "root", "objecttag": 1,
	"components": [
		{"classname": "CCComController", "name": "ctl"},
		{"classname": "NoSuchComponent"}
	],
	"gameobjects": [
		{"classname": "CCNode", "name": "a", "objecttag": 2},
		{"classname": "CCNode", "name": "b", "objecttag": 3,
			"gameobjects": [{"classname": "CCNode", "name": "c", "objecttag": 4}]}
	]
}`

func TestNewDonburiListener(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiListener(world) == nil {
		t.Fatal("NewDonburiListener returned nil")
	}
}

func TestDonburiListener_PublishesResolutions(t *testing.T) {
	world := donburi.NewWorld()
	r := arbor.NewReader(arbor.WithListener(NewDonburiListener(world)))

	var received []ComponentLoaded
	ComponentLoadedEvent.Subscribe(world, func(w donburi.World, e ComponentLoaded) {
		received = append(received, e)
	})

	if _, err := r.LoadJSON([]byte(sceneJSON)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	ComponentLoadedEvent.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if !e0.Loaded || e0.ClassName != arbor.ClassComController || e0.Name != "ctl" || e0.Index != 0 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Encoding != arbor.EncodingJSON {
		t.Errorf("event 0 encoding = %v, want JSON", e0.Encoding)
	}
	e1 := received[1]
	if e1.Loaded || e1.Component != nil || e1.ClassName != "NoSuchComponent" || e1.Index != 1 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiListener_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	r := arbor.NewReader(arbor.WithListener(NewDonburiListener(world)))

	var count1, count2 int
	ComponentLoadedEvent.Subscribe(world, func(w donburi.World, e ComponentLoaded) {
		count1++
	})
	ComponentLoadedEvent.Subscribe(world, func(w donburi.World, e ComponentLoaded) {
		count2++
	})

	if _, err := r.LoadJSON([]byte(sceneJSON)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	events.ProcessAllEvents(world)

	if count1 != 2 || count2 != 2 {
		t.Errorf("expected both subscribers called twice, got %d and %d", count1, count2)
	}
}

func TestSpawn(t *testing.T) {
	world := donburi.NewWorld()
	root, err := arbor.NewReader().LoadJSON([]byte(sceneJSON))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	if n := Spawn(world, root); n != 4 {
		t.Fatalf("Spawn = %d, want 4", n)
	}
	if world.Len() != 4 {
		t.Errorf("world.Len() = %d, want 4", world.Len())
	}

	c, ok := FindByTag(world, 4)
	if !ok || c.Name != "c" {
		t.Fatalf("FindByTag(4) = %v, %v", c, ok)
	}
	if _, ok := FindByTag(world, 99); ok {
		t.Error("FindByTag(99) should not find anything")
	}
}

func TestSpawn_Nil(t *testing.T) {
	world := donburi.NewWorld()
	if n := Spawn(world, nil); n != 0 {
		t.Errorf("Spawn(nil) = %d, want 0", n)
	}
}

func TestPrune(t *testing.T) {
	world := donburi.NewWorld()
	root, err := arbor.NewReader().LoadJSON([]byte(sceneJSON))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	Spawn(world, root)

	// Disposing "b" takes "c" with it.
	arbor.FindNodeByTag(root, 3).Dispose()

	if n := Prune(world); n != 2 {
		t.Errorf("Prune = %d, want 2", n)
	}
	if world.Len() != 2 {
		t.Errorf("world.Len() = %d, want 2", world.Len())
	}
	if _, ok := FindByTag(world, 3); ok {
		t.Error("pruned node still found")
	}
}
