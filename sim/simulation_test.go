package sim

import (
	"testing"
	"time"

	"github.com/kstasik/netcode/tickctl"
	"github.com/kstasik/netcode/world"
)

// TestControlWorldIntegration mirrors the original ctrl_world_integration
// test: Control.AddActor and World.AddActor must hand back matching
// indices, and the input batch handed to World.Step must grow and
// shrink with the live actor set.
func TestControlWorldIntegration(t *testing.T) {
	const capacity = 2
	const frameDuration = 16 * time.Millisecond
	const startFrame = 0

	ctrl := tickctl.New(capacity, frameDuration)
	w := world.New(startFrame, capacity, 0)

	if got, want := ctrl.AddActor(startFrame), w.AddActor("first"); got != want {
		t.Fatalf("mismatched indices: control=%d world=%d", got, want)
	}

	inputs, ok := ctrl.Update(frameDuration)
	if !ok {
		t.Fatal("want a step")
	}
	if len(inputs) != 1 {
		t.Fatalf("want 1 input, got %d", len(inputs))
	}
	currentFrame := w.Step(inputs)

	if got, want := ctrl.AddActor(currentFrame), w.AddActor("second"); got != want {
		t.Fatalf("mismatched indices: control=%d world=%d", got, want)
	}

	inputs, ok = ctrl.Update(frameDuration)
	if !ok {
		t.Fatal("want a step")
	}
	if len(inputs) != 2 {
		t.Fatalf("want 2 inputs, got %d", len(inputs))
	}
	w.Step(inputs)
}

// S6 — actor lifecycle integration.
func TestActorLifecycleIntegration(t *testing.T) {
	const capacity = 2
	const frameDuration = 16 * time.Millisecond

	s := Start(0, frameDuration, capacity, 0, nil)

	idA, ok := s.AddActor(0, "a")
	if !ok {
		t.Fatal("AddActor(a) should succeed")
	}

	s.Update(frameDuration)
	if s.Head() != 1 {
		t.Fatalf("after first update, want head 1, got %d", s.Head())
	}

	idB, ok := s.AddActor(s.Head(), "b")
	if !ok {
		t.Fatal("AddActor(b) should succeed")
	}

	s.Update(frameDuration)
	if s.Head() != 2 {
		t.Fatalf("after second update, want head 2, got %d", s.Head())
	}

	s.RemoveActor(idA)
	if s.FindActor(idA) {
		t.Fatal("idA should no longer be live")
	}
	if !s.FindActor(idB) {
		t.Fatal("idB should still be live")
	}

	s.Update(frameDuration)
	if s.Head() != 3 {
		t.Fatalf("after third update, want head 3, got %d", s.Head())
	}
}

func TestAddActorRespectsCapacity(t *testing.T) {
	s := Start(0, 16*time.Millisecond, 1, 0, nil)
	if _, ok := s.AddActor(0, "a"); !ok {
		t.Fatal("first AddActor should succeed")
	}
	if _, ok := s.AddActor(0, "b"); ok {
		t.Fatal("second AddActor should fail: capacity exhausted")
	}
}

func TestAddCommandsOnUnknownActorIsNoop(t *testing.T) {
	s := Start(0, 16*time.Millisecond, 2, 0, nil)
	// should not panic even though no actor with id 1 has been added.
	s.AddCommands(1, nil, 0)
}
