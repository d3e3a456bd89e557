package world

import "testing"

func TestStepAdvancesHeadByOne(t *testing.T) {
	w := New(0, 4, 0)
	for i := FrameID(1); i <= 5; i++ {
		got := w.Step(nil)
		if got != i {
			t.Fatalf("step %d: got head %d want %d", i, got, i)
		}
		if w.Head() != i {
			t.Fatalf("Head() after step %d: got %d want %d", i, w.Head(), i)
		}
	}
}

func TestActorLifecycle(t *testing.T) {
	w := New(0, 2, 0)
	firstIdx := w.AddActor("a")
	secondIdx := w.AddActor("b")
	if firstIdx != 0 || secondIdx != 1 {
		t.Fatalf("unexpected indices: %d %d", firstIdx, secondIdx)
	}

	w.RemoveActor(firstIdx)
	if len(w.actors) != 1 {
		t.Fatalf("want 1 actor left, got %d", len(w.actors))
	}
	if w.actors[firstIdx].name != "b" {
		t.Fatalf("swap-remove should have moved 'b' into slot 0, got %q", w.actors[firstIdx].name)
	}
}

func TestObjectCapacity(t *testing.T) {
	w := New(0, 0, 2)
	id1, ok := w.AddObject()
	if !ok {
		t.Fatal("AddObject #1 should succeed")
	}
	id2, ok := w.AddObject()
	if !ok {
		t.Fatal("AddObject #2 should succeed")
	}
	if id1 == id2 {
		t.Fatal("object ids must be distinct")
	}
	if _, ok := w.AddObject(); ok {
		t.Fatal("AddObject #3 should fail: capacity exhausted")
	}

	if !w.RemoveObject(id1) {
		t.Fatal("RemoveObject(id1) should succeed")
	}
	id3, ok := w.AddObject()
	if !ok {
		t.Fatal("AddObject after a remove should succeed")
	}
	if id3 == id1 || id3 == id2 {
		t.Fatalf("removed ids must never be reissued, got %d", id3)
	}
}

func TestObjectCapacityZero(t *testing.T) {
	w := New(0, 0, 0)
	if _, ok := w.AddObject(); ok {
		t.Fatal("AddObject with zero capacity should always fail")
	}
}
