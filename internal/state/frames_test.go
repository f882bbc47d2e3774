package state

import (
	"fmt"
	"math/rand"
	"testing"
)

func collectionOf(frames ...Frame) *Collection {
	c := NewCollection(frames[0])
	for i := 1; i < len(frames); i++ {
		c = c.InsertAfter(c.Len() - 1).Commit(i, frames[i])
	}
	return c.Select(0)
}

func TestInsertAfterDuplicatesAndMovesCursor(t *testing.T) {
	c := collectionOf("a", "b", "c")

	next := c.InsertAfter(1)
	if next.Len() != 4 {
		t.Fatalf("len = %d, want 4", next.Len())
	}
	if next.Index() != 2 {
		t.Fatalf("index = %d, want 2", next.Index())
	}
	want := []Frame{"a", "b", "b", "c"}
	for i, f := range next.Frames() {
		if f != want[i] {
			t.Fatalf("frame %d = %q, want %q", i, f, want[i])
		}
	}
	if c.Len() != 3 {
		t.Fatalf("original collection changed: len = %d", c.Len())
	}
}

func TestDeleteAtCursorRule(t *testing.T) {
	tests := []struct {
		name      string
		cursor    int
		delete    int
		wantIndex int
	}{
		{"before cursor", 2, 0, 1},
		{"at cursor", 2, 2, 1},
		{"at zero cursor", 0, 0, 0},
		{"after cursor", 1, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := collectionOf("a", "b", "c", "d").Select(tt.cursor)
			next := c.DeleteAt(tt.delete)
			if next.Len() != 3 {
				t.Fatalf("len = %d, want 3", next.Len())
			}
			if next.Index() != tt.wantIndex {
				t.Fatalf("index = %d, want %d", next.Index(), tt.wantIndex)
			}
		})
	}
}

func TestDeleteLastFrameRefused(t *testing.T) {
	c := NewCollection("only")
	if next := c.DeleteAt(0); next != c {
		t.Fatalf("deleting the only frame should be a no-op")
	}
}

func TestInvalidIndicesAreNoOps(t *testing.T) {
	c := collectionOf("a", "b")
	for _, i := range []int{-1, 2, 100} {
		if c.Select(i) != c || c.DeleteAt(i) != c || c.InsertAfter(i) != c || c.Commit(i, "x") != c {
			t.Fatalf("index %d changed the collection", i)
		}
		if _, ok := c.Frame(i); ok {
			t.Fatalf("Frame(%d) reported ok", i)
		}
	}
}

func TestCommitKeepsLengthAndCursor(t *testing.T) {
	c := collectionOf("a", "b", "c").Select(2)
	next := c.Commit(0, "z")
	if next.Len() != 3 || next.Index() != 2 {
		t.Fatalf("len/index = %d/%d, want 3/2", next.Len(), next.Index())
	}
	if f, _ := next.Frame(0); f != "z" {
		t.Fatalf("frame 0 = %q, want z", f)
	}
	if f, _ := c.Frame(0); f != "a" {
		t.Fatalf("original frame 0 = %q, want a", f)
	}
	if next.Revision() <= c.Revision() {
		t.Fatalf("revision did not advance")
	}
}

func TestAtWraps(t *testing.T) {
	c := collectionOf("a", "b", "c")
	for i, want := range map[int]Frame{0: "a", 2: "c", 3: "a", 7: "b", -1: "c"} {
		if got := c.At(i); got != want {
			t.Errorf("At(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := NewCollection("f0")
	for step := 0; step < 2000; step++ {
		i := rng.Intn(c.Len()+2) - 1
		switch rng.Intn(4) {
		case 0:
			c = c.InsertAfter(i)
		case 1:
			c = c.DeleteAt(i)
		case 2:
			c = c.Select(i)
		case 3:
			c = c.Commit(i, Frame(fmt.Sprintf("f%d", step)))
		}
		if c.Len() < 1 {
			t.Fatalf("step %d: collection emptied", step)
		}
		if c.Index() < 0 || c.Index() >= c.Len() {
			t.Fatalf("step %d: index %d out of [0,%d)", step, c.Index(), c.Len())
		}
	}
}
