package common

import "testing"

func TestSetPreservesInsertionOrder(t *testing.T) {
	s := NewSet([]string{"CREATE", "UPDATE", "CREATE", "DELETE"})

	got := s.ToOrderedSlice()
	want := []string{"CREATE", "UPDATE", "DELETE"}
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSetToggle(t *testing.T) {
	s := NewSet[string](nil)

	if present := s.Toggle("CREATE"); !present {
		t.Error("toggle on empty set should report the item as present")
	}
	if present := s.Toggle("CREATE"); present {
		t.Error("second toggle should remove the item")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %d elements", s.Len())
	}
}

func TestSetRemoveKeepsOrder(t *testing.T) {
	s := NewSet([]int{1, 2, 3})
	if !s.Remove(2) {
		t.Fatal("expected Remove to report success")
	}
	if s.Remove(2) {
		t.Error("removing a missing element should report false")
	}

	got := s.ToOrderedSlice()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected [1 3], got %v", got)
	}
}
