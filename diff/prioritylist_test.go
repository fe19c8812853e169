package diff

import "testing"

func TestPriorityListPopOrder(t *testing.T) {
	l := NewPriorityList(func(x int) int { return x })
	for _, v := range []int{5, 1, 3, 2, 4} {
		l.Push(v)
	}

	var got []int
	for l.Len() > 0 {
		got = append(got, l.Pop())
	}

	want := []int{1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop order = %v, want %v", got, want)
			break
		}
	}
}

func TestPriorityListPopMany(t *testing.T) {
	l := NewPriorityList(func(x int) int { return x })
	for _, v := range []int{2, 1, 1, 3, 1} {
		l.Push(v)
	}

	got := l.PopMany()
	if len(got) != 3 {
		t.Fatalf("PopMany() = %v, want 3 elements sharing the minimum key", got)
	}
	for _, v := range got {
		if v != 1 {
			t.Errorf("PopMany() contained %d, want all elements == 1", v)
		}
	}
	if l.Len() != 2 {
		t.Errorf("remaining length = %d, want 2", l.Len())
	}
}

func TestPriorityListPopManyEmptyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic calling PopMany on an empty list")
		}
	}()

	l := NewPriorityList(func(x int) int { return x })
	l.PopMany()
}

func TestPriorityListPeek(t *testing.T) {
	l := NewPriorityList(func(x int) int { return x })
	l.Push(7)
	l.Push(3)

	if got := l.Peek(); got != 3 {
		t.Errorf("Peek() = %d, want 3", got)
	}
	if l.Len() != 2 {
		t.Error("Peek() should not remove the element")
	}
}
