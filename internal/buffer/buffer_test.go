package buffer

import (
	"reflect"
	"strings"
	"testing"
)

// checkInvariant verifies the buffer is never empty and no line carries a
// line break.
func checkInvariant(t *testing.T, b *Buffer) {
	t.Helper()
	if b.Len() < 1 {
		t.Fatal("buffer has no lines")
	}
	for i, l := range b.Lines() {
		if strings.ContainsAny(l, "\n\r") {
			t.Fatalf("line %d contains a line break: %q", i, l)
		}
	}
}

func TestInsertSingleLine(t *testing.T) {
	b := FromLines([]string{"hello world"})
	end := b.Insert(Pos{0, 5}, ",")
	if got := b.Line(0); got != "hello, world" {
		t.Errorf("got %q", got)
	}
	if end != (Pos{0, 6}) {
		t.Errorf("end = %v", end)
	}
	checkInvariant(t, b)
}

func TestInsertMultiLine(t *testing.T) {
	b := FromLines([]string{"headtail"})
	end := b.Insert(Pos{0, 4}, "one\ntwo\nthree")
	want := []string{"headone", "two", "threetail"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if end != (Pos{2, 5}) {
		t.Errorf("end = %v", end)
	}
	checkInvariant(t, b)
}

func TestInsertClampsOutOfRange(t *testing.T) {
	b := FromLines([]string{"ab"})
	b.Insert(Pos{99, 99}, "x")
	if got := b.Line(0); got != "abx" {
		t.Errorf("got %q", got)
	}
	b.Insert(Pos{-3, -3}, "y")
	if got := b.Line(0); got != "yabx" {
		t.Errorf("got %q", got)
	}
	checkInvariant(t, b)
}

func TestDeleteRangeSingleLine(t *testing.T) {
	b := FromLines([]string{"hello world"})
	b.DeleteRange(Pos{0, 2}, Pos{0, 5})
	if got := b.Line(0); got != "he world" {
		t.Errorf("got %q", got)
	}
	checkInvariant(t, b)
}

func TestDeleteRangeMultiLine(t *testing.T) {
	b := FromLines([]string{"alpha", "beta", "gamma", "delta"})
	b.DeleteRange(Pos{0, 2}, Pos{2, 3})
	want := []string{"alma", "delta"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	checkInvariant(t, b)
}

func TestDeleteRangeReversedArgs(t *testing.T) {
	b := FromLines([]string{"abcdef"})
	b.DeleteRange(Pos{0, 4}, Pos{0, 1})
	if got := b.Line(0); got != "aef" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteEverythingLeavesOneLine(t *testing.T) {
	b := FromLines([]string{"only", "two"})
	b.DeleteRange(Pos{0, 0}, Pos{1, 3})
	if b.Len() != 1 || b.Line(0) != "" {
		t.Errorf("got %v", b.Lines())
	}
	checkInvariant(t, b)
}

func TestDeleteLastCharacterKeepsLine(t *testing.T) {
	b := FromLines([]string{"x"})
	b.DeleteRange(Pos{0, 0}, Pos{0, 1})
	if b.Len() != 1 || b.Line(0) != "" {
		t.Errorf("got %v", b.Lines())
	}
	checkInvariant(t, b)
}

func TestSplitAndJoin(t *testing.T) {
	b := FromLines([]string{"foobar"})
	b.SplitLine(Pos{0, 3})
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"foo", "bar"}) {
		t.Errorf("after split: %v", got)
	}
	b.JoinWithNext(0)
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"foobar"}) {
		t.Errorf("after join: %v", got)
	}
	// Joining the last line is a no-op.
	b.JoinWithNext(0)
	if b.Len() != 1 {
		t.Errorf("join on last line changed length: %d", b.Len())
	}
	checkInvariant(t, b)
}

func TestExtract(t *testing.T) {
	b := FromLines([]string{"hello world"})
	got := b.Extract(Pos{0, 2}, Pos{0, 5})
	if !reflect.DeepEqual(got, []string{"llo"}) {
		t.Errorf("got %v", got)
	}

	b = FromLines([]string{"alpha", "beta", "gamma"})
	got = b.Extract(Pos{0, 3}, Pos{2, 2})
	if !reflect.DeepEqual(got, []string{"ha", "beta", "ga"}) {
		t.Errorf("got %v", got)
	}
}

func TestDeleteLine(t *testing.T) {
	b := FromLines([]string{"a", "b", "c"})
	b.DeleteLine(1)
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("got %v", got)
	}
	b.DeleteLine(0)
	b.DeleteLine(0)
	if b.Len() != 1 || b.Line(0) != "" {
		t.Errorf("deleting the only line should leave one empty line: %v", b.Lines())
	}
	checkInvariant(t, b)
}

func TestInvariantUnderOperationSequence(t *testing.T) {
	b := New()
	ops := []func(){
		func() { b.Insert(Pos{0, 0}, "line one\nline two\nline three") },
		func() { b.DeleteRange(Pos{1, 0}, Pos{1, 4}) },
		func() { b.SplitLine(Pos{0, 4}) },
		func() { b.JoinWithNext(2) },
		func() { b.ReplaceLine(0, "replaced") },
		func() { b.Insert(Pos{3, 0}, "tail\n") },
		func() { b.DeleteRange(Pos{0, 0}, Pos{99, 99}) },
	}
	for i, op := range ops {
		op()
		if b.Len() < 1 {
			t.Fatalf("op %d: buffer became empty", i)
		}
		checkInvariant(t, b)
	}
}

func TestSetLinesEmpty(t *testing.T) {
	b := FromLines(nil)
	if b.Len() != 1 || b.Line(0) != "" {
		t.Errorf("got %v", b.Lines())
	}
}
