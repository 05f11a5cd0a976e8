package source

import "testing"

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPositionIsZero(t *testing.T) {
	if !(Position{}).IsZero() {
		t.Error("zero-value Position should report IsZero() == true")
	}
	if (Position{Line: 1, Column: 1}).IsZero() {
		t.Error("a real position should report IsZero() == false")
	}
}
