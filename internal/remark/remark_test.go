package remark

import "testing"

func TestPrefixAppendsTypeWhenEnabled(t *testing.T) {
	got := Prefix("node-1", "VMess", true)
	want := "[VMess] node-1"
	if got != want {
		t.Errorf("Prefix() = %q, want %q", got, want)
	}
}

func TestPrefixLeavesRemarkUntouchedWhenDisabled(t *testing.T) {
	got := Prefix("node-1", "VMess", false)
	if got != "node-1" {
		t.Errorf("Prefix() = %q, want unchanged remark", got)
	}
}

func TestDedupReturnsOriginalWhenUnique(t *testing.T) {
	got := Dedup("node-1", []string{"node-2", "node-3"}, false)
	if got != "node-1" {
		t.Errorf("Dedup() = %q, want %q", got, "node-1")
	}
}

func TestDedupAppendsDiscriminatorOnCollision(t *testing.T) {
	got := Dedup("node-1", []string{"node-1"}, false)
	if got != "node-1-2" {
		t.Errorf("Dedup() = %q, want %q", got, "node-1-2")
	}
}

func TestDedupSkipsExistingDiscriminators(t *testing.T) {
	got := Dedup("node-1", []string{"node-1", "node-1-2"}, false)
	if got != "node-1-3" {
		t.Errorf("Dedup() = %q, want %q", got, "node-1-3")
	}
}
