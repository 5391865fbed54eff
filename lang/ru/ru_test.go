package ru

import "testing"

func TestProfileGroupsAndTerminalShape(t *testing.T) {
	p := Profile()
	if p.Code != Code {
		t.Errorf("Profile().Code = %q, want %q", p.Code, Code)
	}
	if len(p.Groups) == 0 {
		t.Fatal("Profile() has no groups")
	}
	for i, g := range p.Groups {
		if len(g.Units) == 0 {
			t.Errorf("group %d has no units", i)
		}
	}
	if len(p.CharSubstitutes['е']) == 0 || len(p.CharSubstitutes['ё']) == 0 {
		t.Error("Profile() is missing the ё/е character substitution")
	}
}

func TestProfileCallsReturnFreshUnits(t *testing.T) {
	a := Profile()
	b := Profile()
	if a.Groups[0].Units[0] == b.Groups[0].Units[0] {
		t.Error("successive Profile() calls must not share unit instances")
	}
}
