package engine

import "testing"

func TestBlacklist_InsertContainsRemove(t *testing.T) {
	var bl blacklist
	if bl.Contains("a") {
		t.Fatalf("an empty blacklist should not contain anything")
	}
	bl.Insert("a")
	if !bl.Contains("a") {
		t.Fatalf("expected a to be present after Insert")
	}
	bl.Remove("a")
	if bl.Contains("a") {
		t.Fatalf("expected a to be absent after Remove")
	}
}

func TestBlacklist_RemoveIsLIFO(t *testing.T) {
	var bl blacklist
	bl.Insert("a")
	bl.Insert("a")
	bl.Remove("a")
	if !bl.Contains("a") {
		t.Fatalf("one occurrence should remain after removing one of two inserts")
	}
	bl.Remove("a")
	if bl.Contains("a") {
		t.Fatalf("both occurrences should be gone after two removes")
	}
}

func TestBlacklist_RemoveAbsentIsNoOp(t *testing.T) {
	var bl blacklist
	bl.Remove("nope") // must not panic
}

func TestBlacklist_Snapshot(t *testing.T) {
	var bl blacklist
	bl.Insert("a")
	bl.Insert("b")
	snap := bl.Snapshot()
	if len(snap) != 2 || snap[0] != "a" || snap[1] != "b" {
		t.Fatalf("Snapshot() = %v, want [a b]", snap)
	}
	snap[0] = "mutated"
	if bl.names[0] != "a" {
		t.Fatalf("Snapshot() should return a copy, not the internal slice")
	}
}

func TestParseBlacklistDirective(t *testing.T) {
	tests := []struct {
		caption   string
		src       string
		wantOK    bool
		wantInsrt bool
		wantNames []string
	}{
		{
			caption:   "an insert directive with multiple names",
			src:       "|BLACKLIST|I|a,b,c|",
			wantOK:    true,
			wantInsrt: true,
			wantNames: []string{"a", "b", "c"},
		},
		{
			caption:   "a remove directive with one name",
			src:       "|BLACKLIST|R|a|",
			wantOK:    true,
			wantInsrt: false,
			wantNames: []string{"a"},
		},
		{
			caption: "ordinary literal text is not a directive",
			src:     "hello world",
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			d, ok := parseBlacklistDirective(tt.src)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if d.insert != tt.wantInsrt {
				t.Fatalf("insert = %v, want %v", d.insert, tt.wantInsrt)
			}
			if len(d.names) != len(tt.wantNames) {
				t.Fatalf("names = %v, want %v", d.names, tt.wantNames)
			}
			for i := range tt.wantNames {
				if d.names[i] != tt.wantNames[i] {
					t.Fatalf("names[%d] = %q, want %q", i, d.names[i], tt.wantNames[i])
				}
			}
		})
	}
}
