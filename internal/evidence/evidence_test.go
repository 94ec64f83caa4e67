package evidence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusValidity(t *testing.T) {
	cases := []struct {
		status Status
		valid  bool
	}{
		{StatusApproved, true},
		{Status(""), true},
		{StatusDraft, false},
		{StatusSuperseded, false},
		{StatusWithdrawn, false},
		{Status("garbage"), false},
	}
	for _, c := range cases {
		if got := c.status.Valid(); got != c.valid {
			t.Errorf("Status(%q).Valid() = %v, want %v", c.status, got, c.valid)
		}
	}
}

func TestAnyInvalid(t *testing.T) {
	clean := []Item{{ID: "a", Status: StatusApproved}, {ID: "b"}}
	if AnyInvalid(clean) {
		t.Fatal("clean set flagged invalid")
	}

	mixed := []Item{{ID: "a", Status: StatusApproved}, {ID: "b", Status: StatusSuperseded}}
	if !AnyInvalid(mixed) {
		t.Fatal("superseded item not flagged")
	}
}

func TestLoadJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunks.json")
	data := `[{"id":"e1","text":"returns accepted within 14 days","status":"approved"},
	          {"id":"e2","text":"old policy","status":"superseded"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	items, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Status != StatusSuperseded {
		t.Fatalf("expected superseded, got %q", items[1].Status)
	}
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunks.jsonl")
	data := `{"id":"e1","text":"first"}

{"id":"e2","text":"second","contradicts":["e1"]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	items, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if len(items[1].Contradicts) != 1 || items[1].Contradicts[0] != "e1" {
		t.Fatalf("contradicts not parsed: %+v", items[1])
	}
}

func TestLoadJSONLBadLine(t *testing.T) {
	_, err := FromJSONLReader(strings.NewReader("{\"id\":\"e1\"}\nnot json\n"))
	if err == nil {
		t.Fatal("expected error on malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestFromReaderEmptyArray(t *testing.T) {
	items, err := FromReader(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty set, got %d", len(items))
	}
}
