package venue

import (
	"encoding/json"
	"testing"
)

func TestPatchUnmarshalFieldStates(t *testing.T) {
	var p Patch
	body := `{"name": "New Name", "rating": null, "tags": ["a", "b"], "website": ""}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if name, ok := p.Name.Value(); !ok || name != "New Name" {
		t.Errorf("name = %q, %v", name, ok)
	}
	if p.Rating.State() != Cleared {
		t.Errorf("rating state = %v, want Cleared", p.Rating.State())
	}
	if tags, ok := p.Tags.Value(); !ok || len(tags) != 2 {
		t.Errorf("tags = %v, %v", tags, ok)
	}
	if p.Website.State() != Set {
		t.Errorf("website state = %v, want Set", p.Website.State())
	}
	if p.Address.State() != Unchanged {
		t.Errorf("address state = %v, want Unchanged", p.Address.State())
	}
}

func TestPatchUnmarshalTypeMismatch(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"rating": "high"}`), &p); err == nil {
		t.Fatal("expected error for non-numeric rating")
	}
}

func TestPatchMarshalOmitsUnchanged(t *testing.T) {
	p := Patch{Name: SetTo("x"), Rating: Clear[float64]()}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"name":"x","rating":null}` {
		t.Errorf("json = %s", data)
	}
}
