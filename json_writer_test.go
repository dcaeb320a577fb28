package stock

import "testing"

func TestJSONObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("ticker", "SNTS")
	w.Optional("name", "")
	w.Optional("memo", "note")
	w.Append("quantity", 100)

	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	want := `{"ticker":"SNTS","memo":"note","quantity":100}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}

func TestJSONObjectWriter_Empty(t *testing.T) {
	var w jsonObjectWriter
	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", data)
	}
}
