package utils

import (
	"encoding/json"
	"testing"
)

type patchDoc struct {
	Name  Optional[string] `json:"name"`
	Price Optional[Number] `json:"price"`
}

func TestOptionalTracksPresence(t *testing.T) {
	var doc patchDoc
	if err := json.Unmarshal([]byte(`{"name":null}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !doc.Name.Set || !doc.Name.Null {
		t.Fatalf("null key should be Set and Null: %+v", doc.Name)
	}
	if doc.Price.Set {
		t.Fatalf("absent key must not be Set")
	}

	doc = patchDoc{}
	if err := json.Unmarshal([]byte(`{"name":"  Bali  ","price":"99.5"}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := NullableText(doc.Name); got == nil || *got != "Bali" {
		t.Fatalf("NullableText = %v", got)
	}
	if doc.Price.Value.Value != 99.5 || doc.Price.Value.Empty {
		t.Fatalf("unexpected price %+v", doc.Price.Value)
	}
	if NullableText(Some("   ")) != nil {
		t.Fatalf("blank text should become nil")
	}
}

func TestNumberDecoding(t *testing.T) {
	cases := []struct {
		raw     string
		value   float64
		empty   bool
		wantErr bool
	}{
		{`12`, 12, false, false},
		{`"150000"`, 150000, false, false},
		{`" 7 "`, 7, false, false},
		{`""`, 0, true, false},
		{`false`, 0, true, false},
		{`"abc"`, 0, false, true},
	}
	for _, tc := range cases {
		var n Number
		err := json.Unmarshal([]byte(tc.raw), &n)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.raw, err)
		}
		if n.Value != tc.value || n.Empty != tc.empty {
			t.Fatalf("%s: got %+v", tc.raw, n)
		}
	}
}

func TestNumberID(t *testing.T) {
	if NumberOf(0).ID() != nil || NumberOf(-3).ID() != nil || (Number{Empty: true}).ID() != nil {
		t.Fatalf("zero, negative and empty must not be ids")
	}
	if id := NumberOf(4).ID(); id == nil || *id != 4 {
		t.Fatalf("expected id 4, got %v", id)
	}
}
