package fields

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeCommaSeparated(t *testing.T) {
	cases := map[string][]string{
		"React, Flutter ,  Swift": {"React", "Flutter", "Swift"},
		"not json, but text":      {"not json", "but text"},
		"Go":                      {"Go"},
		"  Go  ":                  {"Go"},
		"a,,b, ,c,":               {"a", "b", "c"},
		"":                        {},
		"   ":                     {},
		",,,":                     {},
		"dup, dup":                {"dup", "dup"},
		`["a", "b"] trailing`:     {`["a"`, `"b"] trailing`},
	}
	for in, expect := range cases {
		got := Normalize(in)
		if got == nil {
			t.Fatalf("normalize %q returned nil", in)
		}
		if !reflect.DeepEqual(got.Strings(), expect) {
			t.Fatalf("normalize %q => %#v, expected %#v", in, got.Strings(), expect)
		}
	}
}

func TestNormalizeJSONArrayString(t *testing.T) {
	got := Normalize(`["React","Flutter"]`)
	expect := List{"React", "Flutter"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %#v got %#v", expect, got)
	}

	// Elements from a decoded array are not trimmed or filtered.
	got = Normalize(`[" padded ", ""]`)
	expect = List{" padded ", ""}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %#v got %#v", expect, got)
	}

	if got := Normalize(`[]`); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestNormalizeJSONArrayKeepsNonStrings(t *testing.T) {
	got := Normalize(`[1, 2.50, true, null, "x"]`)
	expect := List{json.Number("1"), json.Number("2.50"), true, nil, "x"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %#v got %#v", expect, got)
	}
	if s := got.Strings(); s[1] != "2.50" {
		t.Fatalf("expected literal number text, got %q", s[1])
	}
}

func TestNormalizeJSONNonArrayIsEmpty(t *testing.T) {
	for _, in := range []string{`42`, `"hello"`, `{"x":1}`, `true`, `null`, ` 3.5 `} {
		got := Normalize(in)
		if got == nil || len(got) != 0 {
			t.Fatalf("normalize %q => %#v, expected empty list", in, got)
		}
	}
}

func TestNormalizeSequencesAreIdentity(t *testing.T) {
	in := []any{" untouched ", 7, ""}
	got := Normalize(in)
	if !reflect.DeepEqual([]any(got), in) {
		t.Fatalf("expected identity, got %#v", got)
	}

	strs := []string{" a", "b ", ""}
	got = Normalize(strs)
	if !reflect.DeepEqual(got.Strings(), strs) {
		t.Fatalf("expected identity, got %#v", got)
	}

	ints := [3]int{3, 1, 2}
	got = Normalize(ints)
	if !reflect.DeepEqual(got, List{3, 1, 2}) {
		t.Fatalf("expected array elements, got %#v", got)
	}
}

func TestNormalizeOtherValuesAreEmpty(t *testing.T) {
	var nilSlice []string
	var nilPtr *string
	inputs := []any{nil, 42, 3.14, true, map[string]any{"a": 1}, struct{}{}, nilSlice, nilPtr}
	for _, in := range inputs {
		got := Normalize(in)
		if got == nil || len(got) != 0 {
			t.Fatalf("normalize %#v => %#v, expected empty list", in, got)
		}
	}
}

func TestNormalizeBytesAndPointers(t *testing.T) {
	if got := Normalize([]byte(`["a","b"]`)); !reflect.DeepEqual(got, List{"a", "b"}) {
		t.Fatalf("bytes: got %#v", got)
	}
	if got := Normalize(json.RawMessage(`"a, b"`)); len(got) != 0 {
		t.Fatalf("raw json string should be empty, got %#v", got)
	}
	s := "x, y"
	if got := Normalize(&s); !reflect.DeepEqual(got, List{"x", "y"}) {
		t.Fatalf("pointer: got %#v", got)
	}
}

func TestNormalizeRoundTripJSONEncoding(t *testing.T) {
	seqs := [][]string{
		{"React", "Flutter"},
		{" spaced ", "", "a,b"},
		{},
	}
	for _, seq := range seqs {
		b, err := json.Marshal(seq)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got := Normalize(string(b))
		if !reflect.DeepEqual(got.Strings(), seq) {
			t.Fatalf("round trip %q => %#v", b, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, in := range []any{"a, b", `["x"]`, nil, 42, []string{"k"}} {
		once := Normalize(in)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("normalize not stable for %#v: %#v vs %#v", in, once, twice)
		}
	}
}

func TestListJSONCodec(t *testing.T) {
	var payload struct {
		A List  `json:"a"`
		B List  `json:"b"`
		C List  `json:"c"`
		D List  `json:"d"`
		E *List `json:"e"`
	}
	body := `{"a":["x","y"],"b":"[\"x\",\"y\"]","c":"x, y","d":null,"e":null}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for name, l := range map[string]List{"a": payload.A, "b": payload.B, "c": payload.C} {
		if !reflect.DeepEqual(l.Strings(), []string{"x", "y"}) {
			t.Fatalf("field %s => %#v", name, l)
		}
	}
	if payload.D == nil || len(payload.D) != 0 {
		t.Fatalf("null should decode to empty list, got %#v", payload.D)
	}
	if payload.E != nil {
		t.Fatalf("null pointer should stay nil")
	}

	out, err := json.Marshal(struct {
		L List `json:"l"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"l":[]}` {
		t.Fatalf("nil list should marshal as [], got %s", out)
	}
}

func TestListSQLCodec(t *testing.T) {
	v, err := List{"a", "b"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `["a","b"]` {
		t.Fatalf("unexpected stored value %#v", v)
	}

	var l List
	if err := l.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(l, List{"a", "b"}) {
		t.Fatalf("scan round trip => %#v", l)
	}
	if err := l.Scan([]byte("legacy, csv")); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(l, List{"legacy", "csv"}) {
		t.Fatalf("legacy scan => %#v", l)
	}
	if err := l.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if l == nil || len(l) != 0 {
		t.Fatalf("NULL should scan to empty list, got %#v", l)
	}
}
