package jsoncol

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/s/librekpi/internal/apperrors"
)

func TestDict_ValueScan(t *testing.T) {
	d := Dict{"a": json.Number("1"), "b": []interface{}{json.Number("1"), json.Number("2"), json.Number("3")}}

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != `{"a":1,"b":[1,2,3]}` {
		t.Errorf("Value() = %v", v)
	}

	var got Dict
	if err := got.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("Scan() = %#v, want %#v", got, d)
	}
}

func TestDict_ScanKeepsLargeIntegers(t *testing.T) {
	const stored = `{"id":9007199254740993,"ids":[9007199254740993]}`

	var d Dict
	if err := d.Scan(stored); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if d["id"] != json.Number("9007199254740993") {
		t.Errorf("id = %#v, want json.Number(9007199254740993)", d["id"])
	}

	// read-modify-write must not damage untouched numbers
	d["name"] = "Ivan"
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	want := `{"id":9007199254740993,"ids":[9007199254740993],"name":"Ivan"}`
	if v != want {
		t.Errorf("Value() = %v, want %s", v, want)
	}

	var l List
	if err := l.Scan([]byte(`[9007199254740993]`)); err != nil {
		t.Fatalf("List Scan() error = %v", err)
	}
	if len(l) != 1 || l[0] != json.Number("9007199254740993") {
		t.Errorf("List Scan() = %#v", l)
	}
}

func TestDict_NullHandling(t *testing.T) {
	var d Dict
	v, err := d.Value()
	if err != nil || v != nil {
		t.Fatalf("nil Dict Value() = %v, %v; want nil, nil", v, err)
	}

	var got Dict
	if err := got.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Scan(nil) = %#v, want empty Dict", got)
	}

	if err := got.Scan("null"); err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Error("JSON null should read back as empty Dict")
	}
}

func TestList_ValueScan(t *testing.T) {
	l := StringList("ФІОТ", "ФПМ")

	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var got List
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(got.Strings(), []string{"ФІОТ", "ФПМ"}) {
		t.Errorf("Strings() = %v", got.Strings())
	}
}

func TestList_NullHandling(t *testing.T) {
	var l List
	v, err := l.Value()
	if err != nil || v != nil {
		t.Fatalf("nil List Value() = %v, %v; want nil, nil", v, err)
	}
	text, err := l.Encoded()
	if err != nil || text != nil {
		t.Fatalf("nil List Encoded() = %v, %v", text, err)
	}

	var got List
	if err := got.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Scan(nil) = %#v, want empty List", got)
	}
}

func TestScan_Errors(t *testing.T) {
	var d Dict
	if err := d.Scan(`[1,2]`); !errors.Is(err, apperrors.ErrDeserialization) {
		t.Errorf("list text into Dict: error = %v", err)
	}
	if err := d.Scan(42); !errors.Is(err, apperrors.ErrDeserialization) {
		t.Errorf("int source: error = %v", err)
	}

	var l List
	if err := l.Scan(`{"a":1}`); !errors.Is(err, apperrors.ErrDeserialization) {
		t.Errorf("dict text into List: error = %v", err)
	}
	if err := l.Scan(`not json`); !errors.Is(err, apperrors.ErrDeserialization) {
		t.Errorf("garbage: error = %v", err)
	}
	if err := l.Scan(`[1] [2]`); !errors.Is(err, apperrors.ErrDeserialization) {
		t.Errorf("trailing value: error = %v", err)
	}
}

func TestList_Strings_SkipsNonStrings(t *testing.T) {
	l := List{"a", json.Number("1"), nil, "b"}
	if !reflect.DeepEqual(l.Strings(), []string{"a", "b"}) {
		t.Errorf("Strings() = %v", l.Strings())
	}
}
