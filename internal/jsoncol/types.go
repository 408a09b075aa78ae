package jsoncol

import (
	"database/sql/driver"
	"fmt"

	"github.com/s/librekpi/internal/apperrors"
)

// Dict is a JSON object column. NULL scans into an empty Dict.
type Dict map[string]interface{}

// List is a JSON array column. NULL scans into an empty List.
type List []interface{}

func (Dict) GormDataType() string { return "string" }

func (List) GormDataType() string { return "string" }

// Value implements driver.Valuer
func (d Dict) Value() (driver.Value, error) {
	var v interface{}
	if d != nil {
		v = map[string]interface{}(d)
	}
	return valueOf(v)
}

// Scan implements sql.Scanner
func (d *Dict) Scan(src interface{}) error {
	text, err := textOf(src)
	if err != nil {
		return err
	}
	if text == nil {
		*d = Dict{}
		return nil
	}
	var m map[string]interface{}
	if err := unmarshal(*text, &m); err != nil {
		return apperrors.NewCustomError(apperrors.ErrDeserialization,
			fmt.Sprintf("failed to decode dict column: %v", err))
	}
	if m == nil {
		// a stored JSON null literal reads back like NULL
		m = map[string]interface{}{}
	}
	*d = m
	return nil
}

// Encoded returns the text that Value would store.
func (d Dict) Encoded() (*string, error) {
	if d == nil {
		return nil, nil
	}
	return Encode(map[string]interface{}(d))
}

// Value implements driver.Valuer
func (l List) Value() (driver.Value, error) {
	var v interface{}
	if l != nil {
		v = []interface{}(l)
	}
	return valueOf(v)
}

// Scan implements sql.Scanner
func (l *List) Scan(src interface{}) error {
	text, err := textOf(src)
	if err != nil {
		return err
	}
	if text == nil {
		*l = List{}
		return nil
	}
	var s []interface{}
	if err := unmarshal(*text, &s); err != nil {
		return apperrors.NewCustomError(apperrors.ErrDeserialization,
			fmt.Sprintf("failed to decode list column: %v", err))
	}
	if s == nil {
		s = []interface{}{}
	}
	*l = s
	return nil
}

// Encoded returns the text that Value would store.
func (l List) Encoded() (*string, error) {
	if l == nil {
		return nil, nil
	}
	return Encode([]interface{}(l))
}

// StringList builds a List from strings.
func StringList(items ...string) List {
	l := make(List, 0, len(items))
	for _, s := range items {
		l = append(l, s)
	}
	return l
}

// Strings returns the string elements of the list, skipping anything else.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func valueOf(v interface{}) (driver.Value, error) {
	text, err := Encode(v)
	if err != nil {
		return nil, err
	}
	if text == nil {
		return nil, nil
	}
	return *text, nil
}

func textOf(src interface{}) (*string, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case []byte:
		s := string(v)
		return &s, nil
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrDeserialization,
			fmt.Sprintf("unsupported column source type %T", src))
	}
}
