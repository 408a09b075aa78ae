// Package jsoncol stores structured values (nested maps and lists) as JSON
// text in bounded-width columns. An absent value is written as the column's
// NULL and reads back as the empty container of the column's shape.
// Numbers read back as json.Number so integers beyond float64 precision keep
// every digit.
package jsoncol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/logger"
)

// Shape selects the empty default returned for NULL columns.
type Shape int

const (
	ShapeDict Shape = iota // {}
	ShapeList              // []
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "dict"
}

// Empty returns a fresh empty container for the shape.
func (s Shape) Empty() interface{} {
	if s == ShapeList {
		return []interface{}{}
	}
	return map[string]interface{}{}
}

// Declared column widths.
const (
	WidthSocData      = 1024
	WidthDepartments  = 512
	WidthPublications = 512
	WidthTags         = 512
	WidthSchedule     = 512
	WidthTopics       = 512
)

// Encode serializes value to JSON text. Absent values (nil, or a nil map,
// slice or pointer) pass through as nil so the column stores NULL.
func Encode(value interface{}) (*string, error) {
	logger.Debug().Interface("value", value).Msg("encoding structured value")

	if isAbsent(value) {
		return nil, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrSerialization,
			fmt.Sprintf("failed to encode structured value: %v", err))
	}

	text := string(data)
	return &text, nil
}

// Decode parses stored JSON text. NULL yields the shape's empty default.
func Decode(text *string, shape Shape) (interface{}, error) {
	if text == nil {
		return shape.Empty(), nil
	}

	var value interface{}
	if err := unmarshal(*text, &value); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrDeserialization,
			fmt.Sprintf("failed to decode %s column: %v", shape, err))
	}
	return value, nil
}

// CheckWidth rejects encoded text longer than the column width in characters.
func CheckWidth(column string, text *string, width int) error {
	if text == nil || width <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(*text); n > width {
		return apperrors.NewCustomError(apperrors.ErrValueTooLarge,
			fmt.Sprintf("column %s: encoded value is %d characters, width is %d", column, n, width)).
			WithDetails(map[string]interface{}{"column": column, "width": width, "length": n})
	}
	return nil
}

// unmarshal decodes exactly one JSON value from text, keeping numbers as
// json.Number.
func unmarshal(text string, dst interface{}) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}
