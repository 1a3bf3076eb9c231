package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Coercions from a Value to each concrete shape. Cross-type rules are
// deliberate and lossy but deterministic: numbers and boolean words
// convert between bool/int/float/string, containers never convert to
// scalars, and every failure is a TypeError carrying the value's origin
// and actual shape.

// Bool coerces the value into a bool. Integers and floats are false iff
// zero; strings accept 1/true/on/yes and 0/false/off/no, case-insensitively.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindFloat:
		return v.f != 0, nil
	case KindString:
		switch strings.ToLower(v.s) {
		case "1", "true", "on", "yes":
			return true, nil
		case "0", "false", "off", "no":
			return false, nil
		}
	}
	return false, v.typeError("a boolean")
}

// Int coerces the value into an int64. Floats round to the nearest
// integer with ties away from zero; booleans and boolean words map to
// 0/1; other strings must be base-10 integer literals.
func (v Value) Int() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindFloat:
		return int64(math.Round(v.f)), nil
	case KindString:
		switch strings.ToLower(v.s) {
		case "true", "on", "yes":
			return 1, nil
		case "false", "off", "no":
			return 0, nil
		}
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i, nil
		}
	}
	return 0, v.typeError("an integer")
}

// Float coerces the value into a float64, symmetric to Int.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindString:
		switch strings.ToLower(v.s) {
		case "true", "on", "yes":
			return 1, nil
		case "false", "off", "no":
			return 0, nil
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return f, nil
		}
	}
	return 0, v.typeError("a floating point")
}

// Str coerces the value into a string. Scalars format to their canonical
// literal; arrays, tables and nil do not convert.
func (v Value) Str() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), nil
	}
	return "", v.typeError("a string")
}

// Array returns the value's elements. Only arrays convert.
func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.typeError("an array")
	}
	return v.arr, nil
}

// Tree rewraps a table value as a new store: the table is flattened into
// the overrides layer and becomes the new store's merged tree. Only
// tables convert.
func (v Value) Tree() (*Config, error) {
	if v.kind != KindTable {
		return nil, v.typeError("a table")
	}
	return fromTable(v), nil
}

// String renders the value for display and debugging. The form is lossy
// and not meant to round-trip: nil prints empty, scalars print their
// canonical literal, tables print entries sorted by key as { k: v, k: v },
// arrays print [ v, v ] in order.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindTable:
		entries := make([]string, 0, len(v.tab))
		for k, e := range v.tab {
			entries = append(entries, fmt.Sprintf("%s: %s", k, e))
		}
		sort.Strings(entries)
		return "{ " + strings.Join(entries, ", ") + " }"
	case KindArray:
		entries := make([]string, len(v.arr))
		for i, e := range v.arr {
			entries[i] = e.String()
		}
		return "[ " + strings.Join(entries, ", ") + " ]"
	}
	return ""
}

// typeError builds the conversion failure for a requested target shape.
func (v Value) typeError(expected string) error {
	return &TypeError{Origin: v.Origin, Actual: v.describe(), Expected: expected}
}

// describe names the value's actual shape, including the literal for
// scalars so failures are self-explanatory.
func (v Value) describe() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("string %q", v.s)
	case KindBool, KindInt, KindFloat:
		return fmt.Sprintf("%s %s", v.kind, v.String())
	}
	return v.kind.String()
}
