package test

import (
	"fmt"
	"strings"
	"testing"
)

// id builds a prefix for failure messages from the optional tags.
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = fmt.Sprintf("%v", t)
	}
	return fmt.Sprintf("%s: ", strings.Join(s, " "))
}

// expect returns true if the value represents success. supported types are
// bool, error and nil
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	}

	t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	return false
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is the inverse of ExpectEquality().
func ExpectInequality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v == expectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. Types bool and error are supported:
//
//	bool -> bool == true
//	error -> error == nil
//
// A nil value is also treated as success.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		switch v := v.(type) {
		case error:
			t.Errorf("%sexpected success (error: %v)", id(tags...), v)
		default:
			t.Errorf("%sexpected success (%T)", id(tags...), v)
		}
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. Types bool and error are supported:
//
//	bool -> bool == false
//	error -> error != nil
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sexpected failure (%T)", id(tags...), v)
		return false
	}
	return true
}

// ExpectImplements tests whether an instance is an implementation of type T.
func ExpectImplements[T any](t *testing.T, instance any, tags ...any) bool {
	t.Helper()
	if _, ok := instance.(T); !ok {
		var zero *T
		t.Errorf("%simplementation test failed: type %T does not implement %T", id(tags...), instance, zero)
		return false
	}
	return true
}
