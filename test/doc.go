// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectSuccess() style of functions record a test
// failure but allow the test to continue. The Demand*() functions stop the
// test immediately with t.Fatalf().
//
// Every function accepts an optional list of tags which are prepended to any
// failure message. Tags are useful when a check is made inside a loop.
package test
