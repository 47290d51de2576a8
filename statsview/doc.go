// Package statsview runs a HTTP server locally offering runtime statistics.
// Underlying functionality is provided by "github.com/go-echarts/statsview"
//
// After launch, graphical statistics will be viewable at:
//
//	localhost:12600/debug/statsview
//
// And standard Go pprof statistics are available at:
//
//	localhost:12600/debug/pprof/
//
// The statistics are useful when checking that the real-time audio path is
// not allocating.
package statsview
