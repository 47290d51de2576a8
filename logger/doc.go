// Package logger is the central log for the application. Log entries are
// kept in memory and are written to an io.Writer on request.
//
// Entries can also be echoed as they are added with the SetEcho() function.
//
// The logger must never be used from the real-time audio goroutine. Use
// atomic counters in that context and log the counts from the main context.
package logger
