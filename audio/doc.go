// Package audio contains the consumer side of the audio path. The Consumer
// type drains a ring.Buffer one quantum at a time on behalf of a real-time
// audio Context and asks the producer for more samples when the buffer runs
// low.
//
// Nothing called from the real-time goroutine blocks, allocates or logs.
// Problems are counted with atomic counters and reported from the main
// goroutine.
package audio
