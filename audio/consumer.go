package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/jetsetilly/nora32/ring"
)

// Trigger is notified when the consumer needs more samples. The generation
// argument is the value given to NewConsumer() and allows the recipient to
// recognise notifications from a consumer that is no longer current.
//
// Implementations must not block.
type Trigger interface {
	Trigger(generation uint64)
}

// Consumer drains a ring.Buffer for a real-time audio Context and implements
// the backpressure protocol with the producer.
//
// At most one request for more samples is outstanding at any time. A new
// request is made when there is no outstanding request and the number of
// available frames has fallen below the low-water mark. The outstanding
// request is considered satisfied once the producer's write index has moved.
type Consumer struct {
	ring       *ring.Buffer
	trigger    Trigger
	generation uint64
	lowWater   int

	// backpressure state. only accessed by Render()
	requested   bool
	requestedAt uint64

	quanta    atomic.Uint64
	underruns atomic.Uint64
	requests  atomic.Uint64
}

// NewConsumer is the preferred method of initialisation for the Consumer type.
func NewConsumer(r *ring.Buffer, lowWater int, generation uint64, trigger Trigger) *Consumer {
	return &Consumer{
		ring:       r,
		trigger:    trigger,
		generation: generation,
		lowWater:   lowWater,
	}
}

// Render implements the Source interface. The length of the quantum slice
// should be twice the quantum size in frames.
func (c *Consumer) Render(quantum []int16) {
	c.quanta.Add(1)

	if _, err := c.ring.Read(quantum); err != nil {
		c.underruns.Add(1)
	}

	if c.requested && c.ring.Written() != c.requestedAt {
		c.requested = false
	}

	if !c.requested && c.ring.AvailableFrames() < c.lowWater {
		c.requested = true
		c.requestedAt = c.ring.Written()
		c.requests.Add(1)
		c.trigger.Trigger(c.generation)
	}
}

// Generation returns the generation value given to NewConsumer().
func (c *Consumer) Generation() uint64 {
	return c.generation
}

// Quanta returns the number of times Render() has been called.
func (c *Consumer) Quanta() uint64 {
	return c.quanta.Load()
}

// Underruns returns the number of quanta that were padded with silence.
func (c *Consumer) Underruns() uint64 {
	return c.underruns.Load()
}

// Requests returns the number of notifications sent to the Trigger.
func (c *Consumer) Requests() uint64 {
	return c.requests.Load()
}

func (c *Consumer) String() string {
	return fmt.Sprintf("gen %d: %d quanta, %d underruns, %d requests",
		c.generation, c.Quanta(), c.Underruns(), c.Requests())
}
