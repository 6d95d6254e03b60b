package sim

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventQueueImpl", func() {
	var (
		queue *EventQueueImpl
	)

	BeforeEach(func() {
		queue = NewEventQueue()
	})

	It("should pop in order", func() {
		numEvents := 100
		for i := 0; i < numEvents; i++ {
			queue.Push(NewEvent(VTimeInSec(rand.Float64()), func(VTimeInSec) {}))
		}

		now := VTimeInSec(-1)
		for i := 0; i < numEvents; i++ {
			event := queue.Pop()
			Expect(event.Time() >= now).To(BeTrue())
			now = event.Time()
		}

		Expect(queue.Len()).To(Equal(0))
	})

	It("should keep insertion order for events at the same time", func() {
		events := make([]*Event, 0)
		for i := 0; i < 50; i++ {
			evt := NewEvent(VTimeInSec(i%3), func(VTimeInSec) {})
			events = append(events, evt)
			queue.Push(evt)
		}

		for t := 0; t < 3; t++ {
			for i := t; i < 50; i += 3 {
				Expect(queue.Pop()).To(BeIdenticalTo(events[i]))
			}
		}
	})

	It("should return nil when empty", func() {
		Expect(queue.Peek()).To(BeNil())
		Expect(queue.Pop()).To(BeNil())
	})

	It("should peek without removing", func() {
		evt := NewEvent(2, func(VTimeInSec) {})
		queue.Push(NewEvent(3, func(VTimeInSec) {}))
		queue.Push(evt)

		Expect(queue.Peek()).To(BeIdenticalTo(evt))
		Expect(queue.Len()).To(Equal(2))
	})
})
