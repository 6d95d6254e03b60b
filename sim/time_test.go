package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VTimeInSec", func() {
	It("should convert between units", func() {
		Expect(Day).To(Equal(VTimeInSec(86400)))
		Expect((36 * Hour).Days()).To(Equal(1.5))
		Expect((90 * Minute).Hours()).To(Equal(1.5))
	})

	It("should find the day number", func() {
		Expect(VTimeInSec(0).DayNumber()).To(Equal(0))
		Expect((Day - Second).DayNumber()).To(Equal(0))
		Expect((3*Day + 8*Hour).DayNumber()).To(Equal(3))
	})

	It("should format as day and hour", func() {
		Expect((2*Day + 8*Hour).String()).To(Equal("d2+8.0000h"))
	})
})
