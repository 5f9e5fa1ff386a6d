package clock_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Vaidurya-s/os-memory-management-simulator/internal/clock"
)

var _ = Describe("Clock", func() {
	It("should start at zero", func() {
		c := clock.New()
		Expect(c.Now()).To(Equal(uint64(0)))
	})

	It("should hand out strictly increasing timestamps", func() {
		c := clock.New()

		first := c.Tick()
		second := c.Tick()
		third := c.Tick()

		Expect(first).To(Equal(uint64(0)))
		Expect(second).To(Equal(uint64(1)))
		Expect(third).To(Equal(uint64(2)))
	})

	It("should not advance when only peeking", func() {
		c := clock.New()

		c.Tick()
		before := c.Now()
		after := c.Now()

		Expect(before).To(Equal(after))
	})
})
