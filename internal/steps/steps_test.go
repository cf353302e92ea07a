package steps_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/steps"
)

func ring(n int) []steps.Phase {
	names := []string{"initial", "transfer", "ions", "bond", "extra"}
	phases := make([]steps.Phase, n)
	for i := range phases {
		phases[i] = steps.Phase{Name: names[i%len(names)]}
	}
	return phases
}

var _ = Describe("Machine", func() {
	var m *steps.Machine

	BeforeEach(func() {
		var err error
		m, err = steps.NewMachine(ring(4), 3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty ring", func() {
		_, err := steps.NewMachine(nil, 1)
		Expect(err).To(MatchError(dynamo.ErrStepOutOfRange))
	})

	DescribeTable("returns to the start after a full lap",
		func(start int) {
			Expect(m.GoTo(start)).To(Succeed())
			for i := 0; i < m.Len(); i++ {
				m.Next()
			}
			Expect(m.Index()).To(Equal(start))
		},
		Entry("from 0", 0),
		Entry("from 2", 2),
		Entry("from the last phase", 3),
	)

	It("wraps backwards from the first phase", func() {
		Expect(m.Prev()).To(Equal(3))
	})

	It("wraps forwards from the last phase", func() {
		Expect(m.GoTo(3)).To(Succeed())
		Expect(m.Next()).To(Equal(0))
	})

	It("validates GoTo bounds", func() {
		Expect(m.GoTo(4)).To(MatchError(dynamo.ErrStepOutOfRange))
		Expect(m.GoTo(-1)).To(MatchError(dynamo.ErrStepOutOfRange))
		Expect(m.Index()).To(Equal(0))
	})

	It("only advances on ticks while autoplaying", func() {
		Expect(m.Tick()).To(BeFalse())
		Expect(m.ToggleAutoplay()).To(BeTrue())

		Expect(m.Tick()).To(BeFalse())
		Expect(m.Tick()).To(BeFalse())
		Expect(m.Tick()).To(BeTrue())
		Expect(m.Index()).To(Equal(1))

		for i := 0; i < 9; i++ {
			m.Tick()
		}
		Expect(m.Index()).To(Equal(0))
		Expect(m.State()).To(Equal(steps.State{Index: 0, Count: 4, AutoPlaying: true}))
	})

	It("can stop autoplay on the last phase", func() {
		m, err := steps.NewMachine(ring(4), 1, steps.StopAtEnd())
		Expect(err).NotTo(HaveOccurred())
		m.SetAutoplay(true)
		for i := 0; i < 10; i++ {
			m.Tick()
		}
		Expect(m.Index()).To(Equal(3))
		Expect(m.AutoPlaying()).To(BeFalse())

		Expect(m.Next()).To(Equal(0))
	})

	It("resets to the first phase", func() {
		m.Next()
		m.SetAutoplay(true)
		m.Reset()
		Expect(m.State()).To(Equal(steps.State{Index: 0, Count: 4}))
	})
})
