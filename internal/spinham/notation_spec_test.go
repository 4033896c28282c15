package spinham_test

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
	"github.com/san-kum/spinlab/internal/spinham"
)

var _ = ginkgo.Describe("Notation conversion", func() {
	var (
		h   *spinham.Hamiltonian
		r   = crystal.Translation{1, 0, 0}
		iso = func() float64 {
			j, err := h.Bond("Cr", "Cr", r)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			return j.Iso()
		}
	)

	ginkgo.BeforeEach(func() {
		h = spinham.New()
		cr := crystal.NewAtom("Cr", crystal.Vector{}).WithSpin(crystal.SpinFromValue(1.5))
		gomega.Expect(h.AddAtom(cr, true)).To(gomega.Succeed())
		gomega.Expect(h.AddBond("Cr", "Cr", r, exchange.Isotropic(1))).To(gomega.Succeed())
	})

	ginkgo.It("stores bonds verbatim without a notation", func() {
		gomega.Expect(h.Len()).To(gomega.Equal(1))
		_, err := h.ExchangeFactor()
		gomega.Expect(err).To(gomega.MatchError(spinham.ErrNotation))
	})

	ginkgo.DescribeTable("converting from magnopy",
		func(preset string, want float64) {
			gomega.Expect(h.SetNotationPreset("magnopy")).To(gomega.Succeed())
			gomega.Expect(h.SetNotationPreset(preset)).To(gomega.Succeed())
			gomega.Expect(iso()).To(gomega.BeNumerically("~", want, 1e-12))
			gomega.Expect(h.Len()).To(gomega.Equal(2))
		},
		ginkgo.Entry("to magnopy", "magnopy", 1.0),
		ginkgo.Entry("to SpinW", "SpinW", 0.5),
		ginkgo.Entry("to TB2J", "TB2J", -9.0/8),
		ginkgo.Entry("to Vampire", "Vampire", -9.0/4),
	)

	ginkgo.Context("with the magnopy notation", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(h.SetNotationPreset("magnopy")).To(gomega.Succeed())
		})

		ginkgo.It("keeps the physical bond when double counting is switched", func() {
			h.SetDoubleCounting(false)
			gomega.Expect(h.Len()).To(gomega.Equal(1))
			gomega.Expect(iso()).To(gomega.BeNumerically("~", 2, 1e-12))

			h.SetDoubleCounting(true)
			gomega.Expect(h.Len()).To(gomega.Equal(2))
			gomega.Expect(iso()).To(gomega.BeNumerically("~", 1, 1e-12))
		})

		ginkgo.It("rejects a zero exchange factor", func() {
			err := h.SetExchangeFactor(0)
			gomega.Expect(err).To(gomega.MatchError(spinham.ErrInvalidFactor))
			gomega.Expect(iso()).To(gomega.BeNumerically("~", 1, 1e-12))
		})

		ginkgo.It("removes both directions of a bond", func() {
			gomega.Expect(h.RemoveBond("Cr", "Cr", r.Neg())).To(gomega.Succeed())
			gomega.Expect(h.Len()).To(gomega.BeZero())
		})
	})
})
