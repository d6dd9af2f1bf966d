package field

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		host *testHost
		rec  *recorder
		ctrl *Controller
	)

	BeforeEach(func() {
		host = &testHost{w: 1920, h: 1080, theme: ThemeDark}
		rec = &recorder{}
		ctrl = NewController(host, WithRand(rand.New(rand.NewSource(1))))
	})

	Context("without a surface", func() {
		BeforeEach(func() {
			ctrl.Initialize(nil)
		})

		It("stays uninitialized and schedules nothing", func() {
			Expect(ctrl.State()).To(Equal(Uninitialized))
			Expect(host.Pending()).To(BeFalse())
			Expect(host.Listening()).To(BeZero())
		})

		It("ignores a later surface", func() {
			ctrl.Initialize(rec)
			Expect(ctrl.State()).To(Equal(Uninitialized))
		})

		It("tolerates destroy", func() {
			Expect(ctrl.Destroy).NotTo(Panic())
			Expect(ctrl.State()).To(Equal(Uninitialized))
		})

		It("reports it is not running", func() {
			Expect(ctrl.Check()).To(MatchError(ErrNotRunning))
		})
	})

	Context("when initialized", func() {
		BeforeEach(func() {
			ctrl.Initialize(rec)
		})

		It("starts running with a density-sized population", func() {
			Expect(ctrl.State()).To(Equal(Running))
			Expect(ctrl.Particles()).To(HaveLen(82))
			Expect(ctrl.Device()).To(Equal(Desktop))
			Expect(rec.width).To(Equal(1920.0))
			Expect(rec.height).To(Equal(1080.0))
			Expect(host.Pending()).To(BeTrue())
			Expect(host.Listening()).To(Equal(1))
		})

		It("draws pre-update positions and then advances them", func() {
			before := ctrl.Particles()
			Expect(host.RunFrame(0.5)).To(BeTrue())

			Expect(rec.clears).To(Equal(1))
			fills := rec.calls[len(rec.calls)-len(before):]
			for i, c := range fills {
				Expect(c.op).NotTo(Equal("line"))
				center := c.centroid()
				Expect(center.X).To(BeNumerically("~", before[i].X, 1e-9))
				Expect(center.Y).To(BeNumerically("~", before[i].Y, 1e-9))
			}
			for _, c := range rec.calls[:len(rec.calls)-len(before)] {
				Expect(c.op).To(Equal("line"))
			}
			Expect(ctrl.Edges()).To(Equal(rec.count("line")))
			Expect(ctrl.Particles()).NotTo(Equal(before))
			Expect(host.Pending()).To(BeTrue())
		})

		It("keeps every particle inside the surface", func() {
			r := rand.New(rand.NewSource(2))
			for i := 0; i < 300; i++ {
				if i%10 == 0 {
					host.DispatchPointer(r.Float64()*1920, r.Float64()*1080)
				}
				host.RunFrame(float64(i) / 60)
				Expect(ctrl.Check()).To(Succeed())
			}
			Expect(ctrl.Frames()).To(Equal(300))
		})

		It("records the pointer without drawing", func() {
			host.DispatchPointer(10, 20)
			Expect(ctrl.Pointer()).To(Equal(Pointer{X: 10, Y: 20, Present: true}))
			Expect(rec.clears).To(BeZero())
		})

		It("replaces the whole population on resize", func() {
			before := ctrl.Particles()
			host.w, host.h, host.theme = 400, 300, ThemeLight
			host.DispatchResize()

			after := ctrl.Particles()
			Expect(ctrl.State()).To(Equal(Running))
			Expect(ctrl.Device()).To(Equal(Mobile))
			Expect(ctrl.Theme()).To(Equal(ThemeLight))
			Expect(after).To(HaveLen(3))
			Expect(rec.width).To(Equal(400.0))
			for _, p := range after {
				Expect(p.X).To(BeNumerically("<=", 400))
				Expect(p.Y).To(BeNumerically("<=", 300))
				for _, old := range before {
					Expect(p).NotTo(Equal(old))
				}
			}
		})

		It("survives a resize to nothing", func() {
			host.w, host.h = 1, 1
			host.DispatchResize()
			Expect(ctrl.Particles()).To(BeEmpty())
			Expect(host.RunFrame(0)).To(BeTrue())
			Expect(ctrl.Edges()).To(BeZero())
			Expect(host.Pending()).To(BeTrue())
		})

		It("does not produce NaN when the pointer sits on a particle", func() {
			host.w, host.h = 400, 300
			host.DispatchResize()
			p := ctrl.Particles()[0]
			host.DispatchPointer(p.X, p.Y)
			host.RunFrame(0)
			for _, q := range ctrl.Particles() {
				Expect(math.IsNaN(q.VX) || math.IsNaN(q.VY)).To(BeFalse())
			}
		})
	})

	Context("when destroyed", func() {
		BeforeEach(func() {
			ctrl.Initialize(rec)
			host.RunFrame(0)
			ctrl.Destroy()
		})

		It("cancels the pending frame and releases listeners", func() {
			Expect(ctrl.State()).To(Equal(Stopped))
			Expect(host.Pending()).To(BeFalse())
			Expect(host.Listening()).To(BeZero())
		})

		It("is idempotent", func() {
			Expect(ctrl.Destroy).NotTo(Panic())
			Expect(ctrl.State()).To(Equal(Stopped))
		})

		It("ignores further events", func() {
			before := ctrl.Particles()
			host.w = 500
			host.DispatchResize()
			host.DispatchPointer(1, 1)
			Expect(host.RunFrame(1)).To(BeFalse())
			Expect(ctrl.Particles()).To(Equal(before))
			Expect(ctrl.Pointer().Present).To(BeFalse())
		})

		It("cannot be restarted", func() {
			ctrl.Initialize(rec)
			Expect(ctrl.State()).To(Equal(Stopped))
		})
	})
})
