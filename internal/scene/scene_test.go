package scene_test

import (
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/scene"
	"github.com/san-kum/partfield/internal/sim"
)

type fakeScene struct {
	setups, teardowns int
	live              bool
	failSetup         error
}

func (f *fakeScene) Setup() error {
	f.setups++
	if f.failSetup != nil {
		return f.failSetup
	}
	f.live = true
	return nil
}

func (f *fakeScene) Teardown() {
	f.teardowns++
	f.live = false
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Lifecycle", func() {
	var (
		menu, simScene *fakeScene
		lc             *scene.Lifecycle
		seen           [][2]scene.State
	)

	BeforeEach(func() {
		menu, simScene = &fakeScene{}, &fakeScene{}
		lc = scene.New(menu, simScene, quiet)
		seen = nil
		lc.OnTransition(func(from, to scene.State) {
			seen = append(seen, [2]scene.State{from, to})
		})
		Expect(lc.Start()).To(Succeed())
	})

	It("starts in the menu", func() {
		Expect(lc.State()).To(Equal(scene.MenuActive))
		Expect(menu.live).To(BeTrue())
		Expect(simScene.setups).To(BeZero())
	})

	It("sets up the menu only once on repeated Start", func() {
		Expect(lc.Start()).To(Succeed())
		Expect(menu.setups).To(Equal(1))
	})

	It("swaps menu for simulation on Play", func() {
		ok, err := lc.Play()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(lc.State()).To(Equal(scene.SimulationActive))
		Expect(menu.live).To(BeFalse())
		Expect(simScene.live).To(BeTrue())
		Expect(seen).To(Equal([][2]scene.State{{scene.MenuActive, scene.SimulationActive}}))
	})

	It("ignores Play while the simulation runs", func() {
		_, _ = lc.Play()
		ok, err := lc.Play()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(simScene.setups).To(Equal(1))
	})

	It("returns to the menu on Cancel", func() {
		_, _ = lc.Play()
		ok, err := lc.Cancel()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(lc.State()).To(Equal(scene.MenuActive))
		Expect(simScene.live).To(BeFalse())
		Expect(menu.live).To(BeTrue())
		Expect(menu.setups).To(Equal(2))
		Expect(seen).To(HaveLen(2))
	})

	It("ignores Cancel in the menu", func() {
		ok, err := lc.Cancel()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(simScene.teardowns).To(BeZero())
		Expect(seen).To(BeEmpty())
	})

	It("stays in the menu when simulation setup fails", func() {
		simScene.failSetup = dynamo.ErrNoViewport

		ok, err := lc.Play()
		Expect(ok).To(BeFalse())
		Expect(errors.Is(err, dynamo.ErrNoViewport)).To(BeTrue())
		Expect(lc.State()).To(Equal(scene.MenuActive))
		Expect(simScene.teardowns).To(Equal(1))
		Expect(menu.live).To(BeTrue())
		Expect(seen).To(BeEmpty())
	})

	It("survives repeated Shutdown", func() {
		lc.Shutdown()
		lc.Shutdown()
		Expect(menu.live).To(BeFalse())
		Expect(simScene.live).To(BeFalse())
	})
})

var _ = Describe("Lifecycle with a simulator", func() {
	var (
		store *particles.Store
		s     *sim.Simulator
		lc    *scene.Lifecycle
		vp    dynamo.Viewport
	)

	BeforeEach(func() {
		store = particles.NewStore(particles.NewPool())
		s = sim.New(dynamo.DefaultConstants(), store, nil, sim.Options{})
		vp = dynamo.Rect{Width: 2560, Height: 1440}

		simScene := scene.Funcs{
			SetupFunc: func() error {
				_, err := s.Start(vp)
				return err
			},
			TeardownFunc: s.Stop,
		}
		lc = scene.New(scene.Funcs{}, simScene, quiet)
		Expect(lc.Start()).To(Succeed())
	})

	It("keeps the store populated only while the simulation is active", func() {
		Expect(store.Len()).To(BeZero())

		_, err := lc.Play()
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Len()).To(Equal(147456))

		_, err = lc.Cancel()
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Len()).To(BeZero())
	})

	It("repopulates a fresh lattice on every episode", func() {
		_, _ = lc.Play()
		store.Particles()[0].Vel = dynamo.V(5, 5)
		_, _ = lc.Cancel()
		_, _ = lc.Play()

		Expect(store.Particles()[0].Vel).To(Equal(dynamo.Vec2{}))
	})

	It("reports a missing viewport upward", func() {
		vp = nil
		_, err := lc.Play()
		Expect(err).To(MatchError(dynamo.ErrNoViewport))
		Expect(lc.State()).To(Equal(scene.MenuActive))
		Expect(store.Len()).To(BeZero())
	})
})
