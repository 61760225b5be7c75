package game_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaoslanding/internal/game"
)

type recordingCues struct {
	catches, misses int
}

func (r *recordingCues) Catch() { r.catches++ }
func (r *recordingCues) Miss()  { r.misses++ }

const (
	fieldW = 600.0
	fieldH = 400.0
)

var _ = Describe("Session", func() {
	var (
		cues   *recordingCues
		s      *game.Session
		scores []int
	)

	BeforeEach(func() {
		cues = &recordingCues{}
		scores = nil
		s = game.NewSession(game.DefaultConfig(), cues, rand.New(rand.NewSource(1)))
		s.Resize(fieldW, fieldH)
		s.OnScore(func(score int) { scores = append(scores, score) })
	})

	Describe("lifecycle", func() {
		It("starts idle and ignores steps until started", func() {
			Expect(s.State()).To(Equal(game.Idle))
			ev := s.Step(10 * time.Second)
			Expect(ev).To(Equal(game.Events{}))
			Expect(s.Items()).To(BeEmpty())
		})

		It("runs forever without a miss limit", func() {
			s.Start(0)
			for i := 0; i < 20; i++ {
				s.AddItem(game.Item{X: 0, Y: fieldH, Speed: 5, Size: 30})
				s.Step(0)
			}
			Expect(s.Misses()).To(Equal(20))
			Expect(s.State()).To(Equal(game.Running))
		})

		It("ends once the miss limit is reached and can be reset", func() {
			cfg := game.DefaultConfig()
			cfg.MissLimit = 2
			s = game.NewSession(cfg, cues, rand.New(rand.NewSource(1)))
			s.Resize(fieldW, fieldH)
			s.Start(0)

			s.AddItem(game.Item{X: 0, Y: fieldH, Speed: 5, Size: 30})
			s.Step(0)
			Expect(s.State()).To(Equal(game.Running))

			s.AddItem(game.Item{X: 0, Y: fieldH, Speed: 5, Size: 30})
			s.Step(0)
			Expect(s.State()).To(Equal(game.GameOver))

			s.AddItem(game.Item{X: 0, Y: fieldH, Speed: 5, Size: 30})
			Expect(s.Step(0)).To(Equal(game.Events{}))

			s.Reset()
			Expect(s.State()).To(Equal(game.Idle))
			Expect(s.Score()).To(Equal(0))
			Expect(s.Misses()).To(Equal(0))
			Expect(s.Items()).To(BeEmpty())
		})
	})

	Describe("paddle", func() {
		It("is centered on resize", func() {
			Expect(s.PaddleX()).To(Equal(fieldW/2 - 50))
		})

		It("centers under the pointer", func() {
			s.MovePointer(300)
			Expect(s.PaddleX()).To(Equal(250.0))
		})

		It("is clamped to the field", func() {
			s.MovePointer(-80)
			Expect(s.PaddleX()).To(Equal(0.0))
			s.MovePointer(fieldW + 500)
			Expect(s.PaddleX()).To(Equal(fieldW - 100))
		})
	})

	Describe("spawning", func() {
		It("spawns one item per interval and never more than one per call", func() {
			s.Start(0)
			total := 0
			for _, ts := range []time.Duration{
				500 * time.Millisecond,
				1001 * time.Millisecond,
				1500 * time.Millisecond,
				2002 * time.Millisecond,
				9 * time.Second,
				9 * time.Second,
			} {
				ev := s.Step(ts)
				Expect(ev.Spawned).To(BeNumerically("<=", 1))
				total += ev.Spawned
			}
			Expect(total).To(Equal(3))
		})

		It("spawns one item for every elapsed second of 60fps frames", func() {
			s.Start(0)
			frame := time.Second / 60
			total := 0
			for ts := frame; ts <= 10*time.Second; ts += frame {
				total += s.Step(ts).Spawned
			}
			Expect(total).To(BeNumerically("~", 10, 1))
		})

		It("spawns above the field inside the horizontal margin", func() {
			s.Start(0)
			s.Step(1001 * time.Millisecond)
			Expect(s.Items()).To(HaveLen(1))
			it := s.Items()[0]
			Expect(it.X).To(BeNumerically(">=", 0))
			Expect(it.X).To(BeNumerically("<", fieldW-40))
			Expect(it.Size).To(BeNumerically(">=", 30))
			Expect(it.Size).To(BeNumerically("<", 40))
			Expect(it.Speed).To(BeNumerically(">=", 2))
			Expect(it.Speed).To(BeNumerically("<", 5))
		})

		It("ramps fall speed with the score", func() {
			s.Start(0)
			for i := 0; i < 30; i++ {
				s.AddItem(game.Item{X: 300, Y: fieldH - 30, Speed: 0, Size: 30})
				s.Step(0)
			}
			Expect(s.Score()).To(Equal(30))
			s.Step(1001 * time.Millisecond)
			items := s.Items()
			Expect(items).NotTo(BeEmpty())
			Expect(items[len(items)-1].Speed).To(BeNumerically(">=", 5))
		})
	})

	Describe("catching", func() {
		It("removes the item, scores once and bursts eight particles at it", func() {
			s.Start(0)
			s.AddItem(game.Item{X: fieldW / 2, Y: fieldH - 30, Speed: 1, Size: 30})

			ev := s.Step(0)

			Expect(ev.Caught).To(Equal(1))
			Expect(s.Score()).To(Equal(1))
			Expect(s.Items()).To(BeEmpty())
			Expect(cues.catches).To(Equal(1))
			Expect(scores).To(Equal([]int{1}))
			Expect(s.Particles()).To(HaveLen(8))
			for _, p := range s.Particles() {
				Expect(p.X).To(Equal(fieldW / 2))
				Expect(p.Y).To(Equal(fieldH - 29))
				Expect(p.Life).To(Equal(1.0))
			}
		})

		It("never decrements the score", func() {
			s.Start(0)
			last := 0
			for i := 0; i < 50; i++ {
				if i%2 == 0 {
					s.AddItem(game.Item{X: fieldW / 2, Y: fieldH - 30, Speed: 1, Size: 30})
				} else {
					s.AddItem(game.Item{X: 5, Y: fieldH, Speed: 1, Size: 30})
				}
				s.Step(0)
				Expect(s.Score()).To(BeNumerically(">=", last))
				Expect(s.Score() - last).To(BeNumerically("<=", 1))
				last = s.Score()
			}
			Expect(s.Score()).To(Equal(25))
		})

		It("ignores items outside the paddle span", func() {
			s.Start(0)
			s.AddItem(game.Item{X: s.PaddleX(), Y: fieldH - 30, Speed: 1, Size: 30})
			ev := s.Step(0)
			Expect(ev.Caught).To(Equal(0))
			Expect(s.Items()).To(HaveLen(1))
		})
	})

	Describe("missing", func() {
		It("drops items below the field without scoring", func() {
			s.Start(0)
			s.MovePointer(500)
			s.AddItem(game.Item{X: 20, Y: fieldH - 2, Speed: 5, Size: 30})

			ev := s.Step(0)

			Expect(ev.Missed).To(Equal(1))
			Expect(s.Items()).To(BeEmpty())
			Expect(s.Score()).To(Equal(0))
			Expect(cues.misses).To(Equal(1))
			Expect(scores).To(BeEmpty())
		})
	})

	Describe("particles", func() {
		It("burn 0.05 of life per step and vanish once spent", func() {
			s.Start(0)
			s.AddParticle(game.Particle{X: 10, Y: 10, VX: 1, VY: 2, Life: 0.07})

			s.Step(0)
			Expect(s.Particles()).To(HaveLen(1))
			p := s.Particles()[0]
			Expect(p.Life).To(BeNumerically("~", 0.02, 1e-9))
			Expect(p.X).To(Equal(11.0))
			Expect(p.Y).To(Equal(12.0))

			s.Step(0)
			Expect(s.Particles()).To(BeEmpty())
		})
	})
})
