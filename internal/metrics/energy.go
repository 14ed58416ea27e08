package metrics

import (
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/particles"
)

// KineticEnergy is the total 1/2 |v|^2 over the population, unit mass.
type KineticEnergy struct {
	value float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(ps []particles.Particle, _ dynamo.Rect) {
	sum := 0.0
	for i := range ps {
		sum += 0.5 * float64(ps[i].Vel.LengthSquared())
	}
	k.value = sum
}

func (k *KineticEnergy) Value() float64 { return k.value }
func (k *KineticEnergy) Reset()         { k.value = 0 }

type MeanSpeed struct {
	value float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(ps []particles.Particle, _ dynamo.Rect) {
	if len(ps) == 0 {
		m.value = 0
		return
	}
	sum := 0.0
	for i := range ps {
		sum += float64(ps[i].Vel.Length())
	}
	m.value = sum / float64(len(ps))
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }
