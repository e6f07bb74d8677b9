package metrics

import (
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
)

// TemperatureSwing is the peak-to-peak temperature of one body in kelvin.
type TemperatureSwing struct {
	body     string
	min, max float64
}

func NewTemperatureSwing(body string) *TemperatureSwing {
	t := &TemperatureSwing{body: body}
	t.Reset()
	return t
}

func (t *TemperatureSwing) Name() string { return "temp_swing_" + t.body }

func (t *TemperatureSwing) Observe(step int, bodies []*dynamo.Body) {
	if step < 0 {
		return
	}
	for _, b := range bodies {
		if b.Name() == t.body {
			t.min = math.Min(t.min, b.Temperature)
			t.max = math.Max(t.max, b.Temperature)
			return
		}
	}
}

func (t *TemperatureSwing) Value() float64 {
	if t.max < t.min {
		return 0
	}
	return t.max - t.min
}

func (t *TemperatureSwing) Reset() {
	t.min = math.Inf(1)
	t.max = math.Inf(-1)
}
