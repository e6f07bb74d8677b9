package metrics

import (
	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
)

// escapeRadius is the distance beyond which a run counts as unstable.
const escapeRadius = 1e4 * physics.AU

// Defaults returns the metrics recorded for every stored run: energy and
// momentum drift, stability, and the temperature swing of each absorbing
// body.
func Defaults(sys *dynamo.System) []dynamo.Metric {
	ms := []dynamo.Metric{NewEnergyDrift(), NewMomentumDrift(), NewStability(escapeRadius)}
	for _, b := range sys.Bodies {
		if !b.SelfLuminous() {
			ms = append(ms, NewTemperatureSwing(b.Name()))
		}
	}
	return ms
}
