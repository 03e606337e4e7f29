// SPDX-License-Identifier: MIT

package presets

import (
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/blochlab/model"
)

// mixedRadius caps the Bloch length of random mixed states so that they are
// never mistaken for pure ones.
const mixedRadius = 0.99

// RandomDensityMatrix draws a state uniformly from the Bloch sphere
// surface (pure) or ball (mixed). rng == nil uses the global source.
func RandomDensityMatrix(rng *rand.Rand, pure bool, opts ...model.Option) *model.DensityMatrix {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	theta := math.Acos(1 - 2*float())
	phi := 2 * math.Pi * float()
	r := 1.0
	if !pure {
		r = mixedRadius * math.Cbrt(float())
	}

	return model.NewDensityMatrixFromBloch(theta, phi, r, opts...)
}
