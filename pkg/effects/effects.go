// Package effects is the catalogue of polygon window animations. Every
// effect implements polygon.Effect: Setup tessellates the window through the
// Animation and assigns each polygon its target, and the engine does the
// rest.
package effects

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/polygon"
)

// zCamera is the distance of the default compositor camera from the screen
// plane, in screen widths.
const zCamera = 0.866025404

// reach is how far, in pixels, flying pieces travel along z.
func reach(a *polygon.Animation) float32 {
	return 0.8 * zCamera * float32(a.ScreenWidth())
}

func rad(deg float32) float32 { return deg * math32.Pi / 180 }
