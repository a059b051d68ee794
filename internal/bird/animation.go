// ABOUTME: Animation classifier mapping altitude and freedom to a display state.
// ABOUTME: Also holds small labelling helpers shared by the CLI and MCP views.
package bird

import (
	"fmt"

	"github.com/harperreed/freely/internal/models"
)

// glideBelow is the freedom under which a flying bird glides instead.
const glideBelow = 0.2

// Classify picks the animation state. A grounded bird always hops;
// otherwise low freedom glides and everything else flies.
func Classify(altitude, freedom float64) models.AnimationState {
	if altitude <= 0 {
		return models.AnimationHop
	}
	if freedom < glideBelow {
		return models.AnimationGlide
	}
	return models.AnimationFly
}

// FormatDistance renders whole hours as "5h" or, past a day, "2d 3h".
func FormatDistance(hours float64) string {
	h := int(hours)
	if h < 24 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dd %dh", h/24, h%24)
}

// AltitudeBand names the altitude range for display.
func AltitudeBand(altitude float64) string {
	switch {
	case altitude <= 0:
		return "grounded"
	case altitude < 30:
		return "low"
	case altitude < 70:
		return "mid"
	default:
		return "high"
	}
}

// FreedomLevel names the freedom range for display.
func FreedomLevel(freedom float64) string {
	switch {
	case freedom < 0.2:
		return "low"
	case freedom < 0.5:
		return "medium"
	case freedom < 0.8:
		return "high"
	default:
		return "very high"
	}
}
