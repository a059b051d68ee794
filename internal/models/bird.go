// ABOUTME: BirdMetrics model, AltitudeSample history, and AnimationState enum.
// ABOUTME: Metrics are recomputed by internal/bird and never edited directly.
package models

import "time"

const (
	// InitialAltitude is where a new bird starts.
	InitialAltitude = 50.0
	// InitialFreedom is the neutral freedom score before there is history.
	InitialFreedom = 0.5
	// AltitudeHistoryCap bounds the altitude history, oldest evicted first.
	AltitudeHistoryCap = 20
)

// AltitudeSample is one altitude reading in the bounded history.
type AltitudeSample struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Altitude  float64   `json:"altitude" yaml:"altitude" validate:"gte=0,lte=100"`
}

// BirdMetrics is the derived state behind the bird visualization.
type BirdMetrics struct {
	Distance           float64          `json:"distance" yaml:"distance" validate:"gte=0"`
	Altitude           float64          `json:"altitude" yaml:"altitude" validate:"gte=0,lte=100"`
	Freedom            float64          `json:"freedom" yaml:"freedom" validate:"gte=0,lte=1"`
	InstallDate        time.Time        `json:"install_date" yaml:"install_date" validate:"required"`
	LastAltitudeUpdate time.Time        `json:"last_altitude_update" yaml:"last_altitude_update" validate:"required"`
	AltitudeHistory    []AltitudeSample `json:"altitude_history" yaml:"altitude_history" validate:"min=1,max=20,dive"`
}

// NewBirdMetrics returns the metrics of a freshly installed bird.
// The history is seeded with a single sample at the initial altitude.
func NewBirdMetrics(now time.Time) BirdMetrics {
	return BirdMetrics{
		Distance:           0,
		Altitude:           InitialAltitude,
		Freedom:            InitialFreedom,
		InstallDate:        now,
		LastAltitudeUpdate: now,
		AltitudeHistory:    []AltitudeSample{{Timestamp: now, Altitude: InitialAltitude}},
	}
}

// Clone returns a copy that shares no history backing array with m.
func (m BirdMetrics) Clone() BirdMetrics {
	c := m
	c.AltitudeHistory = append([]AltitudeSample(nil), m.AltitudeHistory...)
	return c
}

// AnimationState is the discrete display state of the bird.
type AnimationState string

const (
	AnimationFly   AnimationState = "fly"
	AnimationGlide AnimationState = "glide"
	AnimationHop   AnimationState = "hop"
)

// AllAnimationStates lists every valid animation state.
var AllAnimationStates = []AnimationState{AnimationFly, AnimationGlide, AnimationHop}

// IsValidAnimationState checks if a string names an animation state.
func IsValidAnimationState(s string) bool {
	for _, st := range AllAnimationStates {
		if string(st) == s {
			return true
		}
	}
	return false
}
