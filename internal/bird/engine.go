// ABOUTME: Metrics engine deriving distance, altitude and freedom from activity.
// ABOUTME: Every function is total; results are clamped to their documented ranges.
package bird

import (
	"math"
	"time"

	"github.com/harperreed/freely/internal/models"
)

const (
	// AltitudePerAnswer is the altitude gained for each answer since the last update.
	AltitudePerAnswer = 5.0
	// DecayPerHour is the altitude lost per hour since the last update.
	DecayPerHour = 1.0
	// MaxAltitude bounds altitude from above; the floor is zero.
	MaxAltitude = 100.0

	freedomWindow      = 10
	varianceScale      = 1000.0
	stableThreshold    = 0.1
	chaoticThreshold   = 0.8
	stableFreedom      = 0.2
	chaoticFreedom     = 0.3
	insufficientSample = models.InitialFreedom
)

// Activity is the part of the event log the altitude computation reads.
type Activity interface {
	CountSince(t time.Time) int
}

// Distance is the number of whole hours elapsed since install.
// A clock reading before install yields zero.
func Distance(installDate, now time.Time) float64 {
	hours := math.Floor(now.Sub(installDate).Hours())
	if hours < 0 {
		return 0
	}
	return hours
}

// Altitude decays the previous altitude by one point per elapsed hour since
// lastUpdate, adds a bonus per answer recorded after lastUpdate, and clamps
// the result to [0, 100].
func Altitude(prev float64, lastUpdate, now time.Time, activity Activity) float64 {
	elapsed := now.Sub(lastUpdate).Hours()
	if elapsed < 0 {
		elapsed = 0
	}
	next := prev - elapsed*DecayPerHour
	next += AltitudePerAnswer * float64(activity.CountSince(lastUpdate))
	return clamp(next, 0, MaxAltitude)
}

// AppendSample adds a sample to history, evicting the oldest entries so at
// most AltitudeHistoryCap remain. The input slice is not modified.
func AppendSample(history []models.AltitudeSample, s models.AltitudeSample) []models.AltitudeSample {
	out := make([]models.AltitudeSample, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, s)
	if over := len(out) - models.AltitudeHistoryCap; over > 0 {
		out = out[over:]
	}
	return out
}

// Freedom scores the variability of the latest altitude samples.
//
// Fewer than two samples score 0.5. Otherwise the population variance of
// the last ten samples is scaled into [0, 1]; values below 0.1 score 0.2,
// values above 0.8 score 0.3, and anything in between passes through.
func Freedom(history []models.AltitudeSample) float64 {
	if len(history) < 2 {
		return insufficientSample
	}
	window := history
	if len(window) > freedomWindow {
		window = window[len(window)-freedomWindow:]
	}

	var sum float64
	for _, s := range window {
		sum += s.Altitude
	}
	mean := sum / float64(len(window))

	var sq float64
	for _, s := range window {
		d := s.Altitude - mean
		sq += d * d
	}
	variance := sq / float64(len(window))

	nv := math.Min(variance/varianceScale, 1)
	switch {
	case nv < stableThreshold:
		return stableFreedom
	case nv > chaoticThreshold:
		return chaoticFreedom
	default:
		return nv
	}
}

// Update runs one metrics cycle at now: distance, then altitude, then the
// history append, then freedom. The returned metrics share no memory with m.
func Update(m models.BirdMetrics, activity Activity, now time.Time) (models.BirdMetrics, models.AnimationState) {
	next := m.Clone()
	next.Distance = Distance(m.InstallDate, now)
	next.Altitude = Altitude(m.Altitude, m.LastAltitudeUpdate, now, activity)
	next.AltitudeHistory = AppendSample(m.AltitudeHistory, models.AltitudeSample{
		Timestamp: now,
		Altitude:  next.Altitude,
	})
	next.Freedom = Freedom(next.AltitudeHistory)
	next.LastAltitudeUpdate = now
	return next, Classify(next.Altitude, next.Freedom)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Reading is a point-in-time view of the bird for display.
type Reading struct {
	Distance  float64               `json:"distance"`
	Altitude  float64               `json:"altitude"`
	Freedom   float64               `json:"freedom"`
	Animation models.AnimationState `json:"animation"`
}

// Project reports what an update at now would show, without producing new
// metrics to commit.
func Project(m models.BirdMetrics, activity Activity, now time.Time) Reading {
	next, state := Update(m, activity, now)
	return Reading{
		Distance:  next.Distance,
		Altitude:  next.Altitude,
		Freedom:   next.Freedom,
		Animation: state,
	}
}
