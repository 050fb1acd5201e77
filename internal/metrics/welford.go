package metrics

import "math"

// Welford holds running statistics using Welford's online algorithm.
// Mean and standard deviation are updated in O(1) per observation
// without keeping the observations.
type Welford struct {
	count int     // n - number of observations
	mean  float64 // running mean
	m2    float64 // sum of squared differences from mean
}

// Update adds one observation.
// Reference: https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance#Welford's_online_algorithm
func (w *Welford) Update(value float64) {
	w.count++
	delta := value - w.mean
	w.mean += delta / float64(w.count)
	delta2 := value - w.mean
	w.m2 += delta * delta2
}

// Mean returns the current mean, 0 with no observations.
func (w *Welford) Mean() float64 {
	return w.mean
}

// StdDev returns the population standard deviation.
// Returns 0 if fewer than 2 observations.
func (w *Welford) StdDev() float64 {
	if w.count < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.count))
}

// Count returns the number of observations.
func (w *Welford) Count() int {
	return w.count
}

// ZScore returns how many standard deviations value lies from the mean,
// or 0 when the spread is zero.
func (w *Welford) ZScore(value float64) float64 {
	sd := w.StdDev()
	if sd == 0 {
		return 0
	}
	return (value - w.mean) / sd
}
