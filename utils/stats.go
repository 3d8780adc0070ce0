package utils

import "time"

// Stats tracks how a session is evolving
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	Population           int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a batch of steps that took duration and ended at generation
func (s *Stats) Update(generation, steps, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	if duration > 0 && steps > 0 {
		s.GenerationsPerSecond = float64(steps) / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the time since the session started
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
