package services

import "math"

// RatingSummary aggregates a set of 1-5 star ratings. It carries no knowledge
// of the entity the ratings belong to; course and professor pages both feed it
// their own review sets.
type RatingSummary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// AggregateRatings computes count, mean and per-star occurrence counts.
// Average is 0 for an empty input.
func AggregateRatings(ratings []int) RatingSummary {
	summary := RatingSummary{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	total := 0
	for _, r := range ratings {
		total += r
		if r >= 1 && r <= 5 {
			summary.Distribution[r]++
		}
	}

	summary.Count = len(ratings)
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary
}

// Percent returns the rounded share of a star bucket, 0 when there are no
// ratings at all.
func (s RatingSummary) Percent(star int) int {
	if s.Count == 0 {
		return 0
	}
	return int(math.Round(float64(s.Distribution[star]) / float64(s.Count) * 100))
}
