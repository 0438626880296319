package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRatings(t *testing.T) {
	t.Run("mixed ratings", func(t *testing.T) {
		summary := AggregateRatings([]int{5, 5, 4, 3, 3, 3})

		assert.Equal(t, 6, summary.Count)
		assert.InDelta(t, 23.0/6.0, summary.Average, 1e-9)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 3, 4: 1, 5: 2}, summary.Distribution)
	})

	t.Run("empty input", func(t *testing.T) {
		summary := AggregateRatings(nil)

		assert.Equal(t, 0, summary.Count)
		assert.Equal(t, 0.0, summary.Average)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.Distribution)
	})

	t.Run("single rating", func(t *testing.T) {
		summary := AggregateRatings([]int{4})

		assert.Equal(t, 1, summary.Count)
		assert.Equal(t, 4.0, summary.Average)
		assert.Equal(t, 1, summary.Distribution[4])
	})
}

func TestRatingSummaryPercent(t *testing.T) {
	summary := AggregateRatings([]int{5, 5, 4, 3, 3, 3})

	assert.Equal(t, 50, summary.Percent(3))
	assert.Equal(t, 17, summary.Percent(4))
	assert.Equal(t, 33, summary.Percent(5))
	assert.Equal(t, 0, summary.Percent(1))

	empty := AggregateRatings(nil)
	assert.Equal(t, 0, empty.Percent(5))
}
