package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRatingAverageFirstReview(t *testing.T) {
	assert.Equal(t, 5.0, NewRatingAverage(0, 0, 5))
	assert.Equal(t, 1.0, NewRatingAverage(0, 0, 1))
}

func TestNewRatingAverageFold(t *testing.T) {
	// Folding ratings one at a time must equal the plain arithmetic mean.
	ratings := []int{5, 3, 4, 1, 2, 5, 5, 4}

	average := 0.0
	sum := 0
	for count, rating := range ratings {
		average = NewRatingAverage(average, count, rating)
		sum += rating
		assert.InDelta(t, float64(sum)/float64(count+1), average, 1e-9)
	}
}

func TestNewRatingAverageStaysInRange(t *testing.T) {
	average := 0.0
	for count := 0; count < 100; count++ {
		average = NewRatingAverage(average, count, 1+count%5)
		assert.GreaterOrEqual(t, average, 1.0)
		assert.LessOrEqual(t, average, 5.0)
	}
}
