package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusCancelled, true},
		{StatusAccepted, StatusDeclined, false},
		{StatusAccepted, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusAccepted, false},
		{StatusDeclined, StatusPending, false},
		{StatusDeclined, StatusAccepted, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusAccepted.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusDeclined.IsActive())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, BookingStatus("ARCHIVED").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

// Every non-initial status must be reachable from PENDING via allowed edges.
func TestAllStatusesReachableFromPending(t *testing.T) {
	reachable := map[BookingStatus]bool{StatusPending: true}
	queue := []BookingStatus{StatusPending}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range allowedTransitions[current] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}
	for status := range allowedTransitions {
		assert.Truef(t, reachable[status], "status %s unreachable from PENDING", status)
	}
}
