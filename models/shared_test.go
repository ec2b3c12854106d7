package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOptionsNormalized(t *testing.T) {
	page, ok := PageOptions{}.Normalized()
	assert.True(t, ok)
	assert.Equal(t, DefaultPageLimit, page.Limit)

	page, ok = PageOptions{Limit: 100}.Normalized()
	assert.True(t, ok)
	assert.Equal(t, 100, page.Limit)

	_, ok = PageOptions{Limit: 101}.Normalized()
	assert.False(t, ok)

	_, ok = PageOptions{Limit: -1}.Normalized()
	assert.False(t, ok)
}
