package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddTimeToDate(t *testing.T) {
	location := time.FixedZone("BST", 3600)
	date := time.Date(2025, 6, 14, 23, 59, 0, 0, location)
	clock := time.Date(0, 1, 1, 14, 5, 0, 0, time.UTC)

	result := AddTimeToDate(date, clock)

	assert.Equal(t, time.Date(2025, 6, 14, 14, 5, 0, 0, location), result)
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}

	InPlaceFilter(&values, func(v int) bool {
		return v%2 == 0
	})

	assert.Equal(t, []int{2, 4, 6}, values)
}

func TestRedactSecret(t *testing.T) {
	assert.Equal(t, "c487598e...", RedactSecret("c487598e-7f29-4a7c-bd18-5f867de9c0b6"))
	assert.Equal(t, "abc...", RedactSecret("abc"))
	assert.Equal(t, "", RedactSecret(""))
}
