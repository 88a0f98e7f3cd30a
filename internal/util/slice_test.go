package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestContainsString_Valid(t *testing.T) {
	// GIVEN
	list := []string{
		"desk",
		"shelf",
		"hallway",
	}

	// WHEN
	result := ContainsString(list, "shelf")

	// THEN
	assert.True(t, result)
}

func TestContainsString_Invalid(t *testing.T) {
	// GIVEN
	list := []string{
		"desk",
		"shelf",
		"hallway",
	}

	// WHEN
	result := ContainsString(list, "kitchen")

	// THEN
	assert.False(t, result)
}

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"value": 1,
		"pin":   2,
		"id":    3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"id", "pin", "value"}, result)
}

func TestReplacePlaceholders(t *testing.T) {
	// GIVEN
	args := []string{"--pin", "%pin%", "--duty=%value%", "static"}

	// WHEN
	result := ReplacePlaceholders(args, map[string]string{
		"pin":   "5",
		"value": "128",
	})

	// THEN
	assert.Equal(t, []string{"--pin", "5", "--duty=128", "static"}, result)
	assert.Equal(t, "%pin%", args[1])
}
