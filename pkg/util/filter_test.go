package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}
	InPlaceFilter(&values, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6}, values)
}

func TestInPlaceFilterKeepsNone(t *testing.T) {
	values := []string{"drop", "drop"}
	InPlaceFilter(&values, func(v string) bool { return v == "keep" })

	assert.Empty(t, values)
}
