package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidCoreCount тестирует стандартный ряд емкостей кабеля
func TestIsValidCoreCount(t *testing.T) {
	for _, coreCount := range ValidCoreCounts {
		assert.True(t, IsValidCoreCount(coreCount), "ожидалась допустимая емкость %d", coreCount)
	}

	for _, coreCount := range []int{0, -4, 1, 3, 10, 100, 1000} {
		assert.False(t, IsValidCoreCount(coreCount), "ожидалась недопустимая емкость %d", coreCount)
	}
}

// TestIsValidRouteStatus тестирует статусы маршрута
func TestIsValidRouteStatus(t *testing.T) {
	for _, status := range []string{"planned", "installed", "maintenance"} {
		assert.True(t, IsValidRouteStatus(status), status)
	}

	assert.False(t, IsValidRouteStatus("active"))
	assert.False(t, IsValidRouteStatus(""))
}
