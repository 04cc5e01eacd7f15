package tui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/edubridge/internal/model"
)

func TestCycleOption(t *testing.T) {
	options := []string{"Johor Bahru", "Penang", "Selangor"}

	tests := []struct {
		name    string
		current string
		delta   int
		want    string
	}{
		{name: "all to first", current: model.AllOption, delta: 1, want: "Johor Bahru"},
		{name: "empty counts as all", current: "", delta: 1, want: "Johor Bahru"},
		{name: "middle forward", current: "Penang", delta: 1, want: "Selangor"},
		{name: "last wraps to all", current: "Selangor", delta: 1, want: model.AllOption},
		{name: "all backward wraps to last", current: model.AllOption, delta: -1, want: "Selangor"},
		{name: "first backward is all", current: "Johor Bahru", delta: -1, want: model.AllOption},
		{name: "vanished value restarts", current: "Sabah", delta: 1, want: model.AllOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cycleOption(options, tt.current, tt.delta))
		})
	}
}

func TestCycleOption_NoOptions(t *testing.T) {
	assert.Equal(t, model.AllOption, cycleOption(nil, model.AllOption, 1))
	assert.Equal(t, model.AllOption, cycleOption(nil, model.AllOption, -1))
}

func TestStepPrice(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name    string
		current float64
		delta   int
		want    float64
	}{
		{name: "down from no ceiling", current: inf, delta: -1, want: 145000},
		{name: "up to top removes ceiling", current: 145000, delta: 1, want: inf},
		{name: "up at no ceiling stays", current: inf, delta: 1, want: inf},
		{name: "down one step", current: 20000, delta: -1, want: 15000},
		{name: "clamped at zero", current: 0, delta: -1, want: 0},
		{name: "partial step clamps", current: 3000, delta: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stepPrice(tt.current, tt.delta))
		})
	}
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "Any", priceLabel(math.Inf(1)))
	assert.Equal(t, "RM 20,000", priceLabel(20000))
}
