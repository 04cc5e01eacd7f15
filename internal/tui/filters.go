package tui

import (
	"math"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/cli"
	"github.com/Veraticus/edubridge/internal/model"
)

// Price slider bounds in MYR. The top position means no ceiling.
const (
	PriceStep    = 5000
	PriceCeiling = 150000
)

// cycleOption moves current by delta through "All" followed by options,
// wrapping at both ends. A value no longer offered restarts at "All".
func cycleOption(options []string, current string, delta int) string {
	choices := append([]string{model.AllOption}, options...)

	i := 0
	if !model.IsAll(current) {
		i = -1
		for j, o := range options {
			if o == current {
				i = j + 1
				break
			}
		}
		if i < 0 {
			return model.AllOption
		}
	}

	n := len(choices)
	return choices[((i+delta)%n+n)%n]
}

// stepPrice moves the ceiling by delta steps, clamped to the slider range.
// Reaching PriceCeiling removes the ceiling.
func stepPrice(current float64, delta int) float64 {
	if math.IsInf(current, 1) || current > PriceCeiling {
		current = PriceCeiling
	}

	next := current + float64(delta*PriceStep)
	switch {
	case next >= PriceCeiling:
		return math.Inf(1)
	case next < 0:
		return 0
	}
	return next
}

func priceLabel(maxPrice float64) string {
	if math.IsInf(maxPrice, 1) {
		return "Any"
	}
	return cli.FormatMYR(maxPrice)
}

func levelOptions(opts catalog.Options) []string {
	out := make([]string, len(opts.Levels))
	for i, l := range opts.Levels {
		out[i] = string(l)
	}
	return out
}
