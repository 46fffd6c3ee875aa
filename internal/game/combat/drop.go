package combat

import (
	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/random"
)

// RatioScale is the denominator of drop and success ratios (basis points).
const RatioScale = 10000

// DropResult is one material stack won from a drop table.
type DropResult struct {
	MaterialID int32
	Count      int
}

// CalculateDrops rolls drop groups in table order.
//
// Algorithm:
//  1. For each group, roll the group ratio; skip the group on failure.
//  2. For each item of a passed group, roll the item ratio.
//  3. Count = random in [min, max].
//
// Ratios of RatioScale and above pass without consuming a roll; ratios of 0
// and below never pass and consume nothing either.
func CalculateDrops(src random.Source, groups []data.DropGroup) []DropResult {
	var results []DropResult

	for _, group := range groups {
		if !rollRatio(src, group.RatioBps) {
			continue
		}

		for _, item := range group.Items {
			if !rollRatio(src, item.RatioBps) {
				continue
			}

			count := item.Min
			if item.Max > item.Min {
				count = src.NextRange(item.Min, item.Max+1)
			}
			if count <= 0 {
				continue
			}

			results = append(results, DropResult{
				MaterialID: item.MaterialID,
				Count:      count,
			})
		}
	}

	return results
}

func rollRatio(src random.Source, ratioBps int) bool {
	if ratioBps <= 0 {
		return false
	}
	if ratioBps >= RatioScale {
		return true
	}
	return src.NextN(RatioScale) < ratioBps
}
