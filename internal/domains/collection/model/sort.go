package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortMode - thứ tự hiển thị collection
type SortMode string

const (
	SortCustom SortMode = "custom"
	SortAsc    SortMode = "asc"
	SortDesc   SortMode = "desc"
)

// ParseSortMode - unknown value fall back về custom
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortAsc, SortDesc:
		return SortMode(s)
	default:
		return SortCustom
	}
}

// SortItems sorts in place. Starred items luôn đứng trước, bất kể
// mode. Trong mỗi nhóm:
//   - custom: theo sortOrder user đã kéo thả
//   - asc/desc: theo series name, tie-break bằng series year rồi
//     issue number (numeric so sánh trước, non-numeric xếp sau)
func SortItems(items []Item, mode SortMode) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if a.Starred != b.Starred {
			return a.Starred
		}

		if mode == SortCustom {
			return a.SortOrder < b.SortOrder
		}

		if c := compareFold(a.SeriesName, b.SeriesName); c != 0 {
			if mode == SortDesc {
				return c > 0
			}
			return c < 0
		}

		// Cùng series: year rồi issue, luôn ascending
		if a.SeriesYear != b.SeriesYear {
			return a.SeriesYear < b.SeriesYear
		}
		return compareIssueNumbers(a.IssueNumber, b.IssueNumber) < 0
	})
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareIssueNumbers so sánh issue numbers theo giá trị số khi cả
// hai parse được ("2" < "10", "2.5" nằm giữa). Numeric đứng trước
// non-numeric, non-numeric so sánh lexical.
func compareIssueNumbers(a, b string) int {
	da, errA := decimal.NewFromString(strings.TrimSpace(a))
	db, errB := decimal.NewFromString(strings.TrimSpace(b))

	switch {
	case errA == nil && errB == nil:
		return da.Cmp(db)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
