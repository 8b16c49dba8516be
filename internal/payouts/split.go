package payouts

import "sort"

// ComputeSplit turns per-manager revenues into payout lines. Each manager
// receives a percentage of their own revenue plus the office's fixed USD
// salary converted at the snapshotted rate. Managers with zero revenue in
// the period still receive the fixed part.
func ComputeSplit(revenues []ManagerRevenue, salaryPercent, salaryFixedUSD, currencyRate float64) []PayoutLine {
	lines := make([]PayoutLine, 0, len(revenues))
	fixedPart := salaryFixedUSD * currencyRate

	for _, mr := range revenues {
		percentPart := mr.Revenue * salaryPercent / 100
		lines = append(lines, PayoutLine{
			ManagerID:   mr.ManagerID,
			Revenue:     mr.Revenue,
			PercentPart: percentPart,
			FixedPart:   fixedPart,
			Total:       percentPart + fixedPart,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ManagerID.String() < lines[j].ManagerID.String()
	})
	return lines
}
