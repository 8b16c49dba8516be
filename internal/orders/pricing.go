package orders

import "time"

// endDateGraceMinutes is how far past the hour a computed end still rounds
// down instead of up to the next full hour.
const endDateGraceMinutes = 5

// ComputeEndDate derives the scheduled return time from the start and the
// rental length. The raw end is snapped to a whole hour: up to five minutes
// past the hour rounds down, anything later rounds up.
func ComputeEndDate(start time.Time, rentalDays, rentalHours int) time.Time {
	raw := start.AddDate(0, 0, rentalDays).Add(time.Duration(rentalHours) * time.Hour)

	snapped := raw.Truncate(time.Hour)
	if raw.Sub(snapped) >= endDateGraceMinutes*time.Minute {
		snapped = snapped.Add(time.Hour)
	}
	return snapped
}

// ComputeTotal prices a rental: full days at the daily tariff, extra hours
// at the hourly tariff, plus pass-through expenses. The deposit is held
// separately and never enters the total.
func ComputeTotal(rentalDays, rentalHours int, tariffPrice, hourlyPrice, extraExpenses float64) float64 {
	return float64(rentalDays)*tariffPrice + float64(rentalHours)*hourlyPrice + extraExpenses
}
