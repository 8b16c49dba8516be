package maintenance

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// LatestServices reduces a flat event history to the winning event per
// (vehicle, service type) pair. Later calendar dates win; among events
// sharing a calendar date the higher log sequence wins, regardless of
// time of day.
func LatestServices(events []ServiceEvent) map[PairKey]LatestService {
	latest := make(map[PairKey]LatestService, len(events))
	for _, e := range events {
		key := PairKey{VehicleID: e.VehicleID, ServiceTypeID: e.ServiceTypeID}
		cur, ok := latest[key]
		eDay, curDay := dateOnly(e.Date), dateOnly(cur.Date)
		if !ok || eDay.After(curDay) || (eDay.Equal(curDay) && e.LogSeq > cur.LogSeq) {
			latest[key] = LatestService{Date: e.Date, Mileage: e.Mileage, LogSeq: e.LogSeq}
		}
	}
	return latest
}

// Project derives the full due board from current fleet state: one row per
// (vehicle, plan entry on the vehicle's model), including plan entries with
// no tracked dimension. It is a pure function of its inputs and never fails
// on well-formed data; all validation happens at the write boundaries.
//
// A vehicle with no service history falls back to its creation date and a
// zero odometer reading as the effective last service.
func Project(
	vehicles []VehicleSnapshot,
	plansByModel map[uuid.UUID][]PlanEntry,
	serviceTypes map[uuid.UUID]ServiceTypeRef,
	latest map[PairKey]LatestService,
	today time.Time,
) []DueRow {
	today = dateOnly(today)

	rows := make([]DueRow, 0, len(vehicles))
	for _, v := range vehicles {
		for _, plan := range plansByModel[v.ModelID] {
			rows = append(rows, projectPair(v, plan, serviceTypes[plan.ServiceTypeID], latest, today))
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Plate != rows[j].Plate {
			return rows[i].Plate < rows[j].Plate
		}
		return rows[i].ServiceTypeName < rows[j].ServiceTypeName
	})
	return rows
}

func projectPair(v VehicleSnapshot, plan PlanEntry, st ServiceTypeRef, latest map[PairKey]LatestService, today time.Time) DueRow {
	lastDate := dateOnly(v.CreatedAt)
	lastMileage := 0
	if ls, ok := latest[PairKey{VehicleID: v.VehicleID, ServiceTypeID: plan.ServiceTypeID}]; ok {
		lastDate = dateOnly(ls.Date)
		lastMileage = ls.Mileage
	}

	row := DueRow{
		VehicleID:          v.VehicleID,
		Plate:              v.Plate,
		ModelID:            v.ModelID,
		OfficeID:           v.OfficeID,
		ServiceTypeID:      plan.ServiceTypeID,
		ServiceTypeName:    st.Name,
		LastServiceDate:    lastDate,
		LastServiceMileage: lastMileage,
		CurrentMileage:     v.Mileage,
	}

	timeDue := false
	timeOverdue := false
	if plan.IntervalDays > 0 {
		nextDate := lastDate.AddDate(0, 0, plan.IntervalDays)
		daysToDue := daysBetween(today, nextDate)
		row.NextServiceDate = &nextDate
		row.DaysToDue = &daysToDue
		timeDue = daysToDue <= plan.RemindBeforeDays
		timeOverdue = daysToDue < 0
	}

	kmDue := false
	kmOverdue := false
	if plan.IntervalKm > 0 {
		nextMileage := lastMileage + plan.IntervalKm
		kmToDue := nextMileage - v.Mileage
		row.NextServiceMileage = &nextMileage
		row.KmToDue = &kmToDue
		kmDue = kmToDue <= plan.RemindBeforeKm
		kmOverdue = kmToDue < 0
	}

	row.IsDue = kmDue || timeDue
	row.Overdue = kmOverdue || timeOverdue

	// Overdue outranks due-soon, so it is checked first.
	switch {
	case row.Overdue:
		row.UrgencyColor = UrgencyOverdue
	case row.IsDue:
		row.UrgencyColor = UrgencyDueSoon
	default:
		row.UrgencyColor = UrgencyOK
	}
	return row
}

// dateOnly truncates a timestamp to its UTC calendar date
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed whole-day distance from a to b,
// both already truncated to a date
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
