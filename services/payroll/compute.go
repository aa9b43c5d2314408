package payroll

import (
	"fmt"
	"math"
	"sort"
	"time"

	"auracare/models"
)

const periodLayout = "2006-01"

// Compute derives a payslip breakdown from its inputs. Net pay never goes below zero.
func Compute(in models.PayrollInput) models.PayrollBreakdown {
	gross := in.BasicSalary + in.Allowances
	pf := in.BasicSalary * in.PFRatePercent / 100
	leave := in.BasicSalary / models.PayrollWorkingDays * float64(in.LeaveDays)
	deductions := pf + in.ProfessionalTax + leave + in.ProductDeductions

	return models.PayrollBreakdown{
		GrossPay:        models.RoundMoney(gross),
		PFDeduction:     models.RoundMoney(pf),
		LeaveDeduction:  models.RoundMoney(leave),
		TotalDeductions: models.RoundMoney(deductions),
		NetPay:          models.RoundMoney(math.Max(0, gross-deductions)),
	}
}

// ParsePeriod returns the first and last instant of a YYYY-MM period in UTC.
func ParsePeriod(period string) (time.Time, time.Time, error) {
	start, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("period must be YYYY-MM: %w", err)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// PreviousPeriod is the month before the one containing t.
func PreviousPeriod(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format(periodLayout)
}

// LeaveDays counts the calendar days of [start, end], both inclusive, that
// fall inside [from, to].
func LeaveDays(start, end, from, to time.Time) int {
	s, e := day(start), day(end)
	if f := day(from); s.Before(f) {
		s = f
	}
	if t := day(to); e.After(t) {
		e = t
	}
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start, End time.Time
}

// MergedLeaveDays counts the distinct days inside [from, to] covered by any of
// ranges, so overlapping requests are not counted twice.
func MergedLeaveDays(ranges []DateRange, from, to time.Time) int {
	clipped := make([]DateRange, 0, len(ranges))
	for _, r := range ranges {
		s, e := day(r.Start), day(r.End)
		if f := day(from); s.Before(f) {
			s = f
		}
		if t := day(to); e.After(t) {
			e = t
		}
		if !e.Before(s) {
			clipped = append(clipped, DateRange{Start: s, End: e})
		}
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start.Before(clipped[j].Start) })

	total := 0
	for i := 0; i < len(clipped); {
		cur := clipped[i]
		j := i + 1
		for ; j < len(clipped) && !clipped[j].Start.After(cur.End.AddDate(0, 0, 1)); j++ {
			if clipped[j].End.After(cur.End) {
				cur.End = clipped[j].End
			}
		}
		total += LeaveDays(cur.Start, cur.End, from, to)
		i = j
	}
	return total
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
