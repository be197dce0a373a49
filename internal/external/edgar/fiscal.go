package edgar

import "time"

// deriveFiscalPeriod maps a filing's period end to a fiscal year and
// quarter. Calendar-quarter approximation: the fiscal year is the
// period-end year and the quarter is the calendar quarter of the
// period-end month. A 10-K carries no quarter.
//
// Companies with shifted fiscal calendars get calendar-aligned labels
// here; the downstream estimator anchors its arithmetic to the stored
// period end, not to these labels, so projections stay correct.
func deriveFiscalPeriod(form string, reportDate time.Time) (year int, quarter *int) {
	year = reportDate.Year()

	if form == "10-K" {
		return year, nil
	}

	q := (int(reportDate.Month())-1)/3 + 1
	return year, &q
}
