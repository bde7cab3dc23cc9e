package tui

import (
	"sort"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"

	"github.com/jask/newsdesk/internal/api"
)

const intakeChartHeight = 9

// renderIntakeChart plots records created per day. The desk view feeds it
// the latest-month fetch, so it shows roughly the current month's intake.
func renderIntakeChart(records []api.ContentRecord, width int) string {
	if width < 20 {
		width = 20
	}
	counts := make(map[time.Time]float64)
	for _, r := range records {
		day, ok := dayOf(r.CreatedDate)
		if !ok {
			continue
		}
		counts[day]++
	}
	if len(counts) == 0 {
		return subtleStyle.Render("No intake data yet.")
	}

	days := make([]time.Time, 0, len(counts))
	maxVal := 0.0
	for d, v := range counts {
		days = append(days, d)
		if v > maxVal {
			maxVal = v
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	chart := tslc.New(width, intakeChartHeight)
	chart.SetStyle(chartStyle)
	chart.AxisStyle = chartAxisStyle
	chart.LabelStyle = subtleStyle
	chart.SetTimeRange(days[0], days[len(days)-1])
	chart.SetViewTimeRange(days[0], days[len(days)-1])
	chart.SetYRange(0, maxVal)
	chart.SetViewYRange(0, maxVal)

	for _, d := range days {
		chart.Push(tslc.TimePoint{Time: d, Value: counts[d]})
	}
	chart.DrawBraille()
	return chart.View()
}

// dayOf truncates an ISO-ish timestamp string to its date.
func dayOf(raw string) (time.Time, bool) {
	if len(raw) < 10 {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", raw[:10], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
