package web

import (
	"net/http"
	"time"

	"github.com/caawiye/applink/internal/analytics"
	"github.com/caawiye/applink/internal/models"
)

type DashboardData struct {
	PageData
	TotalLinks    int
	TotalClicks   int
	Platforms     []analytics.Stat
	Sources       []analytics.Stat
	Countries     []analytics.Stat
	WeekSeries    []analytics.DayCount
	WeekSeriesMax int
}

// Dashboard fetches the full links+clicks snapshot and recomputes every
// derived view from it. Aggregation is pure; nothing is cached between
// loads.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := models.LinksWithClicks(h.db)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	series := analytics.ClicksOverTime(snapshot, time.Now())
	maxDay := 0
	for _, d := range series {
		if d.Count > maxDay {
			maxDay = d.Count
		}
	}

	data := DashboardData{
		PageData:      h.pageData(w, r),
		TotalLinks:    len(snapshot),
		TotalClicks:   analytics.TotalClicks(snapshot),
		Platforms:     analytics.PlatformStats(snapshot),
		Sources:       analytics.SourceStats(snapshot),
		Countries:     analytics.CountryStats(snapshot),
		WeekSeries:    series,
		WeekSeriesMax: maxDay,
	}

	h.templates.Render(w, "templates/dashboard.html", data)
}
