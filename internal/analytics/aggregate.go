package analytics

import (
	"sort"
	"time"
	"unicode"

	"github.com/caawiye/applink/internal/models"
)

// Stat is one named bucket in a distribution.
type Stat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is one entry in the trailing-week time series.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// The aggregate functions below are pure and total: they are recomputed
// in full from a links+clicks snapshot on every dashboard load, and an
// empty snapshot yields zero values, never an error.

// TotalClicks sums click history across all links.
func TotalClicks(links []models.LinkStats) int {
	total := 0
	for _, l := range links {
		total += len(l.Clicks)
	}
	return total
}

// PlatformStats tallies clicks into the three platform buckets, in iOS,
// Android, Web order. Buckets with zero clicks are omitted.
func PlatformStats(links []models.LinkStats) []Stat {
	tally := map[string]int{}
	for _, l := range links {
		for _, c := range l.Clicks {
			tally[c.Platform]++
		}
	}

	buckets := []Stat{
		{Name: "iOS", Count: tally[models.PlatformIOS]},
		{Name: "Android", Count: tally[models.PlatformAndroid]},
		{Name: "Web", Count: tally[models.PlatformWeb]},
	}

	var out []Stat
	for _, b := range buckets {
		if b.Count > 0 {
			out = append(out, b)
		}
	}
	return out
}

// SourceStats tallies clicks by campaign tag. Tags are counted verbatim
// (no case folding); the display name uppercases the first character.
// Sorted by count descending, ties keeping encounter order.
func SourceStats(links []models.LinkStats) []Stat {
	stats, index := []Stat{}, map[string]int{}
	for _, l := range links {
		for _, c := range l.Clicks {
			source := c.Source
			if source == "" {
				source = "direct"
			}
			i, ok := index[source]
			if !ok {
				i = len(stats)
				index[source] = i
				stats = append(stats, Stat{Name: displayName(source)})
			}
			stats[i].Count++
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// CountryStats tallies clicks by country, descending, truncated to the
// top 5. Missing countries count under "Unknown".
func CountryStats(links []models.LinkStats) []Stat {
	stats, index := []Stat{}, map[string]int{}
	for _, l := range links {
		for _, c := range l.Clicks {
			country := c.Country
			if country == "" {
				country = "Unknown"
			}
			i, ok := index[country]
			if !ok {
				i = len(stats)
				index[country] = i
				stats = append(stats, Stat{Name: country})
			}
			stats[i].Count++
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}
	return stats
}

// ClicksOverTime counts clicks per calendar day for the 7 days ending at
// now (inclusive), labeled with short weekday names. Always returns
// exactly 7 entries in chronological order.
func ClicksOverTime(links []models.LinkStats, now time.Time) []DayCount {
	loc := now.Location()

	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		y, m, d := day.Date()

		count := 0
		for _, l := range links {
			for _, c := range l.Clicks {
				cy, cm, cd := c.CreatedAt.In(loc).Date()
				if cy == y && cm == m && cd == d {
					count++
				}
			}
		}

		out = append(out, DayCount{Day: day.Format("Mon"), Count: count})
	}
	return out
}

func displayName(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
