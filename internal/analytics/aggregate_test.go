package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/caawiye/applink/internal/models"
)

func snapshot(clicks ...models.Click) []models.LinkStats {
	return []models.LinkStats{{Clicks: clicks}}
}

func click(platform, source, country string) models.Click {
	return models.Click{Platform: platform, Source: source, Country: country, CreatedAt: time.Now()}
}

func TestTotalClicks(t *testing.T) {
	links := []models.LinkStats{
		{Clicks: []models.Click{{}, {}, {}}},
		{Clicks: nil},
		{Clicks: []models.Click{{}}},
	}
	if got := TotalClicks(links); got != 4 {
		t.Errorf("TotalClicks = %d, want 4", got)
	}
	if got := TotalClicks(nil); got != 0 {
		t.Errorf("TotalClicks(nil) = %d, want 0", got)
	}
}

func TestPlatformStats_OrderAndCounts(t *testing.T) {
	var clicks []models.Click
	for i := 0; i < 4; i++ {
		clicks = append(clicks, click(models.PlatformIOS, "", ""))
	}
	for i := 0; i < 3; i++ {
		clicks = append(clicks, click(models.PlatformAndroid, "", ""))
	}
	for i := 0; i < 3; i++ {
		clicks = append(clicks, click(models.PlatformWeb, "", ""))
	}

	got := PlatformStats(snapshot(clicks...))
	want := []Stat{{"iOS", 4}, {"Android", 3}, {"Web", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlatformStats_OmitsZeroBuckets(t *testing.T) {
	got := PlatformStats(snapshot(
		click(models.PlatformWeb, "", ""),
		click(models.PlatformWeb, "", ""),
	))
	want := []Stat{{"Web", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlatformStats_Empty(t *testing.T) {
	if got := PlatformStats(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSourceStats_NoCaseFoldingAtTally(t *testing.T) {
	got := SourceStats(snapshot(
		click(models.PlatformWeb, "tiktok", ""),
		click(models.PlatformWeb, "TikTok", ""),
		click(models.PlatformWeb, "", ""),
	))
	// "tiktok" and "TikTok" stay distinct buckets; empty source counts as
	// direct. Display names uppercase the first character only.
	want := []Stat{{"Tiktok", 1}, {"TikTok", 1}, {"Direct", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSourceStats_SortedDescStableTies(t *testing.T) {
	got := SourceStats(snapshot(
		click(models.PlatformWeb, "facebook", ""),
		click(models.PlatformWeb, "tiktok", ""),
		click(models.PlatformWeb, "tiktok", ""),
		click(models.PlatformWeb, "youtube", ""),
	))
	want := []Stat{{"Tiktok", 2}, {"Facebook", 1}, {"Youtube", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCountryStats_TopFive(t *testing.T) {
	var clicks []models.Click
	countries := []string{"Kenya", "Kenya", "Kenya", "Somalia", "Somalia", "Sweden", "Norway", "France", "Spain", ""}
	for _, c := range countries {
		clicks = append(clicks, click(models.PlatformWeb, "", c))
	}

	got := CountryStats(snapshot(clicks...))
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0] != (Stat{"Kenya", 3}) {
		t.Errorf("first = %v, want Kenya:3", got[0])
	}
	if got[1] != (Stat{"Somalia", 2}) {
		t.Errorf("second = %v, want Somalia:2", got[1])
	}
	// Missing country tallies as Unknown... truncated here by top-5, but
	// present when the tally is smaller.
	small := CountryStats(snapshot(click(models.PlatformWeb, "", "")))
	if len(small) != 1 || small[0] != (Stat{"Unknown", 1}) {
		t.Errorf("small = %v, want [Unknown:1]", small)
	}
}

func TestClicksOverTime_AlwaysSevenEntries(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	got := ClicksOverTime(nil, now)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	for i, d := range got {
		if d.Count != 0 {
			t.Errorf("day %d count = %d, want 0", i, d.Count)
		}
	}
	// Chronological: last entry is today
	if got[6].Day != "Sun" {
		t.Errorf("last day = %q, want Sun", got[6].Day)
	}
	if got[0].Day != "Mon" {
		t.Errorf("first day = %q, want Mon", got[0].Day)
	}
}

func TestClicksOverTime_CountsByCalendarDay(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	links := snapshot(
		models.Click{Platform: models.PlatformWeb, CreatedAt: now.Add(-2 * time.Hour)},               // today
		models.Click{Platform: models.PlatformWeb, CreatedAt: now.AddDate(0, 0, -1)},                 // yesterday
		models.Click{Platform: models.PlatformWeb, CreatedAt: now.AddDate(0, 0, -1).Add(-time.Hour)}, // yesterday
		models.Click{Platform: models.PlatformWeb, CreatedAt: now.AddDate(0, 0, -8)},                 // outside window
	)

	got := ClicksOverTime(links, now)
	if got[6].Count != 1 {
		t.Errorf("today = %d, want 1", got[6].Count)
	}
	if got[5].Count != 2 {
		t.Errorf("yesterday = %d, want 2", got[5].Count)
	}
	total := 0
	for _, d := range got {
		total += d.Count
	}
	if total != 3 {
		t.Errorf("window total = %d, want 3", total)
	}
}

func TestAggregates_Idempotent(t *testing.T) {
	now := time.Now()
	links := snapshot(
		click(models.PlatformIOS, "tiktok", "Kenya"),
		click(models.PlatformWeb, "", "Somalia"),
		click(models.PlatformAndroid, "facebook", ""),
	)

	if a, b := PlatformStats(links), PlatformStats(links); !reflect.DeepEqual(a, b) {
		t.Errorf("PlatformStats not idempotent: %v vs %v", a, b)
	}
	if a, b := SourceStats(links), SourceStats(links); !reflect.DeepEqual(a, b) {
		t.Errorf("SourceStats not idempotent: %v vs %v", a, b)
	}
	if a, b := CountryStats(links), CountryStats(links); !reflect.DeepEqual(a, b) {
		t.Errorf("CountryStats not idempotent: %v vs %v", a, b)
	}
	if a, b := ClicksOverTime(links, now), ClicksOverTime(links, now); !reflect.DeepEqual(a, b) {
		t.Errorf("ClicksOverTime not idempotent: %v vs %v", a, b)
	}
}
