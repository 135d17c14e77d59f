// Seeds a local store with demo links and a week of click history so the
// dashboard has something to show. Usage: go run ./cmd/seed [db-path]
package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/caawiye/applink/internal/db"
	"github.com/caawiye/applink/internal/models"
)

type seedLink struct {
	title       string
	description string
	iosURL      string
	androidURL  string
	webURL      string
	rating      float64
	reviews     int
	// weight controls relative click volume (higher = more clicks)
	weight float64
}

var links = []seedLink{
	{"Caawiye", "Learn languages with bite-sized lessons", "https://apps.apple.com/app/id000000001", "https://play.google.com/store/apps/details?id=com.caawiye.app", "https://caawiye.com", 4.8, 1240, 5.0},
	{"Caawiye Kids", "Safe learning games for children", "https://apps.apple.com/app/id000000002", "https://play.google.com/store/apps/details?id=com.caawiye.kids", "", 4.6, 310, 2.5},
	{"Caawiye Podcast", "Weekly conversations, web only", "", "", "https://caawiye.com/podcast", 0, 0, 1.5},
}

var sources = []struct {
	tag    string
	weight float64
}{
	{"direct", 30},
	{"tiktok", 20},
	{"facebook", 15},
	{"instagram", 12},
	{"youtube", 8},
	{"whatsapp", 8},
	{"telegram", 7},
}

var countries = []struct {
	country string
	city    string
	weight  float64
}{
	{"Somalia", "Mogadishu", 25},
	{"Kenya", "Nairobi", 15},
	{"Ethiopia", "Addis Ababa", 10},
	{"United States", "Minneapolis", 12},
	{"United Kingdom", "London", 10},
	{"Sweden", "Stockholm", 6},
	{"Netherlands", "Amsterdam", 5},
	{"Unknown", "Unknown", 17},
}

var platforms = []struct {
	platform string
	ua       string
	weight   float64
}{
	{models.PlatformAndroid, "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36", 45},
	{models.PlatformIOS, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", 35},
	{models.PlatformWeb, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", 20},
}

func main() {
	path := "./applink.db"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	database, err := db.Open(path, "")
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	now := time.Now().UTC()
	totalClicks := 0

	for _, s := range links {
		link := &models.Link{
			Title:       s.title,
			Description: s.description,
			IOSURL:      s.iosURL,
			AndroidURL:  s.androidURL,
			WebURL:      s.webURL,
			ShowIOS:     s.iosURL != "",
			ShowAndroid: s.androidURL != "",
			ShowWeb:     s.webURL != "",
			Rating:      s.rating,
			ReviewCount: s.reviews,
		}
		if err := models.CreateLink(database, link); err != nil {
			log.Fatalf("create link %q: %v", s.title, err)
		}

		n := int(s.weight * float64(20+rand.Intn(30)))
		clicks := make([]models.Click, 0, n)
		for i := 0; i < n; i++ {
			p := pickPlatform()
			c := pickCountry()
			clicks = append(clicks, models.Click{
				LinkID:    link.ID,
				Platform:  p.platform,
				Source:    pickSource(),
				Country:   c.country,
				City:      c.city,
				UserAgent: p.ua,
				CreatedAt: now.Add(-time.Duration(rand.Intn(7*24*60)) * time.Minute),
			})
		}
		if err := models.BatchInsertClicks(database, clicks); err != nil {
			log.Fatalf("insert clicks for %q: %v", s.title, err)
		}
		totalClicks += n
		log.Printf("seeded %q with %d clicks", s.title, n)
	}

	log.Printf("done: %d links, %d clicks in %s", len(links), totalClicks, path)
}

func pickSource() string {
	total := 0.0
	for _, s := range sources {
		total += s.weight
	}
	roll := rand.Float64() * total
	for _, s := range sources {
		if roll < s.weight {
			return s.tag
		}
		roll -= s.weight
	}
	return "direct"
}

func pickCountry() struct {
	country string
	city    string
	weight  float64
} {
	total := 0.0
	for _, c := range countries {
		total += c.weight
	}
	roll := rand.Float64() * total
	for _, c := range countries {
		if roll < c.weight {
			return c
		}
		roll -= c.weight
	}
	return countries[0]
}

func pickPlatform() struct {
	platform string
	ua       string
	weight   float64
} {
	total := 0.0
	for _, p := range platforms {
		total += p.weight
	}
	roll := rand.Float64() * total
	for _, p := range platforms {
		if roll < p.weight {
			return p
		}
		roll -= p.weight
	}
	return platforms[0]
}
