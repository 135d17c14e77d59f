package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/caawiye/applink/internal/db"
	"github.com/caawiye/applink/internal/geo"
	"github.com/caawiye/applink/internal/models"
)

func testDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	database, err := db.Open(":memory:", "")
	if err != nil {
		t.Fatal(err)
	}
	// Insert a test link for the FK constraint
	link := &models.Link{Title: "Test App", ShowWeb: true, WebURL: "https://example.com"}
	if err := models.CreateLink(database, link); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	return database, link.ID
}

func clickCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM clicks").Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func testGeo(t *testing.T) *geo.Resolver {
	t.Helper()
	resolver, err := geo.New("", "", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return resolver
}

func TestRecorder_FlushOnShutdown(t *testing.T) {
	database, linkID := testDB(t)
	r := NewRecorder(database, testGeo(t), 1000, time.Hour)

	for i := 0; i < 5; i++ {
		r.Push(RawClick{LinkID: linkID, Platform: models.PlatformWeb, ClickedAt: time.Now()})
	}
	r.Shutdown()

	if n := clickCount(t, database); n != 5 {
		t.Fatalf("count = %d, want 5", n)
	}
}

func TestRecorder_PushNonBlockingWhenFull(t *testing.T) {
	database, linkID := testDB(t)
	r := NewRecorder(database, testGeo(t), 1, time.Hour)

	// Push 5 events — only 1 should fit, rest silently dropped, must not block
	for i := 0; i < 5; i++ {
		r.Push(RawClick{LinkID: linkID, Platform: models.PlatformWeb, ClickedAt: time.Now()})
	}
	r.Shutdown()

	if n := clickCount(t, database); n > 1 {
		t.Fatalf("count = %d, want at most 1", n)
	}
}

func TestRecorder_FlushOnTicker(t *testing.T) {
	database, linkID := testDB(t)
	r := NewRecorder(database, testGeo(t), 1000, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		r.Push(RawClick{LinkID: linkID, Platform: models.PlatformWeb, ClickedAt: time.Now()})
	}

	// Wait for at least one tick to flush
	time.Sleep(200 * time.Millisecond)

	n := clickCount(t, database)
	if n == 0 {
		t.Fatal("expected clicks to be flushed by ticker, got 0")
	}
	r.Shutdown()
}

func TestRecorder_GeoFailureRecordsUnknown(t *testing.T) {
	database, linkID := testDB(t)
	r := NewRecorder(database, testGeo(t), 1000, time.Hour)

	r.Push(RawClick{
		LinkID:    linkID,
		Platform:  models.PlatformIOS,
		IP:        "203.0.113.9",
		ClickedAt: time.Now(),
	})
	r.Shutdown()

	var country, city string
	err := database.QueryRow("SELECT country, city FROM clicks LIMIT 1").Scan(&country, &city)
	if err != nil {
		t.Fatal(err)
	}
	if country != geo.Unknown {
		t.Errorf("country = %q, want %q", country, geo.Unknown)
	}
	if city != geo.Unknown {
		t.Errorf("city = %q, want %q", city, geo.Unknown)
	}
}

func TestRecorder_EmptySourceBecomesDirect(t *testing.T) {
	database, linkID := testDB(t)
	r := NewRecorder(database, testGeo(t), 1000, time.Hour)

	r.Push(RawClick{LinkID: linkID, Platform: models.PlatformWeb, Source: "", ClickedAt: time.Now()})
	r.Push(RawClick{LinkID: linkID, Platform: models.PlatformWeb, Source: "tiktok", ClickedAt: time.Now()})
	r.Shutdown()

	var direct, tiktok int
	if err := database.QueryRow("SELECT COUNT(*) FROM clicks WHERE source = 'direct'").Scan(&direct); err != nil {
		t.Fatal(err)
	}
	if err := database.QueryRow("SELECT COUNT(*) FROM clicks WHERE source = 'tiktok'").Scan(&tiktok); err != nil {
		t.Fatal(err)
	}
	if direct != 1 {
		t.Errorf("direct count = %d, want 1", direct)
	}
	if tiktok != 1 {
		t.Errorf("tiktok count = %d, want 1", tiktok)
	}
}
