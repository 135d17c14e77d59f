package analytics

import (
	"database/sql"
	"log"
	"time"

	"github.com/caawiye/applink/internal/geo"
	"github.com/caawiye/applink/internal/models"
)

// RawClick is the unenriched visit event pushed from the redirect path.
type RawClick struct {
	LinkID    string
	Platform  string
	Source    string
	IP        string
	UserAgent string
	ClickedAt time.Time
}

// Recorder persists click events without ever blocking a redirect. Events
// are buffered and enriched with geolocation in a background goroutine;
// persistence failures are logged and absorbed. At-most-once semantics:
// a full buffer or a failed insert loses the event.
type Recorder struct {
	ch   chan RawClick
	stop chan struct{}
	db   *sql.DB
	geo  *geo.Resolver
	done chan struct{}
}

func NewRecorder(db *sql.DB, resolver *geo.Resolver, bufferSize int, flushInterval time.Duration) *Recorder {
	r := &Recorder{
		ch:   make(chan RawClick, bufferSize),
		stop: make(chan struct{}),
		db:   db,
		geo:  resolver,
		done: make(chan struct{}),
	}
	go r.run(flushInterval)
	return r
}

// Push sends a click event non-blocking. Drops the event if buffer is full.
func (r *Recorder) Push(click RawClick) {
	select {
	case r.ch <- click:
	default:
		// buffer full, drop event
	}
}

// Shutdown flushes remaining events and returns.
func (r *Recorder) Shutdown() {
	close(r.stop)
	<-r.done
}

func (r *Recorder) run(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.flush()
		case <-r.stop:
			r.flush()
			return
		}
	}
}

func (r *Recorder) flush() {
	var batch []RawClick
	for {
		select {
		case raw := <-r.ch:
			batch = append(batch, raw)
		default:
			goto done
		}
	}
done:
	if len(batch) == 0 {
		return
	}

	clicks := make([]models.Click, 0, len(batch))
	for _, raw := range batch {
		clicks = append(clicks, r.enrich(raw))
	}

	if err := models.BatchInsertClicks(r.db, clicks); err != nil {
		log.Printf("click recorder flush error: %v", err)
	} else {
		log.Printf("click recorder: flushed %d clicks", len(clicks))
	}
}

func (r *Recorder) enrich(raw RawClick) models.Click {
	loc := r.geo.Lookup(raw.IP)

	source := raw.Source
	if source == "" {
		source = "direct"
	}

	return models.Click{
		LinkID:    raw.LinkID,
		Platform:  raw.Platform,
		Source:    source,
		Country:   loc.Country,
		City:      loc.City,
		UserAgent: raw.UserAgent,
		CreatedAt: raw.ClickedAt,
	}
}
