package handlers

import (
	"database/sql"
	"embed"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caawiye/applink/internal/analytics"
	"github.com/caawiye/applink/internal/attribution"
	"github.com/caawiye/applink/internal/cache"
	"github.com/caawiye/applink/internal/models"
)

//go:embed templates/*.html
var landingFS embed.FS

var landingTemplates = template.Must(template.ParseFS(landingFS, "templates/*.html"))

type RedirectHandler struct {
	DB       *sql.DB
	Cache    *cache.LinkCache
	Recorder *analytics.Recorder
}

func (h *RedirectHandler) RegisterRoutes(r chi.Router) {
	r.Route("/l", func(r chi.Router) {
		r.Get("/{id}", h.Landing)
		r.Get("/{id}/{platform}", h.Choose)
	})
}

type landingData struct {
	Link         *models.Link
	Destinations []models.Destination
	Source       string
}

// Landing serves the platform-choice page for a link. When exactly one
// destination is viable the visitor is redirected straight to it. A link
// offering zero destinations renders a page with no buttons; that is a
// valid configuration, not an error.
func (h *RedirectHandler) Landing(w http.ResponseWriter, r *http.Request) {
	link, ok := h.loadLink(w, r)
	if !ok {
		return
	}

	dests := link.Destinations()
	if len(dests) == 1 {
		h.redirect(w, r, link, dests[0].Platform, dests[0].URL)
		return
	}

	// Offer the visitor's own platform first when we can tell.
	detected := analytics.DetectPlatform(r.UserAgent())
	for i, d := range dests {
		if d.Platform == detected && i > 0 {
			dests = append(append([]models.Destination{d}, dests[:i]...), dests[i+1:]...)
			break
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := landingTemplates.ExecuteTemplate(w, "landing.html", landingData{
		Link:         link,
		Destinations: dests,
		Source:       r.URL.Query().Get("s"),
	})
	if err != nil {
		log.Printf("render landing: %v", err)
	}
}

// Choose handles a platform button press. The viability check runs
// synchronously before any side effect; an unavailable platform is a
// no-op with no click recorded.
func (h *RedirectHandler) Choose(w http.ResponseWriter, r *http.Request) {
	link, ok := h.loadLink(w, r)
	if !ok {
		return
	}

	platform := chi.URLParam(r, "platform")
	dest, ok := link.Destination(platform)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.redirect(w, r, link, platform, dest)
}

// redirect records the click (fire-and-forget) and navigates. The 302 is
// written without waiting on geolocation or the insert; both happen later
// in the recorder goroutine.
func (h *RedirectHandler) redirect(w http.ResponseWriter, r *http.Request, link *models.Link, platform, dest string) {
	if !analytics.IsBot(r.UserAgent()) {
		h.Recorder.Push(analytics.RawClick{
			LinkID:    link.ID,
			Platform:  platform,
			Source:    attribution.Source(r.URL.Query()),
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
			ClickedAt: time.Now().UTC(),
		})
	}

	http.Redirect(w, r, dest, http.StatusFound)
}

func (h *RedirectHandler) loadLink(w http.ResponseWriter, r *http.Request) (*models.Link, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.notFound(w)
		return nil, false
	}

	link, found := h.Cache.Get(id)
	if !found {
		link = &models.Link{ID: id}
		if err := models.GetLinkByID(h.DB, link); err != nil {
			if err == sql.ErrNoRows {
				h.notFound(w)
				return nil, false
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return nil, false
		}
		h.Cache.Set(id, link)
	}

	return link, true
}

func (h *RedirectHandler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := landingTemplates.ExecuteTemplate(w, "notfound.html", nil); err != nil {
		log.Printf("render notfound: %v", err)
	}
}

// chi's RealIP middleware already sets RemoteAddr from X-Forwarded-For/X-Real-IP
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
