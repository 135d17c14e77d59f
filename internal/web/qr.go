package web

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/caawiye/applink/internal/models"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func isValidHex(s string) bool {
	return hexColorRe.MatchString(s)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// LinkQRCode renders a PNG QR code for a link's landing URL. An optional
// `s` parameter bakes a campaign source into the encoded URL so each
// marketing channel gets its own attributable code.
func (h *AdminHandler) LinkQRCode(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{ID: chi.URLParam(r, "id")}
	if err := models.GetLinkByID(h.db, link); err != nil {
		http.NotFound(w, r)
		return
	}

	landing := h.cfg.LandingURL(link.ID)
	if source := r.URL.Query().Get("s"); source != "" {
		landing += "?s=" + url.QueryEscape(source)
	}

	// Parse query params with defaults
	shape := r.URL.Query().Get("shape") // square|circle
	fg := r.URL.Query().Get("fg")       // hex color
	dl := r.URL.Query().Get("dl")       // 0|1

	// Build image options — always transparent background
	opts := []standard.ImageOption{
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(10),
		standard.WithBorderWidth(20),
		standard.WithBgTransparent(),
	}

	if shape == "circle" {
		opts = append(opts, standard.WithCircleShape())
	}

	if isValidHex(fg) {
		opts = append(opts, standard.WithFgColorRGBHex(fg))
	}

	qrc, err := qrcode.New(landing)
	if err != nil {
		http.Error(w, "failed to generate qr code", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	writer := standard.NewWithWriter(nopCloser{&buf}, opts...)
	if err := qrc.Save(writer); err != nil {
		http.Error(w, "failed to render qr code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if dl == "1" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+link.ID+"-qr.png\"")
	}
	w.Write(buf.Bytes())
}
