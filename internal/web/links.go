package web

import (
	"database/sql"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caawiye/applink/internal/models"
)

const maxUploadBytes = 10 << 20 // 10MB per form

type LinksData struct {
	PageData
	Links       []models.Link
	ClickCounts map[string]int
}

type LinkFormData struct {
	PageData
	Link  *models.Link
	Error string
}

func (h *AdminHandler) LinkList(w http.ResponseWriter, r *http.Request) {
	links, err := models.ListLinks(h.db)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	counts, _ := models.ClickCountsForLinks(h.db, ids)

	h.templates.Render(w, "templates/links.html", LinksData{
		PageData:    h.pageData(w, r),
		Links:       links,
		ClickCounts: counts,
	})
}

func (h *AdminHandler) LinkNewPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, "templates/link_new.html", LinkFormData{
		PageData: h.pageData(w, r),
		Link:     &models.Link{ShowIOS: true, ShowAndroid: true, ShowWeb: true},
	})
}

func (h *AdminHandler) LinkCreate(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{}
	if msg := h.fillFromForm(r, link); msg != "" {
		h.templates.Render(w, "templates/link_new.html", LinkFormData{Link: link, Error: msg})
		return
	}

	if err := models.CreateLink(h.db, link); err != nil {
		h.templates.Render(w, "templates/link_new.html", LinkFormData{Link: link, Error: "Failed to create link"})
		return
	}

	setFlash(w, "success", "Link created")
	http.Redirect(w, r, "/admin/links", http.StatusFound)
}

func (h *AdminHandler) LinkEditPage(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{ID: chi.URLParam(r, "id")}
	if err := models.GetLinkByID(h.db, link); err != nil {
		http.NotFound(w, r)
		return
	}

	h.templates.Render(w, "templates/link_edit.html", LinkFormData{
		PageData: h.pageData(w, r),
		Link:     link,
	})
}

func (h *AdminHandler) LinkUpdate(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{ID: chi.URLParam(r, "id")}
	if err := models.GetLinkByID(h.db, link); err != nil {
		http.NotFound(w, r)
		return
	}

	if msg := h.fillFromForm(r, link); msg != "" {
		h.templates.Render(w, "templates/link_edit.html", LinkFormData{Link: link, Error: msg})
		return
	}

	h.cache.Invalidate(link.ID)

	if err := models.UpdateLink(h.db, link); err != nil {
		h.templates.Render(w, "templates/link_edit.html", LinkFormData{Link: link, Error: "Failed to update link"})
		return
	}

	setFlash(w, "success", "Link updated")
	http.Redirect(w, r, "/admin/links", http.StatusFound)
}

func (h *AdminHandler) LinkDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.cache.Invalidate(id)

	if err := models.DeleteLink(h.db, id); err != nil {
		if err == sql.ErrNoRows {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "Link deleted")
	http.Redirect(w, r, "/admin/links", http.StatusFound)
}

// fillFromForm applies the submitted form to link, uploading any logo or
// screenshot files to blob storage. Returns a user-visible message when
// validation fails.
func (h *AdminHandler) fillFromForm(r *http.Request, link *models.Link) string {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		return "Upload too large"
	}

	link.Title = r.FormValue("title")
	if link.Title == "" {
		return "Title is required"
	}
	link.Description = r.FormValue("description")
	link.IOSURL = r.FormValue("ios_url")
	link.AndroidURL = r.FormValue("android_url")
	link.WebURL = r.FormValue("web_url")
	link.ShowIOS = r.FormValue("show_ios") != ""
	link.ShowAndroid = r.FormValue("show_android") != ""
	link.ShowWeb = r.FormValue("show_web") != ""

	if v := r.FormValue("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			return "Rating must be between 0 and 5"
		}
		link.Rating = rating
	}
	if v := r.FormValue("review_count"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			return "Review count must be a non-negative number"
		}
		link.ReviewCount = count
	}

	if url, err := h.uploadFile(r, "logo"); err != nil {
		return "Failed to upload logo"
	} else if url != "" {
		link.LogoURL = url
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["screenshots"] {
			url, err := h.uploadHeader(fh)
			if err != nil {
				return "Failed to upload screenshot"
			}
			link.Screenshots = append(link.Screenshots, url)
		}
	}

	return ""
}

func (h *AdminHandler) uploadFile(r *http.Request, field string) (string, error) {
	_, fh, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return h.uploadHeader(fh)
}

func (h *AdminHandler) uploadHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(fh.Filename))
	if err := h.store.Upload(name, f); err != nil {
		return "", err
	}
	return h.store.PublicURL(name), nil
}
