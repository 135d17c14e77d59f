package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caawiye/applink/internal/cache"
	"github.com/caawiye/applink/internal/models"
)

type LinkHandler struct {
	DB    *sql.DB
	Cache *cache.LinkCache
}

// linkRequest uses pointers so PATCH can distinguish "absent" from
// "set to zero value".
type linkRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	IOSURL      *string   `json:"ios_url"`
	AndroidURL  *string   `json:"android_url"`
	WebURL      *string   `json:"web_url"`
	ShowIOS     *bool     `json:"show_ios"`
	ShowAndroid *bool     `json:"show_android"`
	ShowWeb     *bool     `json:"show_web"`
	LogoURL     *string   `json:"logo_url"`
	Screenshots *[]string `json:"screenshots"`
	Rating      *float64  `json:"rating"`
	ReviewCount *int      `json:"review_count"`
}

type linkResponse struct {
	models.Link
	ClickCount int `json:"click_count"`
}

type listResponse struct {
	Links []linkResponse `json:"links"`
	Total int            `json:"total"`
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Title == nil || *req.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	// Visibility flags default to true, matching the generator form.
	link := &models.Link{
		Title:       *req.Title,
		ShowIOS:     true,
		ShowAndroid: true,
		ShowWeb:     true,
	}
	applyRequest(link, &req)

	if msg := validateLink(link); msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	if err := models.CreateLink(h.DB, link); err != nil {
		jsonError(w, "failed to create link", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(link)
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := models.ListLinks(h.DB)
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	counts, _ := models.ClickCountsForLinks(h.DB, ids)

	out := make([]linkResponse, len(links))
	for i, l := range links {
		out[i] = linkResponse{Link: l, ClickCount: counts[l.ID]}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Links: out, Total: len(out)})
}

func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{ID: chi.URLParam(r, "id")}
	if err := models.GetLinkByID(h.DB, link); err != nil {
		if err == sql.ErrNoRows {
			jsonError(w, "not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(link)
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	link := &models.Link{ID: chi.URLParam(r, "id")}
	if err := models.GetLinkByID(h.DB, link); err != nil {
		if err == sql.ErrNoRows {
			jsonError(w, "not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Title != nil && *req.Title == "" {
		jsonError(w, "title cannot be empty", http.StatusBadRequest)
		return
	}

	applyRequest(link, &req)
	if msg := validateLink(link); msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	h.Cache.Invalidate(link.ID)

	if err := models.UpdateLink(h.DB, link); err != nil {
		jsonError(w, "failed to update", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(link)
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.Cache.Invalidate(id)

	if err := models.DeleteLink(h.DB, id); err != nil {
		if err == sql.ErrNoRows {
			jsonError(w, "not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func applyRequest(link *models.Link, req *linkRequest) {
	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.Description != nil {
		link.Description = *req.Description
	}
	if req.IOSURL != nil {
		link.IOSURL = *req.IOSURL
	}
	if req.AndroidURL != nil {
		link.AndroidURL = *req.AndroidURL
	}
	if req.WebURL != nil {
		link.WebURL = *req.WebURL
	}
	if req.ShowIOS != nil {
		link.ShowIOS = *req.ShowIOS
	}
	if req.ShowAndroid != nil {
		link.ShowAndroid = *req.ShowAndroid
	}
	if req.ShowWeb != nil {
		link.ShowWeb = *req.ShowWeb
	}
	if req.LogoURL != nil {
		link.LogoURL = *req.LogoURL
	}
	if req.Screenshots != nil {
		link.Screenshots = *req.Screenshots
	}
	if req.Rating != nil {
		link.Rating = *req.Rating
	}
	if req.ReviewCount != nil {
		link.ReviewCount = *req.ReviewCount
	}
}

func validateLink(link *models.Link) string {
	if link.Rating < 0 || link.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	if link.ReviewCount < 0 {
		return "review_count cannot be negative"
	}
	return ""
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
