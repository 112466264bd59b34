package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/infra/export"
)

type siteRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Location    json.RawMessage `json:"location" validate:"required,jsonobject"`
}

type sitePatchRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string         `json:"description" validate:"omitempty,min=1"`
	Location    json.RawMessage `json:"location" validate:"omitempty,jsonobject"`
}

type siteStatusRequest struct {
	Status sites.Status `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

func (h *handler) createSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	site, err := h.Sites.Create(r.Context(), actorFrom(r), sites.Input{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusCreated, "Site created successfully", site)
}

func (h *handler) listApprovedSites(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sites.FindApproved(r.Context())
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Sites retrieved successfully", nonNil(list))
}

func (h *handler) listAllSites(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sites.FindAll(r.Context(), sites.Status(r.URL.Query().Get("status")))
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Sites retrieved successfully", nonNil(list))
}

func (h *handler) getSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	site, err := h.Sites.FindOne(r.Context(), id)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Site retrieved successfully", site)
}

func (h *handler) updateSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	var req sitePatchRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	site, err := h.Sites.Update(r.Context(), actorFrom(r), id, sites.Patch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Site updated successfully", site)
}

func (h *handler) updateSiteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	var req siteStatusRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	site, err := h.Sites.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Site status updated successfully", site)
}

func (h *handler) deleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	if err := h.Sites.Remove(r.Context(), actorFrom(r), id); err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Site deleted successfully", nil)
}

func (h *handler) exportSites(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sites.FindAll(r.Context(), sites.Status(r.URL.Query().Get("status")))
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	attachment(w, "sites")
	if err := export.Sites(w, list); err != nil {
		h.Log.Error("sites export failed", "err", err)
	}
}

func attachment(w http.ResponseWriter, kind string) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(kind, time.Now())))
}
