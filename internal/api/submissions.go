package api

import (
	"encoding/json"
	"net/http"

	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/infra/export"
)

type submissionRequest struct {
	SiteData struct {
		Name        string          `json:"name" validate:"required,max=255"`
		Description string          `json:"description" validate:"required"`
		Location    json.RawMessage `json:"location" validate:"required,jsonobject"`
	} `json:"siteData"`
}

type reviewRequest struct {
	Status submissions.Status `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

func (h *handler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	sub, err := h.Submissions.Create(r.Context(), actorFrom(r), submissions.SiteData{
		Name:        req.SiteData.Name,
		Description: req.SiteData.Description,
		Location:    req.SiteData.Location,
	})
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusCreated, "Submission created successfully", sub)
}

func (h *handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Submissions.FindAll(r.Context(), submissions.Status(r.URL.Query().Get("status")))
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Submissions retrieved successfully", nonNil(list))
}

func (h *handler) pendingSubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Submissions.FindPending(r.Context())
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Pending submissions retrieved successfully", nonNil(list))
}

func (h *handler) mySubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Submissions.FindByUser(r.Context(), actorFrom(r).UserID)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "User submissions retrieved successfully", nonNil(list))
}

func (h *handler) getSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	sub, err := h.Submissions.FindOne(r.Context(), id)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Submission retrieved successfully", sub)
}

func (h *handler) reviewSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	var req reviewRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	sub, err := h.Submissions.Review(r.Context(), actorFrom(r), id, req.Status)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Submission reviewed successfully", sub)
}

func (h *handler) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	if err := h.Submissions.Remove(r.Context(), actorFrom(r), id); err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Submission deleted successfully", nil)
}

func (h *handler) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Submissions.FindAll(r.Context(), submissions.Status(r.URL.Query().Get("status")))
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	attachment(w, "submissions")
	if err := export.Submissions(w, list); err != nil {
		h.Log.Error("submissions export failed", "err", err)
	}
}
