package api

import "net/http"

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Statistics retrieved successfully", st)
}

func (h *handler) activity(w http.ResponseWriter, r *http.Request) {
	a, err := h.Dashboard.Activity(r.Context())
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Recent activity retrieved successfully", a)
}
