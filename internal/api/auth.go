package api

import "net/http"

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	s, err := h.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusCreated, "User registered successfully", s)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	s, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Login successful", s)
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Auth.Profile(r.Context(), actorFrom(r).UserID)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Profile retrieved successfully", u)
}
