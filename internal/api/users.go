package api

import (
	"net/http"

	"github.com/Spok95/geosites/internal/domain/users"
)

type createUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     users.Role `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type updateUserRequest struct {
	Email    *string     `json:"email" validate:"omitempty,email"`
	Password *string     `json:"password" validate:"omitempty,min=6"`
	Role     *users.Role `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	u, err := h.Users.Create(r.Context(), users.CreateInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusCreated, "User created successfully", u)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Users.List(r.Context())
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "Users retrieved successfully", nonNil(list))
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "User retrieved successfully", u)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	var req updateUserRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, h.Log, err)
		return
	}
	u, err := h.Users.Update(r.Context(), id, users.UpdateInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "User updated successfully", u)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, h.Log, err)
		return
	}
	if err := h.Users.Delete(r.Context(), id); err != nil {
		fail(w, h.Log, err)
		return
	}
	ok(w, http.StatusOK, "User deleted successfully", nil)
}

// nonNil keeps empty lists as [] in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
