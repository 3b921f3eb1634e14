package handler

import (
	"encoding/json"
	"net/http"

	"github.com/waymarkd/waymark/internal/api/middleware"
	"github.com/waymarkd/waymark/internal/api/request"
	"github.com/waymarkd/waymark/internal/api/response"
	"github.com/waymarkd/waymark/internal/services/points"
	"github.com/waymarkd/waymark/internal/services/registry"
)

// AdminHandler handles the moderation endpoints
type AdminHandler struct {
	points   *points.Controller
	registry *registry.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(points *points.Controller, registry *registry.Service) *AdminHandler {
	return &AdminHandler{
		points:   points,
		registry: registry,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req request.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.AdminCode == "" {
		WriteError(w, NewInvalidRequestError("adminCode is required"))
		return
	}

	if err := h.registry.AdminLogin(r.Context(), actor.Session, req.AdminCode); err != nil {
		WriteError(w, err)
		return
	}

	message := "Logged in as admin"
	if actor.Role.IsOwner() {
		message = "Logged in as owner"
	}
	response.JSON(w, http.StatusOK, response.LoginResponse{Success: true, Message: message})
}

// ListPending handles GET /api/admin/pending
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	list, err := h.points.ListPending(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsFromModel(list))
}

// Accept handles PUT /api/admin/accept/{id}
func (h *AdminHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	point, err := h.points.Approve(r.Context(), actor, pointID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointFromModel(point))
}

// Reject handles PUT /api/admin/reject/{id}
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	point, err := h.points.Reject(r.Context(), actor, pointID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointFromModel(point))
}

// Edit handles PUT /api/admin/edit/{id}.
// The gate is the same access table as the owner edit: moderators may only
// rewrite public points, never another session's private or pending ones.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	name, x, z, err := parsePointRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	point, err := h.points.Update(r.Context(), actor, pointID(r), name, x, z)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointFromModel(point))
}

// Delete handles DELETE /api/admin/delete/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	if err := h.points.Delete(r.Context(), actor, pointID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Point deleted."})
}
