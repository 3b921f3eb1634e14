package handler

import (
	"encoding/json"
	"net/http"

	"github.com/waymarkd/waymark/internal/api/middleware"
	"github.com/waymarkd/waymark/internal/api/request"
	"github.com/waymarkd/waymark/internal/api/response"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/services/registry"
)

// OwnerHandler handles the owner-only registry endpoints
type OwnerHandler struct {
	registry *registry.Service
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(registry *registry.Service) *OwnerHandler {
	return &OwnerHandler{
		registry: registry,
	}
}

// sessionCodeBody decodes a {sessionCode} body and rejects blank codes
func sessionCodeBody(r *http.Request) (model.SessionCode, error) {
	var req request.SessionCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", NewInvalidRequestError("invalid request body")
	}
	if req.SessionCode == "" {
		return "", NewInvalidRequestError("sessionCode is required")
	}
	return model.SessionCode(req.SessionCode), nil
}

// Check handles GET /api/owner/check.
// It never errors; an anonymous caller is simply not the owner.
func (h *OwnerHandler) Check(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	response.JSON(w, http.StatusOK, response.OwnerCheckResponse{IsOwner: actor.Role.IsOwner()})
}

// ListAllowed handles GET /api/owner/allowed-sessions
func (h *OwnerHandler) ListAllowed(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	list, err := h.registry.ListAllowed(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AllowedSessionsFromModel(list))
}

// AllowSession handles POST /api/owner/allow-session
func (h *OwnerHandler) AllowSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	code, err := sessionCodeBody(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.registry.AllowSession(r.Context(), actor, code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AllowSessionResponse{
		Message: "Session code added to allowed list.",
		Session: response.AllowedSessionFromModel(session),
	})
}

// RemoveSession handles DELETE /api/owner/remove-session
func (h *OwnerHandler) RemoveSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	code, err := sessionCodeBody(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.registry.RemoveSession(r.Context(), actor, code); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Session code removed from allowed list."})
}

// Promote handles PUT /api/owner/promote
func (h *OwnerHandler) Promote(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	code, err := sessionCodeBody(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	alreadyAdmin, err := h.registry.Promote(r.Context(), actor, code)
	if err != nil {
		WriteError(w, err)
		return
	}

	message := "User promoted to admin."
	if alreadyAdmin {
		message = "User is already an admin."
	}
	response.JSON(w, http.StatusOK, response.Message{Message: message})
}

// Demote handles DELETE /api/owner/demote
func (h *OwnerHandler) Demote(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	code, err := sessionCodeBody(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	wasAdmin, err := h.registry.Demote(r.Context(), actor, code)
	if err != nil {
		WriteError(w, err)
		return
	}

	message := "User demoted."
	if !wasAdmin {
		message = "User was not an admin."
	}
	response.JSON(w, http.StatusOK, response.Message{Message: message})
}
