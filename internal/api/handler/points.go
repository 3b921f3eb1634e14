package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/waymarkd/waymark/internal/api/middleware"
	"github.com/waymarkd/waymark/internal/api/request"
	"github.com/waymarkd/waymark/internal/api/response"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/services/points"
)

// PointsHandler handles the public and owner-facing point endpoints
type PointsHandler struct {
	points *points.Controller
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(points *points.Controller) *PointsHandler {
	return &PointsHandler{
		points: points,
	}
}

// parsePointRequest decodes and validates a create/edit body.
// Create and edit (and the moderation edit) all go through this one path so
// the field rules cannot drift between entry points.
func parsePointRequest(r *http.Request) (name string, x, z int, err error) {
	var req request.PointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", 0, 0, NewInvalidRequestError("invalid request body")
	}

	if !req.X.Present() || !req.Z.Present() {
		return "", 0, 0, NewInvalidRequestError("X and Z coordinates are required")
	}

	x, err = req.X.Int()
	if err != nil {
		return "", 0, 0, err
	}
	z, err = req.Z.Int()
	if err != nil {
		return "", 0, 0, err
	}

	return req.Name, x, z, nil
}

// pointID extracts the point id path variable
func pointID(r *http.Request) model.PointID {
	return model.PointID(mux.Vars(r)["id"])
}

// ListPublic handles GET /api/points
func (h *PointsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.points.ListPublic(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsFromModel(list))
}

// ListMine handles GET /api/points/private
func (h *PointsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	list, err := h.points.ListOwned(r.Context(), actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsFromModel(list))
}

// Create handles POST /api/points
func (h *PointsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	name, x, z, err := parsePointRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	point, err := h.points.Create(r.Context(), actor, name, x, z)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PointFromModel(point))
}

// Update handles PUT /api/points/{id}
func (h *PointsHandler) Update(w http.ResponseWriter, r *http.Request) {
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

// Share handles PUT /api/points/share/{id}
func (h *PointsHandler) Share(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	point, err := h.points.Share(r.Context(), actor, pointID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointFromModel(point))
}

// Delete handles DELETE /api/points/{id}
func (h *PointsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	if err := h.points.Delete(r.Context(), actor, pointID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Point deleted."})
}
