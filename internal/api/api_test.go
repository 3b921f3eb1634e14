package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkd/waymark/internal/api"
	"github.com/waymarkd/waymark/internal/api/response"
	"github.com/waymarkd/waymark/internal/factory"
	"github.com/waymarkd/waymark/internal/testutil"
)

// testServer wires the full router against in-memory storage
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		Clock:            app.MockClock,
		Resolver:         app.Resolver,
		PointsController: app.PointsController,
		Registry:         app.Registry,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, session string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-Code", session)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createPoint makes a point for the given session and returns its response form
func (ts *testServer) createPoint(t *testing.T, session string, name string) response.Point {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/points", map[string]any{
		"name": name,
		"x":    100,
		"z":    -50,
	}, session)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var point response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &point))
	return point
}

// loginAdmin allow-lists the session and logs it in as an admin
func (ts *testServer) loginAdmin(t *testing.T, session string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/owner/allow-session",
		map[string]string{"sessionCode": session}, string(factory.TestOwnerCode))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": factory.TestAdminCode}, session)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "OK")
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Endpoint not found")
}

// Point endpoints

func TestListPublicNeedsNoSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/points", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var points []response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &points))
	assert.Empty(t, points)
}

func TestCreatePoint(t *testing.T) {
	ts := newTestServer(t)

	point := ts.createPoint(t, "session-1", "Base")
	assert.NotEmpty(t, point.ID)
	assert.Equal(t, "Base", point.Name)
	assert.Equal(t, 100, point.X)
	assert.Equal(t, -50, point.Z)
	assert.Equal(t, "session-1", point.OwnerSessionCode)
	assert.Equal(t, "private", point.Status)
}

func TestCreatePointWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/points", map[string]any{
		"name": "Base", "x": 1, "z": 2,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreatePointWithStringCoordinates(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/points", map[string]any{
		"name": "Base", "x": "100", "z": "-50",
	}, "session-1")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var point response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &point))
	assert.Equal(t, 100, point.X)
	assert.Equal(t, -50, point.Z)
}

func TestCreatePointValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"blank name", map[string]any{"name": "  ", "x": 1, "z": 2}},
		{"missing coordinates", map[string]any{"name": "Base"}},
		{"non-integer coordinate", map[string]any{"name": "Base", "x": "abc", "z": 2}},
		{"float coordinate", map[string]any{"name": "Base", "x": 1.5, "z": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/points", tt.body, "session-1")
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestListPrivatePoints(t *testing.T) {
	ts := newTestServer(t)
	ts.createPoint(t, "session-1", "Mine")
	ts.createPoint(t, "session-2", "Theirs")

	rr := ts.request(http.MethodGet, "/api/points/private", nil, "session-1")
	require.Equal(t, http.StatusOK, rr.Code)

	var points []response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.Equal(t, "Mine", points[0].Name)
}

func TestPrivateIsNotAPointID(t *testing.T) {
	ts := newTestServer(t)

	// "private" is taken by the listing route, so writes against it resolve
	// as an unknown point id rather than reaching the listing
	rr := ts.request(http.MethodPut, "/api/points/private", map[string]any{
		"name": "Base", "x": 1, "z": 2,
	}, "session-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/points/private", nil, "session-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListPrivateWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/points/private", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateOwnPoint(t *testing.T) {
	ts := newTestServer(t)
	point := ts.createPoint(t, "session-1", "Base")

	rr := ts.request(http.MethodPut, "/api/points/"+point.ID, map[string]any{
		"name": "New Base", "x": 7, "z": 8,
	}, "session-1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "New Base", updated.Name)
	assert.Equal(t, 7, updated.X)
}

func TestUpdateAnotherSessionsPoint(t *testing.T) {
	ts := newTestServer(t)
	point := ts.createPoint(t, "session-1", "Base")

	rr := ts.request(http.MethodPut, "/api/points/"+point.ID, map[string]any{
		"name": "Stolen", "x": 0, "z": 0,
	}, "session-2")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUpdateMissingPoint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/points/nonexistent", map[string]any{
		"name": "Base", "x": 0, "z": 0,
	}, "session-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteOwnPoint(t *testing.T) {
	ts := newTestServer(t)
	point := ts.createPoint(t, "session-1", "Base")

	rr := ts.request(http.MethodDelete, "/api/points/"+point.ID, nil, "session-1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Point deleted.")

	rr = ts.request(http.MethodGet, "/api/points/private", nil, "session-1")
	var points []response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &points))
	assert.Empty(t, points)
}

func TestSharePoint(t *testing.T) {
	ts := newTestServer(t)
	point := ts.createPoint(t, "session-1", "Base")

	rr := ts.request(http.MethodPut, "/api/points/share/"+point.ID, nil, "session-1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var shared response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &shared))
	assert.Equal(t, "pending", shared.Status)

	// Sharing again is refused
	rr = ts.request(http.MethodPut, "/api/points/share/"+point.ID, nil, "session-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already pending")
}

// Admin endpoints

func TestAdminLoginOwner(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": factory.TestAdminCode}, string(factory.TestOwnerCode))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Logged in as owner", resp.Message)
}

func TestAdminLoginRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": factory.TestAdminCode}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminLoginRequiresBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": ""}, "session-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminLoginNotAllowListed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": factory.TestAdminCode}, "session-1")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "not authorized")
}

func TestAdminLoginWrongCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/owner/allow-session",
		map[string]string{"sessionCode": "session-1"}, string(factory.TestOwnerCode))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/admin/login",
		map[string]string{"adminCode": "wrong"}, "session-1")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestModerationFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAdmin(t, "mod-session")

	point := ts.createPoint(t, "session-1", "Base")
	rr := ts.request(http.MethodPut, "/api/points/share/"+point.ID, nil, "session-1")
	require.Equal(t, http.StatusOK, rr.Code)

	// Pending list shows the shared point
	rr = ts.request(http.MethodGet, "/api/admin/pending", nil, "mod-session")
	require.Equal(t, http.StatusOK, rr.Code)

	var pending []response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, point.ID, pending[0].ID)

	// Accept publishes it
	rr = ts.request(http.MethodPut, "/api/admin/accept/"+point.ID, nil, "mod-session")
	require.Equal(t, http.StatusOK, rr.Code)

	var accepted response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accepted))
	assert.Equal(t, "public", accepted.Status)

	rr = ts.request(http.MethodGet, "/api/points", nil, "")
	var public []response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &public))
	assert.Len(t, public, 1)
}

func TestRejectReturnsPointToPrivate(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAdmin(t, "mod-session")

	point := ts.createPoint(t, "session-1", "Base")
	_ = ts.request(http.MethodPut, "/api/points/share/"+point.ID, nil, "session-1")

	rr := ts.request(http.MethodPut, "/api/admin/reject/"+point.ID, nil, "mod-session")
	require.Equal(t, http.StatusOK, rr.Code)

	var rejected response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rejected))
	assert.Equal(t, "private", rejected.Status)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/admin/pending", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/admin/pending", nil, "plain-session")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestOwnerSessionPassesAdminGate(t *testing.T) {
	ts := newTestServer(t)

	// The owner role is configuration-derived; no admin record exists for it
	rr := ts.request(http.MethodGet, "/api/admin/pending", nil, string(factory.TestOwnerCode))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminCannotTouchPrivatePoints(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAdmin(t, "mod-session")

	point := ts.createPoint(t, "session-1", "Base")

	rr := ts.request(http.MethodPut, "/api/admin/edit/"+point.ID, map[string]any{
		"name": "Moderated", "x": 0, "z": 0,
	}, "mod-session")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/admin/delete/"+point.ID, nil, "mod-session")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminEditsPublicPoint(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAdmin(t, "mod-session")

	point := ts.createPoint(t, "session-1", "Base")
	_ = ts.request(http.MethodPut, "/api/points/share/"+point.ID, nil, "session-1")
	rr := ts.request(http.MethodPut, "/api/admin/accept/"+point.ID, nil, "mod-session")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/admin/edit/"+point.ID, map[string]any{
		"name": "Corrected", "x": 5, "z": 6,
	}, "mod-session")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var edited response.Point
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &edited))
	assert.Equal(t, "Corrected", edited.Name)

	// The original owner lost control when the point went public
	rr = ts.request(http.MethodDelete, "/api/points/"+point.ID, nil, "session-1")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/admin/delete/"+point.ID, nil, "mod-session")
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Owner endpoints

func TestOwnerCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/owner/check", nil, string(factory.TestOwnerCode))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.OwnerCheckResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsOwner)

	rr = ts.request(http.MethodGet, "/api/owner/check", nil, "session-1")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.IsOwner)

	// Works without any session at all
	rr = ts.request(http.MethodGet, "/api/owner/check", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOwnerEndpointsRequireOwner(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/owner/allowed-sessions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/owner/allowed-sessions", nil, "session-1")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// An admin is still not the owner
	ts.loginAdmin(t, "mod-session")
	rr = ts.request(http.MethodGet, "/api/owner/allowed-sessions", nil, "mod-session")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAllowAndListSessions(t *testing.T) {
	ts := newTestServer(t)
	ownerSession := string(factory.TestOwnerCode)

	rr := ts.request(http.MethodPost, "/api/owner/allow-session",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.AllowSessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "session-1", created.Session.SessionCode)
	assert.Equal(t, ownerSession, created.Session.AddedBy)

	// Duplicates are refused
	rr = ts.request(http.MethodPost, "/api/owner/allow-session",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/owner/allowed-sessions", nil, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []response.AllowedSession
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestRemoveSessionRevokesAdmin(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAdmin(t, "mod-session")
	ownerSession := string(factory.TestOwnerCode)

	rr := ts.request(http.MethodDelete, "/api/owner/remove-session",
		map[string]string{"sessionCode": "mod-session"}, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)

	// The removed session is a plain user again
	rr = ts.request(http.MethodGet, "/api/admin/pending", nil, "mod-session")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestPromoteAndDemote(t *testing.T) {
	ts := newTestServer(t)
	ownerSession := string(factory.TestOwnerCode)

	rr := ts.request(http.MethodPost, "/api/owner/allow-session",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPut, "/api/owner/promote",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User promoted to admin.")

	rr = ts.request(http.MethodPut, "/api/owner/promote",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User is already an admin.")

	// The promoted session can reach moderation endpoints
	rr = ts.request(http.MethodGet, "/api/admin/pending", nil, "session-1")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/owner/demote",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User demoted.")

	rr = ts.request(http.MethodDelete, "/api/owner/demote",
		map[string]string{"sessionCode": "session-1"}, ownerSession)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User was not an admin.")
}

func TestPromoteRequiresAllowListEntry(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/owner/promote",
		map[string]string{"sessionCode": "session-1"}, string(factory.TestOwnerCode))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "not on the allowed list")
}
