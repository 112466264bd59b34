package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/geosites/internal/apperr"
	"github.com/Spok95/geosites/internal/auth"
	"github.com/Spok95/geosites/internal/domain/access"
	"github.com/Spok95/geosites/internal/domain/dashboard"
	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/domain/users"
	"github.com/Spok95/geosites/internal/infra/export"
	"github.com/Spok95/geosites/internal/infra/logger"
)

// Fakes embed the service interface so only the methods a test touches need
// bodies.

type fakeSites struct {
	SiteService
	created  sites.Input
	actor    access.Actor
	status   sites.Status
	findErr  error
	removeFn func(actor access.Actor, id int64) error
}

func (f *fakeSites) Create(_ context.Context, a access.Actor, in sites.Input) (*sites.Site, error) {
	f.actor, f.created = a, in
	return &sites.Site{ID: 1, Name: in.Name, Location: in.Location, Status: sites.StatusPending, CreatedByID: a.UserID}, nil
}

func (f *fakeSites) FindApproved(context.Context) ([]sites.Site, error) { return nil, nil }

func (f *fakeSites) FindAll(_ context.Context, st sites.Status) ([]sites.Site, error) {
	f.status = st
	if st != "" && !st.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", "Unknown site status %q", st)
	}
	return []sites.Site{{ID: 3, Name: "Lake", Status: sites.StatusApproved}}, nil
}

func (f *fakeSites) FindOne(_ context.Context, id int64) (*sites.Site, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &sites.Site{ID: id}, nil
}

func (f *fakeSites) Remove(_ context.Context, a access.Actor, id int64) error {
	return f.removeFn(a, id)
}

type fakeSubs struct {
	SubmissionService
	reviewErr error
	reviewed  submissions.Status
	reviewer  access.Actor
}

func (f *fakeSubs) Create(_ context.Context, a access.Actor, d submissions.SiteData) (*submissions.Submission, error) {
	return &submissions.Submission{ID: 1, SiteData: d, Status: submissions.StatusPending, SubmittedByID: a.UserID}, nil
}

func (f *fakeSubs) FindByUser(_ context.Context, id int64) ([]submissions.Submission, error) {
	return []submissions.Submission{{ID: 5, SubmittedByID: id}}, nil
}

func (f *fakeSubs) Review(_ context.Context, a access.Actor, id int64, st submissions.Status) (*submissions.Submission, error) {
	f.reviewer, f.reviewed = a, st
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	return &submissions.Submission{ID: id, Status: st, ReviewedByID: &a.UserID}, nil
}

type fakeDash struct{ DashboardService }

func (fakeDash) Stats(context.Context) (dashboard.Stats, error) {
	return dashboard.Stats{Users: dashboard.UserCounts{Total: 3}}, nil
}

type fakeUsers struct{ UserService }

func (fakeUsers) Delete(context.Context, int64) error {
	return apperr.Conflict("USER_IN_USE", "User still owns sites or submissions")
}

type fakeAuth struct{ AuthService }

func (fakeAuth) Login(_ context.Context, email, password string) (*auth.Session, error) {
	if password != "secret1" {
		return nil, apperr.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	}
	return &auth.Session{AccessToken: "tok", User: &users.User{ID: 7, Email: email, Role: users.RoleUser}}, nil
}

type env struct {
	router http.Handler
	tokens *auth.Tokens
	sites  *fakeSites
	subs   *fakeSubs
}

func newEnv() *env {
	e := &env{
		tokens: auth.NewTokens("test-secret", time.Hour),
		sites:  &fakeSites{},
		subs:   &fakeSubs{},
	}
	e.router = NewRouter(Deps{
		Auth:        fakeAuth{},
		Users:       fakeUsers{},
		Sites:       e.sites,
		Submissions: e.subs,
		Dashboard:   fakeDash{},
		Tokens:      e.tokens,
		Log:         logger.Discard(),
		Env:         "test",
	})
	return e
}

func (e *env) token(t *testing.T, id int64, role users.Role) string {
	t.Helper()
	tok, _, err := e.tokens.Issue(&users.User{ID: id, Email: "u@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func (e *env) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp Response
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

var point = map[string]any{"type": "Point", "coordinates": []float64{121.5654, 25.033}}

func TestHealth(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Service is healthy", resp.Message)
}

func TestAuthGate(t *testing.T) {
	e := newEnv()

	rec, resp := e.do(t, http.MethodPost, "/api/sites", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "UNAUTHORIZED", resp.ErrorCode)

	rec, resp = e.do(t, http.MethodGet, "/api/sites", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", resp.ErrorCode)

	rec, resp = e.do(t, http.MethodGet, "/api/dashboard/stats", e.token(t, 7, users.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ADMIN_ONLY", resp.ErrorCode)

	rec, _ = e.do(t, http.MethodGet, "/api/dashboard/stats", e.token(t, 2, users.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicSiteListing(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodGet, "/api/sites", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, resp.Data)
}

func TestCreateSite(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodPost, "/api/sites", e.token(t, 7, users.RoleUser), map[string]any{
		"name":        "Beautiful Mountain View",
		"description": "Peak",
		"location":    point,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Site created successfully", resp.Message)
	assert.Equal(t, int64(7), e.sites.actor.UserID)
	assert.JSONEq(t, `{"type":"Point","coordinates":[121.5654,25.033]}`, string(e.sites.created.Location))
}

func TestCreateSiteValidation(t *testing.T) {
	e := newEnv()
	tok := e.token(t, 7, users.RoleUser)

	rec, resp := e.do(t, http.MethodPost, "/api/sites", tok, map[string]any{"name": "x", "description": "y", "location": "nowhere"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", resp.ErrorCode)
	assert.Equal(t, "jsonobject", resp.Details["location"])

	rec, resp = e.do(t, http.MethodPost, "/api/sites", tok, map[string]any{"location": point})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "required", resp.Details["name"])
	assert.Equal(t, "required", resp.Details["description"])

	rec, resp = e.do(t, http.MethodPost, "/api/submissions", tok, map[string]any{"siteData": map[string]any{"name": "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "required", resp.Details["siteData.location"])
}

func TestSiteErrorsMapToStatus(t *testing.T) {
	e := newEnv()

	rec, _ := e.do(t, http.MethodGet, "/api/sites/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.sites.findErr = apperr.NotFound("SITE_NOT_FOUND", "Site with ID %d not found", 42)
	rec, resp := e.do(t, http.MethodGet, "/api/sites/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SITE_NOT_FOUND", resp.ErrorCode)
	assert.Equal(t, "Site with ID 42 not found", resp.Message)

	e.sites.findErr = errors.New("connection reset")
	rec, resp = e.do(t, http.MethodGet, "/api/sites/42", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", resp.ErrorCode)
	assert.NotContains(t, resp.Message, "connection reset")
}

func TestDeleteSitePassesActor(t *testing.T) {
	e := newEnv()
	e.sites.removeFn = func(a access.Actor, _ int64) error {
		if !access.CanMutate(a, 7) {
			return apperr.Forbidden("SITE_FORBIDDEN", "You can only delete your own sites")
		}
		return nil
	}

	rec, _ := e.do(t, http.MethodDelete, "/api/sites/1", e.token(t, 9, users.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = e.do(t, http.MethodDelete, "/api/sites/1", e.token(t, 7, users.RoleUser), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = e.do(t, http.MethodDelete, "/api/sites/1", e.token(t, 2, users.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAllSitesStatusFilter(t *testing.T) {
	e := newEnv()
	admin := e.token(t, 2, users.RoleAdmin)

	rec, _ := e.do(t, http.MethodGet, "/api/sites/all?status=APPROVED", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sites.StatusApproved, e.sites.status)

	rec, resp := e.do(t, http.MethodGet, "/api/sites/all?status=LOST", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", resp.ErrorCode)
}

func TestReviewSubmission(t *testing.T) {
	e := newEnv()
	admin := e.token(t, 2, users.RoleAdmin)

	rec, resp := e.do(t, http.MethodPatch, "/api/submissions/1", admin, map[string]any{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Submission reviewed successfully", resp.Message)
	assert.Equal(t, submissions.StatusApproved, e.subs.reviewed)
	assert.Equal(t, int64(2), e.subs.reviewer.UserID)

	rec, resp = e.do(t, http.MethodPatch, "/api/submissions/1", admin, map[string]any{"status": "PENDING"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "oneof", resp.Details["status"])

	e.subs.reviewErr = apperr.Forbidden("SUBMISSION_NOT_PENDING", "Only pending submissions can be reviewed")
	rec, resp = e.do(t, http.MethodPatch, "/api/submissions/1", admin, map[string]any{"status": "REJECTED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "SUBMISSION_NOT_PENDING", resp.ErrorCode)

	rec, _ = e.do(t, http.MethodPatch, "/api/submissions/1", e.token(t, 7, users.RoleUser), map[string]any{"status": "APPROVED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMySubmissionsUsesCaller(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodGet, "/api/submissions/my", e.token(t, 7, users.RoleUser), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := resp.Data.([]any)
	require.Len(t, list, 1)
	assert.Equal(t, float64(7), list[0].(map[string]any)["submittedById"])
}

func TestLogin(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.ErrorCode)

	rec, resp = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "tok", data["accessToken"])
	assert.NotContains(t, data["user"], "passwordHash")
}

func TestDeleteUserInUse(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodDelete, "/api/users/7", e.token(t, 2, users.RoleAdmin), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_IN_USE", resp.ErrorCode)
}

func TestExportSites(t *testing.T) {
	e := newEnv()
	rec, _ := e.do(t, http.MethodGet, "/api/sites/export", e.token(t, 2, users.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sites_")
	assert.NotZero(t, rec.Body.Len())
}

func TestUnknownRoute(t *testing.T) {
	e := newEnv()
	rec, resp := e.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", resp.ErrorCode)
}
