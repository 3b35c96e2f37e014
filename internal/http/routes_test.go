package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifewood/adminhub/config"
	domainauth "github.com/lifewood/adminhub/internal/domain/auth"
	"github.com/lifewood/adminhub/internal/domain/model"
	"github.com/lifewood/adminhub/internal/mocks"
	"github.com/lifewood/adminhub/internal/service"
)

const (
	testAdminEmail = "admin@lifewood.com"
	testPassword   = "correct-password"
	testSessionID  = "sess-1"
)

// routerMocks bundles every port behind the routed services.
type routerMocks struct {
	contacts   *mocks.MockContactRepo
	applicants *mocks.MockApplicantRepo
	jobs       *mocks.MockJobRepo
	sessions   *mocks.MockSessionStore
	limiter    *mocks.MockRateLimiter
	notifier   *mocks.MockNotifier
	resumes    *mocks.MockResumeStore
	cache      *mocks.MockCache
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		contacts:   mocks.NewMockContactRepo(ctrl),
		applicants: mocks.NewMockApplicantRepo(ctrl),
		jobs:       mocks.NewMockJobRepo(ctrl),
		sessions:   mocks.NewMockSessionStore(ctrl),
		limiter:    mocks.NewMockRateLimiter(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		resumes:    mocks.NewMockResumeStore(ctrl),
		cache:      mocks.NewMockCache(ctrl),
	}

	// Dashboard invalidation piggybacks on most mutations; it is not what
	// these tests assert.
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Sessions: m.sessions,
		Limiter:  m.limiter,
		Config: config.AuthConfig{
			AdminEmail:        testAdminEmail,
			AdminPasswordHash: string(hash),
			SessionTTL:        12 * time.Hour,
		},
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceOptions{
		Contacts:   m.contacts,
		Applicants: m.applicants,
		Jobs:       m.jobs,
		Cache:      m.cache,
	})

	handler := NewRouter(RouterServices{
		Auth: authSvc,
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Repo:     m.contacts,
			Notifier: m.notifier,
		}),
		Applicants: service.NewApplicantService(service.ApplicantServiceOptions{
			Repo:     m.applicants,
			Notifier: m.notifier,
			Resumes:  m.resumes,
		}),
		Jobs:           service.NewJobListingService(service.JobListingServiceOptions{Repo: m.jobs}),
		Dashboard:      dashboardSvc,
		MaxUploadBytes: 1 << 20,
	})
	return handler, m
}

// expectAdminSession arms the session store for one authenticated request.
func expectAdminSession(m routerMocks) {
	m.sessions.EXPECT().Get(gomock.Any(), testSessionID).Return(domainauth.Session{
		ID:        testSessionID,
		UserID:    "admin",
		Email:     testAdminEmail,
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
}

func adminRequest(method, target string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestRouter_Health(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_AdminRequiresSession(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRouter_AdminRejectsWrongIdentity(t *testing.T) {
	handler, m := newTestRouter(t)

	m.sessions.EXPECT().Get(gomock.Any(), testSessionID).Return(domainauth.Session{
		ID:        testSessionID,
		Email:     "intruder@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/contacts", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
}

func TestRouter_AdminExpiredSessionIsCleared(t *testing.T) {
	handler, m := newTestRouter(t)

	m.sessions.EXPECT().Get(gomock.Any(), testSessionID).Return(domainauth.Session{
		ID:        testSessionID,
		Email:     testAdminEmail,
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	m.sessions.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/contacts", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Login(t *testing.T) {
	handler, m := newTestRouter(t)

	m.limiter.EXPECT().Allow(gomock.Any(), testAdminEmail).Return(true, nil)
	m.limiter.EXPECT().Reset(gomock.Any(), testAdminEmail).Return(nil)
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	body := bytes.NewBufferString(`{"email":"Admin@Lifewood.com","password":"correct-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testAdminEmail, resp["email"])
}

func TestRouter_Login_BadCredentials(t *testing.T) {
	handler, m := newTestRouter(t)

	m.limiter.EXPECT().Allow(gomock.Any(), testAdminEmail).Return(true, nil)

	body := bytes.NewBufferString(`{"email":"admin@lifewood.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.Empty(t, rec.Result().Cookies(), "no cookie on failed sign-in")
}

func TestRouter_Logout(t *testing.T) {
	handler, m := newTestRouter(t)

	m.sessions.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge, "session cookie is cleared")
}

func TestRouter_PublicContactSubmit(t *testing.T) {
	handler, m := newTestRouter(t)

	m.contacts.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
			msg.ID = "c1"
			return msg, nil
		})

	body := bytes.NewBufferString(`{
		"name": "Alice", "email": "alice@example.com",
		"subject": "Hello", "category": "Business", "message": "A question."
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"c1"`)
}

func TestRouter_ContactsList(t *testing.T) {
	handler, m := newTestRouter(t)

	expectAdminSession(m)
	m.contacts.EXPECT().List(gomock.Any(), model.ContactFilter{Status: model.ContactStatusNew}).
		Return([]model.ContactMessage{{ID: "c1", Status: model.ContactStatusNew}}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/contacts?status=New", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.ContactMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestRouter_ContactReply_NotificationWarning(t *testing.T) {
	handler, m := newTestRouter(t)

	original := model.ContactMessage{ID: "c1", Email: "alice@example.com", Subject: "Hello"}
	replied := original
	replied.Status = model.ContactStatusReplied

	expectAdminSession(m)
	m.contacts.EXPECT().Get(gomock.Any(), "c1").Return(original, nil)
	m.contacts.EXPECT().AppendReply(gomock.Any(), "c1", gomock.Any(), model.ContactStatusReplied).
		Return(replied, nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("relay down"))

	body := bytes.NewBufferString(`{"message":"Thanks!"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/contacts/c1/reply", body))

	require.Equal(t, http.StatusOK, rec.Code, "the committed reply is reported even when email fails")
	assert.Contains(t, rec.Body.String(), "warning")
	assert.Contains(t, rec.Body.String(), "Replied")
}

func TestRouter_ApplicantAccept(t *testing.T) {
	handler, m := newTestRouter(t)

	pending := model.JobApplicant{
		ID: "a1", FirstName: "Grace", LastName: "Hopper",
		Email: "grace@example.com", Status: model.ApplicantStatusPending,
	}
	accepted := pending
	accepted.Status = model.ApplicantStatusAccepted

	expectAdminSession(m)
	m.applicants.EXPECT().Get(gomock.Any(), "a1").Return(pending, nil)
	m.applicants.EXPECT().UpdateStatus(gomock.Any(), "a1", model.ApplicantStatusAccepted).
		Return(accepted, nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/applicants/a1/accept", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Accepted")
}

func TestRouter_ApplicantAccept_AlreadyDecided(t *testing.T) {
	handler, m := newTestRouter(t)

	expectAdminSession(m)
	m.applicants.EXPECT().Get(gomock.Any(), "a1").
		Return(model.JobApplicant{ID: "a1", Status: model.ApplicantStatusRejected}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/applicants/a1/accept", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_PublicApplication_Multipart(t *testing.T) {
	handler, m := newTestRouter(t)

	m.resumes.EXPECT().Save(gomock.Any(), "cv.pdf", gomock.Any()).
		Return("resumes/generated.pdf", nil)
	m.applicants.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a model.JobApplicant) (model.JobApplicant, error) {
			assert.Equal(t, "Grace", a.FirstName)
			require.NotNil(t, a.ResumePath)
			assert.Equal(t, "resumes/generated.pdf", *a.ResumePath)
			a.ID = "a1"
			return a, nil
		})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("first_name", "Grace"))
	require.NoError(t, mw.WriteField("last_name", "Hopper"))
	require.NoError(t, mw.WriteField("email", "grace@example.com"))
	require.NoError(t, mw.WriteField("job_title_applied", "Data Engineer"))
	require.NoError(t, mw.WriteField("experience_years", "7"))
	part, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"a1"`)
}

func TestRouter_PublicApplication_MissingFields(t *testing.T) {
	handler, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("first_name", "Grace"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in all required fields.")
}

func TestRouter_PublicJobsList(t *testing.T) {
	handler, m := newTestRouter(t)

	m.jobs.EXPECT().List(gomock.Any()).Return([]model.JobListing{
		{ID: "j1", Title: "Data Engineer"},
	}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data Engineer")
}

func TestRouter_JobCreate_Validation(t *testing.T) {
	handler, m := newTestRouter(t)

	expectAdminSession(m)

	body := bytes.NewBufferString(`{"title":"Data Engineer"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/jobs", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_JobDelete(t *testing.T) {
	handler, m := newTestRouter(t)

	expectAdminSession(m)
	m.jobs.EXPECT().Delete(gomock.Any(), "j1").Return(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodDelete, "/api/admin/jobs/j1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ResumeDownload(t *testing.T) {
	handler, m := newTestRouter(t)

	expectAdminSession(m)
	m.applicants.EXPECT().Get(gomock.Any(), "a1").Return(model.JobApplicant{
		ID:         "a1",
		ResumePath: func() *string { p := "resumes/a1.pdf"; return &p }(),
	}, nil)
	m.resumes.EXPECT().Open(gomock.Any(), "resumes/a1.pdf").
		Return(readCloser("%PDF-1.4"), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/applicants/a1/resume", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "a1.pdf")
}

func readCloser(s string) *nopCloser { return &nopCloser{Reader: strings.NewReader(s)} }

type nopCloser struct{ *strings.Reader }

func (*nopCloser) Close() error { return nil }
