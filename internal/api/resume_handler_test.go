package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/database"
	"resumeBuilder/internal/enhance"
	"resumeBuilder/internal/pdf"
	"resumeBuilder/internal/render"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/session"
)

type stubConverter struct {
	data     []byte
	err      error
	document string
}

func (s *stubConverter) Name() string { return "stub" }

func (s *stubConverter) Convert(_ context.Context, html string) ([]byte, error) {
	s.document = html
	return s.data, s.err
}

type stubBackend struct {
	reply string
}

func (s *stubBackend) Complete(context.Context, string, string) (string, error) {
	return s.reply, nil
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	repo     *database.ResumeRepository
	renderer *render.Renderer
}

func newTestServer(t *testing.T, converter pdf.Converter, backend enhance.Backend) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := render.New()
	require.NoError(t, err)
	signer, err := session.NewFlashSigner("test-secret", time.Minute)
	require.NoError(t, err)

	repo := database.NewResumeRepository(db)
	handler := NewResumeHandler(
		repo,
		enhance.New(backend, logger),
		renderer,
		pdf.NewExporter(converter, logger),
		NewFlashStore(signer),
	)

	router := NewRouter(renderer, logger)
	RegisterRoutes(router, handler)

	return &testServer{router: router, db: db, repo: repo, renderer: renderer}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(req)
}

func (s *testServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) seed(t *testing.T, f resume.Fields) *database.Resume {
	t.Helper()
	record := database.NewResume(f)
	require.NoError(t, s.repo.Create(context.Background(), record))
	return record
}

func (s *testServer) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&database.Resume{}).Count(&n).Error)
	return n
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func longSummary() string {
	return strings.TrimSpace(strings.Repeat("seasoned engineer ", 15))
}

func TestShowForm(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Create Resume")
	assert.Contains(t, w.Body.String(), `<option value="template1" selected>`)
	assert.NotContains(t, w.Body.String(), "enhance_ai")
}

func TestShowForm_AICheckboxWithBackend(t *testing.T) {
	s := newTestServer(t, nil, &stubBackend{reply: "x"})

	w := s.get("/")

	assert.Contains(t, w.Body.String(), `name="enhance_ai"`)
}

func TestSubmit_InvalidRedisplaysForm(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.post("/submit", url.Values{
		"full_name":    {"  Ada  "},
		"phone":        {"123"},
		"profile_link": {"not a url"},
		"summary":      {"too short"},
		"template":     {"template2"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Phone number must contain at least 10 digits.")
	assert.Contains(t, body, "LinkedIn / Portfolio link must be a valid URL")
	assert.Contains(t, body, "Professional summary must be at least 30 words (currently 2).")
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, `<option value="template2" selected>`)
	assert.Less(t, strings.Index(body, "Phone number"), strings.Index(body, "Professional summary"))
	assert.Zero(t, s.count(t))
}

func TestSubmit_ValidRedirectsWithFlash(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.post("/submit", url.Values{
		"full_name":    {"Ada Lovelace"},
		"phone":        {"+91-6006868686"},
		"profile_link": {"https://linkedin.com/in/ada"},
		"summary":      {longSummary()},
		"experience":   {"Built engines\nWrote notes"},
		"template":     {"template3"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/resume/1", w.Header().Get("Location"))
	assert.EqualValues(t, 1, s.count(t))

	flash := findCookie(w, flashCookieName)
	require.NotNil(t, flash)

	page := s.get("/resume/1", flash)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Resume saved.")
	assert.Contains(t, page.Body.String(), "Preview — Ada Lovelace")
	assert.Contains(t, page.Body.String(), "resume-tech")

	cleared := findCookie(page, flashCookieName)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)

	again := s.get("/resume/1")
	assert.NotContains(t, again.Body.String(), "Resume saved.")
}

func TestSubmit_DefaultsNameAndTemplate(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.post("/submit", url.Values{"template": {"template42"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	record, err := s.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, resume.DefaultFullName, record.FullName)
	assert.Equal(t, string(resume.Template1), record.Template)
}

func TestSubmit_EnhancesWhenRequested(t *testing.T) {
	s := newTestServer(t, nil, &stubBackend{reply: "Polished text."})

	w := s.post("/submit", url.Values{
		"full_name":  {"Ada"},
		"summary":    {longSummary()},
		"experience": {"did stuff"},
		"education":  {"BSc"},
		"enhance_ai": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	record, err := s.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Polished text.", record.Summary)
	assert.Equal(t, "Polished text.", record.Experience)
	assert.Equal(t, "", record.Projects)
	assert.Equal(t, "BSc", record.Education)
}

func TestSubmit_WithoutCheckboxKeepsText(t *testing.T) {
	s := newTestServer(t, nil, &stubBackend{reply: "Polished text."})

	w := s.post("/submit", url.Values{
		"full_name":  {"Ada"},
		"experience": {"did stuff"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	record, err := s.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "did stuff", record.Experience)
}

func TestPreview_EscapesFieldsInChosenLayout(t *testing.T) {
	s := newTestServer(t, nil, nil)
	record := s.seed(t, resume.Fields{
		FullName: "<b>Bob</b>",
		Skills:   "Go",
		Template: resume.Template2,
	})

	w := s.get("/resume/" + uintString(record.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume-two-column")
	assert.Contains(t, w.Body.String(), "&lt;b&gt;Bob&lt;/b&gt;")
	assert.NotContains(t, w.Body.String(), "<b>Bob</b>")
	assert.Contains(t, w.Body.String(), `action="/download/`+uintString(record.ID)+`"`)
}

func TestPreview_NotFound(t *testing.T) {
	s := newTestServer(t, nil, nil)

	for _, path := range []string{"/resume/999", "/resume/abc", "/resume/0", "/nowhere"} {
		w := s.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), notFoundMessage, path)
	}
}

func TestDownload_NoConverterFallsBackToPreview(t *testing.T) {
	s := newTestServer(t, nil, nil)
	record := s.seed(t, resume.Fields{FullName: "Ada", Experience: "Built engines", Template: resume.Template1})

	w := s.post("/download/"+uintString(record.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Use browser Print -&gt; Save as PDF.")

	fragment, err := s.renderer.Resume(record.Fields())
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), string(fragment))
}

func TestDownload_ConverterFailureFallsBackToPreview(t *testing.T) {
	s := newTestServer(t, &stubConverter{err: errors.New("exit status 1")}, nil)
	record := s.seed(t, resume.Fields{FullName: "Ada", Template: resume.Template3})

	w := s.post("/download/"+uintString(record.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Server couldn&#39;t generate PDF automatically. Use your browser Print -&gt; Save as PDF.")
	assert.Contains(t, w.Body.String(), "Preview — Ada")

	fragment, err := s.renderer.Resume(record.Fields())
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), string(fragment))
}

func TestDownload_ReturnsPDFAttachment(t *testing.T) {
	conv := &stubConverter{data: []byte("%PDF-1.4 stub")}
	s := newTestServer(t, conv, nil)
	record := s.seed(t, resume.Fields{FullName: "Ada Lovelace", Template: resume.Template1})

	w := s.post("/download/"+uintString(record.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ada Lovelace_resume.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 stub", w.Body.String())

	assert.True(t, strings.HasPrefix(conv.document, "<html><head><meta charset='utf-8'><style>"))
	assert.Contains(t, conv.document, render.Stylesheet())
	assert.Contains(t, conv.document, "Ada Lovelace")
}

func TestDownload_UnknownID(t *testing.T) {
	s := newTestServer(t, &stubConverter{data: []byte("pdf")}, nil)

	w := s.post("/download/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlash_TamperedCookieIsIgnored(t *testing.T) {
	s := newTestServer(t, nil, nil)
	record := s.seed(t, resume.Fields{FullName: "Ada"})

	w := s.get("/resume/"+uintString(record.ID), &http.Cookie{Name: flashCookieName, Value: "not.a.token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `class="flashes"`)
}

func TestHealthAndStatic(t *testing.T) {
	s := newTestServer(t, nil, nil)

	health := s.get("/health")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())

	css := s.get("/static/style.css")
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Equal(t, render.Stylesheet(), css.Body.String())

	metrics := s.get("/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "resumebuilder_http_requests_total")
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
