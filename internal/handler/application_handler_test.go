package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/utkarshshahi0/crud-assesment/config"
	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	"github.com/utkarshshahi0/crud-assesment/internal/export"
	"github.com/utkarshshahi0/crud-assesment/internal/handler"
	"github.com/utkarshshahi0/crud-assesment/internal/server"
	"github.com/utkarshshahi0/crud-assesment/internal/services"
	"github.com/utkarshshahi0/crud-assesment/internal/storage"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]application.Application
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[uuid.UUID]application.Application)}
}

func (r *memoryRepo) Create(ctx context.Context, a *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[a.ID] = *a
	return nil
}

func (r *memoryRepo) GetAll(ctx context.Context) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.Application, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok {
		return application.Application{}, crud_errors.ErrNotFound
	}
	return a, nil
}

func (r *memoryRepo) Update(ctx context.Context, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; !ok {
		return crud_errors.ErrNotFound
	}
	r.records[a.ID] = a
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return crud_errors.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type testEnv struct {
	engine    *gin.Engine
	token     string
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppPort:       "0",
		AppMode:       server.TestMode,
		JWTSecret:     "test-secret",
		JWTExpiryMin:  15,
		AdminUsername: "admin",
		AdminPassword: "s3cret",
	}

	authService, err := services.NewAuthService(cfg)
	require.NoError(t, err)

	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	appService := services.NewApplicationService(newMemoryRepo())
	handlers := &server.Handlers{
		Applications: handler.NewApplicationHandler(appService, services.NewUploadService(store), nil),
		Auth:         handler.NewAuthHandler(authService),
	}

	srv := server.New(cfg, nil)
	srv.SetupRoutes(handlers, authService, nil)

	resp, err := authService.Login("admin", "s3cret")
	require.NoError(t, err)

	return &testEnv{engine: srv.Engine(), token: resp.AccessToken, uploadDir: uploadDir}
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type filePart struct {
	field       string
	filename    string
	contentType string
	content     string
}

func submissionBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":              "A",
		"mobile":            "123",
		"email":             "a@x.com",
		"gender":            "F",
		"applicationAmount": "100",
	}
}

func validFiles() []filePart {
	return []filePart{
		{"profilePicture", "me.png", "image/png", "png-bytes"},
		{"markSheet", "marks.pdf", "application/pdf", "pdf-bytes"},
	}
}

func (e *testEnv) submit(t *testing.T) application.Application {
	t.Helper()
	body, contentType := submissionBody(t, validFields(), validFiles())
	w := e.do(t, http.MethodPost, "/api/applications", body, contentType, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec application.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	return rec
}

func TestRequiresAuthorization(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/applications"},
		{http.MethodGet, "/api/applications"},
		{http.MethodPut, "/api/applications/" + uuid.NewString()},
		{http.MethodDelete, "/api/applications/" + uuid.NewString()},
		{http.MethodGet, "/api/applications/download/excel"},
		{http.MethodGet, "/api/applications/download/pdf/" + uuid.NewString()},
	} {
		w := env.do(t, route.method, route.path, nil, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"username":"admin","password":"s3cret"}`)
	w := env.do(t, http.MethodPost, "/v1/auth/login", body, "application/json", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")

	body = bytes.NewBufferString(`{"username":"admin","password":"nope"}`)
	w = env.do(t, http.MethodPost, "/v1/auth/login", body, "application/json", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.submit(t)
	assert.Equal(t, "A", rec.Name)
	assert.Equal(t, "123", rec.Mobile)
	assert.Equal(t, "a@x.com", rec.Email)
	assert.Equal(t, "F", rec.Gender)
	assert.Equal(t, float64(100), rec.ApplicationAmount)
	assert.FileExists(t, rec.ProfilePicture)
	assert.FileExists(t, rec.MarkSheet)

	w := env.do(t, http.MethodGet, "/api/applications", nil, "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var records []application.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
}

func TestCreateMissingField(t *testing.T) {
	env := newTestEnv(t)

	fields := validFields()
	delete(fields, "mobile")
	body, contentType := submissionBody(t, fields, validFiles())

	w := env.do(t, http.MethodPost, "/api/applications", body, contentType, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/applications", nil, "", true)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCreateMissingFile(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := submissionBody(t, validFields(), validFiles()[:1])
	w := env.do(t, http.MethodPost, "/api/applications", body, contentType, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "markSheet")
}

func TestCreateRejectsDisallowedFileType(t *testing.T) {
	env := newTestEnv(t)

	files := []filePart{
		{"profilePicture", "script.exe", "application/octet-stream", "bin"},
		{"markSheet", "marks.pdf", "application/pdf", "pdf-bytes"},
	}
	body, contentType := submissionBody(t, validFields(), files)

	w := env.do(t, http.MethodPost, "/api/applications", body, contentType, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "accepted types only")

	w = env.do(t, http.MethodGet, "/api/applications", nil, "", true)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateMergesFields(t *testing.T) {
	env := newTestEnv(t)
	rec := env.submit(t)

	body := bytes.NewBufferString(`{"applicationAmount": 200}`)
	w := env.do(t, http.MethodPut, "/api/applications/"+rec.ID.String(), body, "application/json", true)
	require.Equal(t, http.StatusOK, w.Code)

	var updated application.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, float64(200), updated.ApplicationAmount)
	assert.Equal(t, rec.Name, updated.Name)
	assert.Equal(t, rec.ProfilePicture, updated.ProfilePicture)

	// Zero amount reads as "not supplied" and keeps the stored value.
	body = bytes.NewBufferString(`{"applicationAmount": 0, "name": "B"}`)
	w = env.do(t, http.MethodPut, "/api/applications/"+rec.ID.String(), body, "application/json", true)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, float64(200), updated.ApplicationAmount)
}

func TestUpdateUnknownID(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"name": "X"}`)
	w := env.do(t, http.MethodPut, "/api/applications/"+uuid.NewString(), body, "application/json", true)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg": "Application not found"}`, w.Body.String())
}

func TestDeleteKeepsBlobs(t *testing.T) {
	env := newTestEnv(t)
	rec := env.submit(t)

	w := env.do(t, http.MethodDelete, "/api/applications/"+rec.ID.String(), nil, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg": "Application removed"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/applications", nil, "", true)
	assert.Equal(t, "[]", w.Body.String())

	// Uploaded blobs are orphaned, not cascaded.
	assert.FileExists(t, rec.ProfilePicture)
	assert.FileExists(t, rec.MarkSheet)

	w = env.do(t, http.MethodDelete, "/api/applications/"+rec.ID.String(), nil, "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadExcel(t *testing.T) {
	env := newTestEnv(t)
	rec := env.submit(t)

	w := env.do(t, http.MethodGet, "/api/applications/download/excel", nil, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=applications.xlsx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, rec.Name, rows[1][0])
}

func TestDownloadPDF(t *testing.T) {
	env := newTestEnv(t)
	rec := env.submit(t)

	w := env.do(t, http.MethodGet, "/api/applications/download/pdf/"+rec.ID.String(), nil, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=application.pdf", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
	assert.Contains(t, w.Body.String(), "Name: A")

	w = env.do(t, http.MethodGet, "/api/applications/download/pdf/"+uuid.NewString(), nil, "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/ping", nil, "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
