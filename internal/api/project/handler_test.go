package project

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/fallback"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/mock"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/validator"
	"github.com/MVVYSHNAV/idea-generator/internal/prompt"
	"github.com/MVVYSHNAV/idea-generator/internal/repository"
	"github.com/MVVYSHNAV/idea-generator/internal/usecase/planner"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	bank, err := fallback.Default()
	require.NoError(t, err)
	chain, err := completion.NewChain([]completion.ChainProvider{
		{Adapter: mock.NewAdapter(), Models: []string{"mock-1"}},
	}, bank, time.Second)
	require.NoError(t, err)

	uc := planner.NewUsecase(chain, prompt.NewComposer(),
		repository.NewProjectRepository(repository.NewMemoryStore()), formatter.NewFactory())

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, validator.New()))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createProject(t *testing.T, h http.Handler) *entity.Project {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/projects", `{"idea":"A tutoring marketplace for kids"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p entity.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return &p
}

func TestProjectLifecycle(t *testing.T) {
	h := newRouter(t)
	p := createProject(t, h)
	base := "/projects/" + p.ID

	rec := do(t, h, http.MethodPost, base+"/messages", `{"content":"generate roadmap","mode":"roadmap"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var msg entity.ProjectMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Here is the plan.", msg.Reply.Content)
	assert.NotEmpty(t, msg.Roadmap)
	assert.False(t, msg.UsedFallback)

	rec = do(t, h, http.MethodGet, "/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list entity.ListProjectsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Projects, 1)
	assert.True(t, list.Projects[0].HasRoadmap)

	rec = do(t, h, http.MethodGet, base+"/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "no summary generated yet")

	rec = do(t, h, http.MethodPost, base+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, base+"/summary?format=markdown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "summary-"+p.ID+".md")

	rec = do(t, h, http.MethodPost, base+"/dev-guide", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"overview"`)

	rec = do(t, h, http.MethodGet, base+"/dev-guide?format=pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, base+"/dev-guide?format=html", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectBadRequests(t *testing.T) {
	h := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/projects", `{"idea":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/projects", `not json`).Code)

	p := createProject(t, h)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/projects/"+p.ID+"/messages", `{"content":" "}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/projects/missing/messages", `{"content":"hi"}`).Code)
}
