package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/cache"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/internal/terms/service"
	"github.com/termspage/termspage/pkg/middleware"
)

type brokenRepo struct{ *repository.MemoryRepo }

func (brokenRepo) Get(context.Context, string, string) (*terms.Document, error) {
	return nil, errors.New("password authentication failed for user \"postgres\"")
}

func newServer(t *testing.T, repo repository.Repository) *gin.Engine {
	t.Helper()
	svc := service.New(repo, cache.NewMemory(), terms.Defaults())
	_, err := svc.EnsureSeeded(context.Background())
	require.NoError(t, err)

	g := gin.New()
	g.Use(middleware.CORS())
	RegisterRoutes(g, svc)
	return g
}

func do(g *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGetTermsSeededLanguages(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())

	for _, want := range terms.Defaults() {
		w := do(g, http.MethodGet, "/api/terms?lang="+want.Lang)
		require.Equal(t, http.StatusOK, w.Code)

		var got terms.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, want.Lang, got.Lang)
		require.Equal(t, want.Title, got.Title)
		require.Equal(t, want.Content, got.Content)
		require.Len(t, got.Sections, 1)
		require.Equal(t, "terms", got.Sections[0].Slug)
		require.Equal(t, got.Content, got.Sections[0].Content)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestGetTermsUnknownLanguage(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())

	w := do(g, http.MethodGet, "/api/terms?lang=xx")
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Terms not found for language: xx", body["error"])
}

func TestGetTermsTruncatesLanguage(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())

	short := do(g, http.MethodGet, "/api/terms?lang=sv")
	long := do(g, http.MethodGet, "/api/terms?lang=svabc")
	require.Equal(t, http.StatusOK, long.Code)
	require.Equal(t, short.Body.String(), long.Body.String())

	w := do(g, http.MethodGet, "/api/terms?lang=xxyyzz")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "language: xx")
}

func TestGetTermsDefaultsToSwedish(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())
	w := do(g, http.MethodGet, "/api/terms")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"lang":"sv"`)
}

func TestGetTermsStoreFailureIsGeneric500(t *testing.T) {
	g := newServer(t, brokenRepo{repository.NewMemoryRepo()})

	w := do(g, http.MethodGet, "/api/terms?lang=en")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Database error"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "password")
}

func TestPreflightReturnsEmpty200(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())
	for _, target := range []string{"/api/terms", "/api/terms?lang=xx", "/api/terms?lang=sv&foo=bar"} {
		w := do(g, http.MethodOptions, target)
		require.Equal(t, http.StatusOK, w.Code)
		require.Zero(t, w.Body.Len())
	}
}

func TestHealth(t *testing.T) {
	g := newServer(t, brokenRepo{repository.NewMemoryRepo()})
	w := do(g, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRejectOtherMethods(t *testing.T) {
	g := newServer(t, repository.NewMemoryRepo())
	RejectOtherMethods(g)

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := do(g, m, "/api/terms?lang=sv")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code, m)
		require.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	}
	// preflight is still answered by CORS
	require.Equal(t, http.StatusOK, do(g, http.MethodOptions, "/api/terms").Code)
}

func TestEmptyStoreNoMatchingSeed(t *testing.T) {
	repo := repository.NewMemoryRepo()
	svc := service.New(repo, cache.NewMemory(), []terms.Document{terms.Defaults()[1]})
	_, err := svc.EnsureSeeded(context.Background())
	require.NoError(t, err)

	g := gin.New()
	RegisterRoutes(g, svc)
	w := do(g, http.MethodGet, "/api/terms?lang=sv")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOneShotReader(t *testing.T) {
	shared := repository.NewMemoryRepo()
	o := service.NewOneShot(func(context.Context) (repository.Repository, error) {
		return shared, nil
	}, terms.Defaults())

	g := gin.New()
	g.Use(middleware.CORS())
	RegisterRoutes(g, o)
	RejectOtherMethods(g)

	require.Equal(t, http.StatusOK, do(g, http.MethodGet, "/api/terms?lang=en").Code)
	w := do(g, http.MethodGet, "/api/terms?lang=XXL")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "language: xx")
	require.Equal(t, http.StatusMethodNotAllowed, do(g, http.MethodPost, "/api/terms").Code)
}
