package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/go_observe/internal/app"
	"github.com/bassista/go_observe/internal/cache"
	"github.com/bassista/go_observe/internal/config"
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, doc repository.DataDocument) (*gin.Engine, *cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewStore(doc)
	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: time.Second, CORSAllowedOrigins: "*"},
		Data:   config.DataConfig{PersistInterval: time.Hour},
	}
	repo, err := repository.NewJSONRepository(t.TempDir() + "/data.json")
	require.NoError(t, err)
	appCtx, err := app.New(cfg, repo, store)
	require.NoError(t, err)
	t.Cleanup(appCtx.Shutdown)

	return SetupRoutes(appCtx), store
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedDocument() repository.DataDocument {
	return repository.DataDocument{
		Notes: []repository.NoteRecord{
			{ID: "1", Note: model.Note{Title: "T1", Body: "B1", Author: "A1"}},
		},
		User: &model.User{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Gender: "f"},
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestEngine(t, seedDocument())
	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"UP"}`, w.Body.String())
}

func TestNotes_ListAndGet(t *testing.T) {
	r, _ := newTestEngine(t, seedDocument())

	w := do(r, http.MethodGet, "/api/v1/note/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"1","title":"T1","body":"B1","author":"A1"}]`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = do(r, http.MethodGet, "/api/v1/note/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var note model.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, model.Note{Title: "T1", Body: "B1", Author: "A1"}, note)

	w = do(r, http.MethodGet, "/api/v1/note/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotes_EmptyListIsArray(t *testing.T) {
	r, _ := newTestEngine(t, repository.DataDocument{})
	w := do(r, http.MethodGet, "/api/v1/note/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestNotes_Create(t *testing.T) {
	r, store := newTestEngine(t, seedDocument())

	w := do(r, http.MethodPost, "/api/v1/note/", model.Note{Title: "T2", Body: "B2", Author: "A2"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created repository.NoteRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Len(t, store.Notes(), 2)
	assert.True(t, store.IsDirty())

	w = do(r, http.MethodGet, "/api/v1/note/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotes_CreateRejectsInvalid(t *testing.T) {
	r, store := newTestEngine(t, seedDocument())

	w := do(r, http.MethodPost, "/api/v1/note/", map[string]string{"body": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/note/", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, store.Notes(), 1)
}

func TestUser_GetAndPut(t *testing.T) {
	r, store := newTestEngine(t, repository.DataDocument{})

	w := do(r, http.MethodGet, "/api/v1/user/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	bob := model.User{FirstName: "Bob", LastName: "Ray", Email: "b@x.com", Gender: "m"}
	w = do(r, http.MethodPut, "/api/v1/user/", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.IsDirty())

	w = do(r, http.MethodGet, "/api/v1/user/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"firstName":"Bob","lastName":"Ray","email":"b@x.com","gender":"m"}`, w.Body.String())
}

func TestUser_PutRejectsInvalidEmail(t *testing.T) {
	r, _ := newTestEngine(t, seedDocument())
	w := do(r, http.MethodPut, "/api/v1/user/", model.User{FirstName: "A", LastName: "B", Email: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
