package apiHttp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apiHttp "github.com/nzwalks/backend/internal/api/http"
	"github.com/nzwalks/backend/internal/config"
	"github.com/nzwalks/backend/internal/db"
	"github.com/nzwalks/backend/internal/repository"
	"github.com/nzwalks/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regionBody struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	RegionImageURL *string   `json:"regionImageUrl"`
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Database: config.Database{
			Driver: db.DriverSQLite,
			DSN:    ":memory:",
		},
		Limiter: config.Limiter{RPS: 0},
		Cors:    config.Cors{AllowOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()

	dbConn, err := db.New(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbConn.Close() })
	require.NoError(t, db.Migrate(dbConn, cfg.Database.Driver))

	services := service.NewServices(service.Deps{
		Repos: repository.NewRepositories(dbConn),
	})

	return apiHttp.NewHandlers(services, dbConn).Init(cfg)
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func create(t *testing.T, router http.Handler, body string) regionBody {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/regions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[regionBody](t, rec)
}

func TestCreateThenGet(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodPost, "/api/regions",
		`{"code":"WGN","name":"Wellington","regionImageUrl":"http://x/1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[regionBody](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "WGN", created.Code)
	assert.Equal(t, "Wellington", created.Name)
	require.NotNil(t, created.RegionImageURL)
	assert.Equal(t, "http://x/1", *created.RegionImageURL)
	assert.True(t, strings.HasSuffix(rec.Header().Get("Location"), "/api/regions/"+created.ID.String()))

	rec = do(t, router, http.MethodGet, "/api/regions/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []regionBody{created}, decode[[]regionBody](t, rec))
}

func TestGetNeverCreated(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodGet, "/api/regions/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUpdateThenGet(t *testing.T) {
	router := newTestAPI(t)
	created := create(t, router, `{"code":"WGN","name":"Wellington","regionImageUrl":"http://x/1"}`)

	rec := do(t, router, http.MethodPut, "/api/regions/"+created.ID.String(),
		`{"code":"AKL","name":"Auckland"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	want := regionBody{ID: created.ID, Code: "AKL", Name: "Auckland"}
	assert.Equal(t, want, decode[regionBody](t, rec))

	rec = do(t, router, http.MethodGet, "/api/regions/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []regionBody{want}, decode[[]regionBody](t, rec))
}

func TestUpdateUnknownID(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodPut, "/api/regions/"+uuid.NewString(), `{"code":"X","name":"Y"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMalformedBodyKeepsRow(t *testing.T) {
	router := newTestAPI(t)
	created := create(t, router, `{"code":"WGN","name":"Wellington","regionImageUrl":"http://x/1"}`)

	rec := do(t, router, http.MethodPut, "/api/regions/"+created.ID.String(), `{"code":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error_code":1001,"error_message":"invalid request body"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/regions/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []regionBody{created}, decode[[]regionBody](t, rec))

	// existence is checked before the body is read
	rec = do(t, router, http.MethodPut, "/api/regions/"+uuid.NewString(), `{"code":`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTwice(t *testing.T) {
	router := newTestAPI(t)
	created := create(t, router, `{"code":"OTA","name":"Otago"}`)

	rec := do(t, router, http.MethodDelete, "/api/regions/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[regionBody](t, rec))

	rec = do(t, router, http.MethodDelete, "/api/regions/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/regions/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodGet, "/api/regions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	var ids []uuid.UUID
	for _, code := range []string{"AKL", "WGN", "NSN", "OTA", "STL"} {
		ids = append(ids, create(t, router, `{"code":"`+code+`","name":"`+code+`"}`).ID)
	}
	for _, id := range ids[:2] {
		rec := do(t, router, http.MethodDelete, "/api/regions/"+id.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/regions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]regionBody](t, rec), 3)
}

func TestMalformedBodyPersistsNothing(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodPost, "/api/regions", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/regions", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestAPI(t)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("unreachable") }

func TestHealth_DatabaseDown(t *testing.T) {
	cfg := testConfig()
	router := apiHttp.NewHandlers(&service.Services{}, failingPinger{}).Init(cfg)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCorsPreflight(t *testing.T) {
	router := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/regions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "43200", rec.Header().Get("Access-Control-Max-Age"))
}
