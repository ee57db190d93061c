package member

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

func setupRouterWithDB(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Member{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	h := NewHandler(NewService(NewRepository(db), auditSvc))

	r := gin.New()
	r.GET("/api/members", h.ListMembers)
	r.GET("/api/members/:id", h.GetMember)
	r.POST("/api/members", h.CreateMember)
	r.PUT("/api/members/:id", h.UpdateMember)
	r.DELETE("/api/members/:id", h.DeleteMember)
	return r, db
}

func httpDo(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMemberNameOnly(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/members", map[string]string{"name": "Jane Doe"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Jane Doe", created.Name)
	require.Empty(t, created.Email)
	require.Equal(t, "active", created.Status)

	w = httpDo(r, "GET", "/api/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	require.Equal(t, created.ID, members[0].ID)
}

func TestCreateMemberMissingName(t *testing.T) {
	r, db := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/members", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&Member{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMemberCRUD(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/members", map[string]string{
		"name":     "John Smith",
		"email":    "john@example.com",
		"ministry": "Worship",
		"birthday": "1990-06-14",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var m Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))

	w = httpDo(r, "GET", "/api/members/"+m.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// PUT is a full replace, omitted fields are cleared
	w = httpDo(r, "PUT", "/api/members/"+m.ID, map[string]string{"name": "John S."})
	require.Equal(t, http.StatusOK, w.Code)
	var updated Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "John S.", updated.Name)
	require.Empty(t, updated.Email)
	require.Empty(t, updated.Ministry)

	w = httpDo(r, "DELETE", "/api/members/"+m.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/api/members/"+m.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberNotFound(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "GET", "/api/members/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httpDo(r, "PUT", "/api/members/does-not-exist", map[string]string{"name": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httpDo(r, "DELETE", "/api/members/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
