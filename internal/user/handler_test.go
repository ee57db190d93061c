package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

func setupRouterWithDB(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	h := NewHandler(NewService(NewRepository(db), auditSvc))

	r := gin.New()
	r.GET("/api/users", h.ListUsers)
	r.GET("/api/users/:id", h.GetUser)
	r.POST("/api/users", h.CreateUser)
	r.PUT("/api/users/:id", h.UpdateUser)
	r.DELETE("/api/users/:id", h.DeleteUser)
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

func TestCreateUserHashesPassword(t *testing.T) {
	r, db := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/users", map[string]string{
		"email":    "staff@example.com",
		"password": "s3cret",
		"name":     "Staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Password hash never leaves the API
	require.NotContains(t, w.Body.String(), "s3cret")
	require.NotContains(t, w.Body.String(), "password_hash")

	var u User
	require.NoError(t, db.First(&u, "email = ?", "staff@example.com").Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	require.Equal(t, RoleUser, u.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	r, db := setupRouterWithDB(t)

	body := map[string]string{"email": "staff@example.com", "password": "s3cret"}
	w := httpDo(r, "POST", "/api/users", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "POST", "/api/users", body)
	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "email already exists", resp["error"])

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateUserMissingFields(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/users", map[string]string{"email": "staff@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httpDo(r, "POST", "/api/users", map[string]string{"email": "not-an-email", "password": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserPartial(t *testing.T) {
	r, db := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/users", map[string]string{
		"email":    "staff@example.com",
		"password": "s3cret",
		"name":     "Staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Empty fields stay untouched
	w = httpDo(r, "PUT", "/api/users/"+created.ID, map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)

	var u User
	require.NoError(t, db.First(&u, "id = ?", created.ID).Error)
	require.Equal(t, "Renamed", u.Name)
	require.Equal(t, "staff@example.com", u.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestDeleteUser(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/users", map[string]string{"email": "staff@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httpDo(r, "DELETE", "/api/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/api/users/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
