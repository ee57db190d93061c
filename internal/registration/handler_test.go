package registration

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
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
)

func setupRouterWithDB(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&member.Member{}, &event.Event{}, &Registration{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	h := NewHandler(NewService(NewRepository(db), member.NewRepository(db), event.NewRepository(db), auditSvc))

	r := gin.New()
	r.GET("/api/registrations", h.ListRegistrations)
	r.POST("/api/registrations", h.CreateRegistration)
	r.DELETE("/api/registrations/:id", h.DeleteRegistration)
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

func seedMemberAndEvent(t *testing.T, db *gorm.DB) (string, string) {
	t.Helper()
	m := member.Member{Name: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, db.Create(&m).Error)
	e := event.Event{Name: "Spring Retreat", Date: "2025-04-12"}
	require.NoError(t, db.Create(&e).Error)
	return m.ID, e.ID
}

func TestCreateAndListRegistration(t *testing.T) {
	r, db := setupRouterWithDB(t)
	memberID, eventID := seedMemberAndEvent(t, db)

	w := httpDo(r, "POST", "/api/registrations", map[string]string{"memberId": memberID, "eventId": eventID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "GET", "/api/registrations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var regs []RegistrationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	require.Len(t, regs, 1)
	require.Equal(t, "Jane Doe", regs[0].Member.Name)
	require.Equal(t, "jane@example.com", regs[0].Member.Email)
	require.Equal(t, "Spring Retreat", regs[0].Event.Name)
	require.Equal(t, "2025-04-12", regs[0].Event.Date)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	r, db := setupRouterWithDB(t)
	memberID, eventID := seedMemberAndEvent(t, db)

	body := map[string]string{"memberId": memberID, "eventId": eventID}
	w := httpDo(r, "POST", "/api/registrations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "POST", "/api/registrations", body)
	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "This member is already registered for this event", resp["error"])

	var count int64
	require.NoError(t, db.Model(&Registration{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateRegistrationUnknownMemberOrEvent(t *testing.T) {
	r, db := setupRouterWithDB(t)
	memberID, eventID := seedMemberAndEvent(t, db)

	w := httpDo(r, "POST", "/api/registrations", map[string]string{
		"memberId": "00000000-0000-0000-0000-000000000001", "eventId": eventID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "member does not exist", resp["error"])

	w = httpDo(r, "POST", "/api/registrations", map[string]string{
		"memberId": memberID, "eventId": "00000000-0000-0000-0000-000000000002",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "event does not exist", resp["error"])

	var count int64
	require.NoError(t, db.Model(&Registration{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestCreateRegistrationMissingFields(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/registrations", map[string]string{"memberId": "m-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRegistration(t *testing.T) {
	r, db := setupRouterWithDB(t)
	memberID, eventID := seedMemberAndEvent(t, db)

	w := httpDo(r, "POST", "/api/registrations", map[string]string{"memberId": memberID, "eventId": eventID})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = httpDo(r, "DELETE", "/api/registrations/"+reg.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "DELETE", "/api/registrations/"+reg.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
