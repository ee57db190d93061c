package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AuditLog{}))
	return NewService(NewRepository(db)), db
}

func TestLogActionWritesRow(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	actor := "user-1"
	err := svc.LogAction(ctx, &actor, ActionMemberCreated, "member", "m-1",
		map[string]interface{}{"name": "Jane"}, "10.0.0.1", StatusSuccess)
	require.NoError(t, err)

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, ActionMemberCreated, entry.Action)
	require.Equal(t, "member", entry.Resource)
	require.Equal(t, "m-1", entry.ResourceID)
	require.Equal(t, "10.0.0.1", entry.IPAddress)
	require.Equal(t, &actor, entry.UserID)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	require.Equal(t, "Jane", details["name"])
}

func TestGetAuditLogsFilterAndPaginate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.LogAction(ctx, nil, ActionLogin, "auth", "", nil, "10.0.0.1", StatusSuccess))
	}
	require.NoError(t, svc.LogAction(ctx, nil, ActionLogin, "auth", "", nil, "10.0.0.1", StatusFailure))

	page, err := svc.GetAuditLogs(ctx, ActionLogin, StatusSuccess, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 10)
	require.Equal(t, int64(25), page.Total)
	require.Equal(t, 3, page.TotalPages)

	page, err = svc.GetAuditLogs(ctx, "", StatusFailure, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
}

func TestGetAuditLogsClampsPaging(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.LogAction(ctx, nil, ActionLogin, "auth", "", nil, "10.0.0.1", StatusSuccess))

	page, err := svc.GetAuditLogs(ctx, "", "", -3, 5000)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 20, page.Limit)
}
