package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"partygo/backend/internal/models"
	"partygo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) (*Handler, *storage.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.PartyUserInfo{},
		&models.ChatRoom{},
		&models.Chat{},
		&models.ChatReadStatus{},
	))

	s := storage.NewStorageService(db, nil)
	return NewHandler(nil, s, nil, "test-secret"), s
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatRoomsEmptyInboxIsNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler(t)

	router := gin.New()
	router.POST("/user/chatRooms", h.ChatRooms)

	rec := postJSON(router, "/user/chatRooms", `{"party_id": 1, "user_id": 1}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": null, "totalCount": 0}`, rec.Body.String())
}

func TestChatRoomsListsMemberships(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, s := newTestHandler(t)

	_, err := s.GetOrCreateRoom(1, 1, 2)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/user/chatRooms", h.ChatRooms)

	rec := postJSON(router, "/user/chatRooms", `{"party_id": 1, "user_id": 1}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCount":1`)
	assert.Contains(t, rec.Body.String(), `"user_id_2":2`)
}
