package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	infraRepo "github.com/docudesk/typecenter-api/internal/infrastructure/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	var handlerCalls int
	router := gin.New()
	router.Use(Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}))
	router.POST("/documents", func(c *gin.Context) {
		handlerCalls++
		c.JSON(201, gin.H{"call": handlerCalls})
	})

	return router, &handlerCalls
}

func post(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	first := post(router, "key-1", `{"kind":"invoice"}`)
	assert.Equal(t, 201, first.Code)

	second := post(router, "key-1", `{"kind":"invoice"}`)
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))

	// The handler ran once; the replay never reached it.
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	first := post(router, "key-1", `{"kind":"invoice"}`)
	require.Equal(t, 201, first.Code)

	reused := post(router, "key-1", `{"kind":"quotation"}`)
	assert.Equal(t, 422, reused.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyPassThroughWithoutKey(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	post(router, "", `{"kind":"invoice"}`)
	post(router, "", `{"kind":"invoice"}`)

	assert.Equal(t, 2, *calls)
}
