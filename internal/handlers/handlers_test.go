package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/internal/opportunities"
	"github.com/D-z-V/oppia/internal/translation"
	"github.com/D-z-V/oppia/pkg/auth"
	"github.com/D-z-V/oppia/pkg/logging"
)

var (
	testJWTSecret     = []byte("test-secret")
	testAndroidSecret = "android-build-secret"
)

// newTestEnv wires the handler package against a sqlmock database and
// returns the router plus the mock for expectations.
func newTestEnv(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	return newTestEnvWithTranslator(t, translation.Unavailable())
}

func newTestEnvWithTranslator(t *testing.T, tr translation.Translator) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	initTestHandlers(db, tr)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, testJWTSecret, testAndroidSecret)
	return router, mock
}

func initTestHandlers(database *sql.DB, tr translation.Translator) {
	logger := logging.NewLogger()
	sqlStore := opportunities.NewSQLStore(database)
	aggregator := opportunities.New(sqlStore, languages.IsSupported)
	Init(database, logger, aggregator, sqlStore, translation.NewCache(tr, nil, logger), nil)
}

func loginAs(t *testing.T, req *http.Request, userID, username string) {
	t.Helper()
	token, err := auth.GenerateJWT(userID, username, auth.RoleContributor, testJWTSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
