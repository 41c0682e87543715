package handlers

import (
	"context"
	"time"

	"slideforge/internal/models"
	"slideforge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	authUser    *models.User
	authErr     error
	token       string
	tokenErr    error
	parseID     int
	parseErr    error
	user        *models.User
	userErr     error

	lastRegisterEmail string
	lastAuthEmail     string
	lastRemember      bool
	lastParsedToken   string
}

func (m *mockAuth) Register(username, email, password string) (int, error) {
	m.lastRegisterEmail = email
	return m.registerID, m.registerErr
}

func (m *mockAuth) Authenticate(email, password string) (*models.User, error) {
	m.lastAuthEmail = email
	return m.authUser, m.authErr
}

func (m *mockAuth) IssueToken(userID int, remember bool) (string, error) {
	m.lastRemember = remember
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(accessToken string) (int, error) {
	m.lastParsedToken = accessToken
	return m.parseID, m.parseErr
}

func (m *mockAuth) SessionTTL(remember bool) time.Duration {
	if remember {
		return 720 * time.Hour
	}
	return 24 * time.Hour
}

func (m *mockAuth) UserByID(id int) (*models.User, error) {
	return m.user, m.userErr
}

type mockGenerator struct {
	filename string
	err      error
	lastReq  models.GenerationRequest
	calls    int
}

func (m *mockGenerator) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	m.calls++
	m.lastReq = req
	return m.filename, m.err
}

// ---- Router helpers ----

const testTemplatesGlob = "../../web/templates/*.html"

func newTestRouter(s *service.Service, outputDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Config{TemplatesGlob: testTemplatesGlob, OutputDir: outputDir})
	return h.InitRoutes()
}

// authedMock returns a mockAuth that resolves any session cookie to the
// given user.
func authedMock(u *models.User) *mockAuth {
	return &mockAuth{parseID: u.ID, user: u}
}

func testUser() *models.User {
	return &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}
}
