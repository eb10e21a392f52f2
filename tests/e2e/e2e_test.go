package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lashdiary/internal/database"
	"lashdiary/internal/modules/booking"
	"lashdiary/internal/modules/consultation"
	"lashdiary/internal/modules/notification"
	"lashdiary/internal/modules/project"
	"lashdiary/internal/pkg/calendar"
	"lashdiary/internal/pkg/mailer"
	"lashdiary/internal/pkg/slotlock"
	"lashdiary/internal/repository"
)

type E2ETestSuite struct {
	router       *gin.Engine
	db           *gorm.DB
	notification *notification.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	dbFile := fmt.Sprintf("%s/e2e.db", t.TempDir())

	db, err := database.Connect(dbFile)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	showcaseRepo := repository.NewShowcaseBookingRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	notificationService := notification.NewService(outboxRepo, map[string]notification.Executor{
		"email":         notification.NewEmailExecutor(mailer.NewNoopSender()),
		"calendar_sync": notification.NewCalendarExecutor(calendar.NewNoopSync(), showcaseRepo),
	})

	loc := time.FixedZone("EAT", 3*60*60)
	locks := slotlock.New()

	bookingService := booking.NewService(
		showcaseRepo, consultationRepo, projectRepo, notificationService,
		locks, loc, 45*time.Minute, "owner@test.local",
	)
	consultationService := consultation.NewService(
		consultationRepo, showcaseRepo, notificationService,
		locks, loc, "owner@test.local",
	)
	projectService := project.NewService(projectRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	booking.NewHandler(bookingService).RegisterRoutes(v1)
	consultation.NewHandler(consultationService).RegisterRoutes(v1)
	project.NewHandler(projectService).RegisterRoutes(v1)

	return &E2ETestSuite{router: r, db: db, notification: notificationService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, error) {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w, nil
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// createProject makes a project through the API and returns its invite token.
func (s *E2ETestSuite) createProject(t *testing.T, name string) string {
	w, err := s.makeRequest("POST", "/api/v1/projects", map[string]interface{}{
		"kind":         "website_build",
		"name":         name,
		"client_name":  "Test Client",
		"client_email": "client@test.local",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := parseResponse(t, w)
	token, ok := resp.Data["invite_token"].(string)
	require.True(t, ok, "project creation returned no invite token")
	return token
}

func TestFlow_BookShowcaseMeeting(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.createProject(t, "Amara Beauty Website")

	t.Run("GET /invites/:token", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/invites/"+token, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		invite := resp.Data["invite"].(map[string]interface{})
		assert.Equal(t, "website_build", invite["kind"])
		assert.Equal(t, false, invite["has_showcase"])
	})

	t.Run("GET /showcase/schedule shows free grid", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/showcase/schedule?date=2026-09-14", nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		slots := resp.Data["slots"].([]interface{})
		assert.Len(t, slots, 5)
		for _, s := range slots {
			assert.True(t, s.(map[string]interface{})["available"].(bool))
		}
	})

	var bookingID float64
	t.Run("POST /showcase/bookings", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        token,
			"client_name":  "Amara Wanjiru",
			"client_email": "amara@test.local",
			"meeting_type": "online",
			"date":         "2026-09-14",
			"time":         "2:30 PM",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		b := resp.Data["booking"].(map[string]interface{})
		bookingID = b["id"].(float64)
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "2026-09-14", b["date"])
		assert.Equal(t, "2:30 PM", b["time"])
	})

	t.Run("same slot via another project conflicts", func(t *testing.T) {
		otherToken := suite.createProject(t, "Second Project")

		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        otherToken,
			"client_name":  "Naledi Mwangi",
			"client_email": "naledi@test.local",
			"date":         "2026-09-14",
			"time":         "2:30 PM",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "SLOT_CONFLICT", resp.Error.Code)
	})

	t.Run("resubmitting the same invite conflicts", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        token,
			"client_name":  "Amara Wanjiru",
			"client_email": "amara@test.local",
			"date":         "2026-09-15",
			"time":         "10:00 AM",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("consultation on the taken slot conflicts", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/consultations", map[string]interface{}{
			"client_name":  "Kemi Otieno",
			"client_email": "kemi@test.local",
			"date":         "2026-09-14",
			"time":         "2:30 PM",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "SLOT_CONFLICT", resp.Error.Code)
	})

	t.Run("schedule marks the slot taken", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/showcase/schedule?date=2026-09-14", nil)
		require.NoError(t, err)

		resp := parseResponse(t, w)
		slots := resp.Data["slots"].([]interface{})
		for _, raw := range slots {
			s := raw.(map[string]interface{})
			if s["time"] == "2:30 PM" {
				assert.False(t, s["available"].(bool))
			} else {
				assert.True(t, s["available"].(bool))
			}
		}
	})

	t.Run("PATCH /showcase/bookings/:id/cancel frees the slot", func(t *testing.T) {
		w, err := suite.makeRequest("PATCH",
			fmt.Sprintf("/api/v1/showcase/bookings/%.0f/cancel", bookingID),
			map[string]interface{}{"reason": "client travelling"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)

		// The freed slot accepts a consultation now.
		w, err = suite.makeRequest("POST", "/api/v1/consultations", map[string]interface{}{
			"client_name":  "Kemi Otieno",
			"client_email": "kemi@test.local",
			"date":         "2026-09-14",
			"time":         "2:30 PM",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestFlow_ValidationAndTokens(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("unknown invite token is 404", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/invites/not-a-token", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("booking with unknown token is 404", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        "not-a-token",
			"client_name":  "Nobody",
			"client_email": "nobody@test.local",
			"date":         "2026-09-14",
			"time":         "10:00 AM",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed time label is 400", func(t *testing.T) {
		token := suite.createProject(t, "Validation Project")

		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        token,
			"client_name":  "Amara Wanjiru",
			"client_email": "amara@test.local",
			"date":         "2026-09-14",
			"time":         "sometime after lunch",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("impossible date is 400", func(t *testing.T) {
		token := suite.createProject(t, "Date Project")

		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"token":        token,
			"client_name":  "Amara Wanjiru",
			"client_email": "amara@test.local",
			"date":         "2026-02-30",
			"time":         "10:00 AM",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing required fields is 400", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
			"date": "2026-09-14",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Booking writes side effects to the outbox; draining it delivers them and
// records the calendar event on the booking row.
func TestFlow_OutboxDelivery(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.createProject(t, "Outbox Project")

	w, err := suite.makeRequest("POST", "/api/v1/showcase/bookings", map[string]interface{}{
		"token":        token,
		"client_name":  "Amara Wanjiru",
		"client_email": "amara@test.local",
		"date":         "2026-09-21",
		"time":         "11:30 AM",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code)

	var pendingCount int64
	suite.db.Table("outbox_entries").Where("status = ?", "pending").Count(&pendingCount)
	assert.Equal(t, int64(3), pendingCount, "calendar sync + client email + owner email")

	require.NoError(t, suite.notification.ProcessPending(t.Context()))

	var doneCount int64
	suite.db.Table("outbox_entries").Where("status = ?", "done").Count(&doneCount)
	assert.Equal(t, int64(3), doneCount)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
