package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/config"
	"github.com/skillfusion/campusarena/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB swaps config.DB for a gorm connection backed by sqlmock
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}

	config.DB = gormDB
	return mock
}

// performRequest invokes a handler directly with an authenticated user in
// context, bypassing the router and auth middleware
func performRequest(handler gin.HandlerFunc, user models.User, method, body string, params gin.Params) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("{}")
	}
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("user", user)
	c.Set("token", "test-token")

	handler(c)
	return w
}

var eventColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"title", "description", "event_type", "campus", "location",
	"event_date", "event_time", "organizer_name", "max_participants",
	"is_paid", "price", "is_promoted", "ad_image_url", "created_by",
}

var testTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func eventRow(id uint, isPaid bool, price float64) *sqlmock.Rows {
	return sqlmock.NewRows(eventColumns).AddRow(
		id, testTime, testTime, nil,
		"BGMI Campus Championship", "Squad TPP showdown", "BGMI", "IIT Delhi", "Main Auditorium",
		"2026-09-15", "18:00", "Skill Fusion Gaming", 100,
		isPaid, price, false, "", 7,
	)
}

var registrationColumns = []string{
	"id", "user_id", "event_id", "payment_id", "payment_status", "registration_date",
}

func testUser() models.User {
	user := models.User{
		Username: "test_player",
		Email:    "player@campus.edu",
		FullName: "Test Player",
	}
	user.ID = 42
	return user
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body: %s", want, w.Code, w.Body.String())
	}
}

func assertMockMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}
