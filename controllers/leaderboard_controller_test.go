package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGetLeaderboard(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\("user_id"\)\) FROM "event_participations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	leaderboardColumns := []string{
		"user_id", "username", "avatar_url", "total_points",
		"events_participated", "events_registered", "ranking",
	}
	mock.ExpectQuery(`SELECT u\.id AS user_id`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns).
			AddRow(42, "test_player", "", 150, 3, 5, 1).
			AddRow(7, "runner_up", "", 90, 2, 2, 2))

	w := performRequest(GetLeaderboard, testUser(), http.MethodGet, "", nil)

	expectStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "test_player")
	assert.Contains(t, w.Body.String(), `"ranking":1`)
	assert.Contains(t, w.Body.String(), "runner_up")
	assertMockMet(t, mock)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\("user_id"\)\) FROM "event_participations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT u\.id AS user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	w := performRequest(GetLeaderboard, testUser(), http.MethodGet, "", nil)

	expectStatus(t, w, http.StatusOK)
	assertMockMet(t, mock)
}
