package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterForEventFreeSuccess(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(7, false, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(44))
	mock.ExpectCommit()

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "7"}})

	expectStatus(t, w, http.StatusCreated)
	assert.Contains(t, w.Body.String(), "Registered for event")
	assertMockMet(t, mock)
}

func TestRegisterForEventPaidRejected(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(7, true, 499))

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "7"}})

	expectStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, w.Body.String(), "requires payment")
	assertMockMet(t, mock)
}

func TestRegisterForEventFull(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(7, false, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(100))

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "7"}})

	expectStatus(t, w, http.StatusConflict)
	assert.Contains(t, w.Body.String(), "full")
	assertMockMet(t, mock)
}

func TestRegisterForEventDuplicateIsNoOp(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(7, false, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "idx_registration_user_event" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns).
			AddRow(44, 42, 7, nil, "completed", testTime))

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "7"}})

	expectStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "already confirmed")
	assertMockMet(t, mock)
}

func TestRegisterForEventCountFailure(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(7, false, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations"`).
		WillReturnError(fmt.Errorf("ERROR: connection reset by peer"))

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "7"}})

	// The capacity check cannot be skipped; a failed count aborts the request
	expectStatus(t, w, http.StatusInternalServerError)
	assertMockMet(t, mock)
}

func TestRegisterForEventNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows(eventColumns))

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "999"}})

	expectStatus(t, w, http.StatusNotFound)
	assertMockMet(t, mock)
}

func TestRegisterForEventBadID(t *testing.T) {
	newMockDB(t)

	w := performRequest(RegisterForEvent, testUser(), http.MethodPost, "",
		gin.Params{{Key: "id", Value: "not-a-number"}})

	expectStatus(t, w, http.StatusBadRequest)
}
