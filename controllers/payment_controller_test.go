package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/skillfusion/campusarena/utils"
	"github.com/stretchr/testify/assert"
)

func TestCreateEventOrderFreeEvent(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, false, 0))

	w := performRequest(CreateEventOrder, testUser(), http.MethodPost,
		`{"event_id": 5}`, nil)

	expectStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, w.Body.String(), "does not require payment")
	assertMockMet(t, mock)
}

func TestCreateEventOrderEventNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows(eventColumns))

	w := performRequest(CreateEventOrder, testUser(), http.MethodPost,
		`{"event_id": 999}`, nil)

	expectStatus(t, w, http.StatusNotFound)
	assertMockMet(t, mock)
}

func TestCreateEventOrderAlreadyRegistered(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns).
			AddRow(21, 42, 5, nil, "completed", testTime))

	w := performRequest(CreateEventOrder, testUser(), http.MethodPost,
		`{"event_id": 5}`, nil)

	// Conflict is returned before the gateway is ever contacted
	expectStatus(t, w, http.StatusConflict)
	assert.Contains(t, w.Body.String(), "already registered")
	assertMockMet(t, mock)
}

func TestCreateEventOrderMissingCredentials(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns))

	w := performRequest(CreateEventOrder, testUser(), http.MethodPost,
		`{"event_id": 5}`, nil)

	expectStatus(t, w, http.StatusInternalServerError)
	// The response must not reveal which credential is missing
	assert.Contains(t, w.Body.String(), "Payment system unavailable")
	assert.NotContains(t, w.Body.String(), "RAZORPAY")
	assert.NotContains(t, w.Body.String(), "secret")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentRejectsForgedSignature(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))

	body := `{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "forged_signature_value"
	}`
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	expectStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, w.Body.String(), "Payment verification failed")
	// No transaction or registration row may be written on a mismatch
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentSuccess(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := utils.ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectCommit()

	body := fmt.Sprintf(`{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "%s"
	}`, sig)
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	expectStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "registration confirmed")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentDuplicateIsNoOp(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := utils.ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns).
			AddRow(21, 42, 5, 11, "completed", testTime))

	body := fmt.Sprintf(`{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "%s"
	}`, sig)
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	// Gateway retries must succeed without inserting a second row
	expectStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "already confirmed")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentConcurrentDuplicateInsert(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := utils.ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	// A concurrent verification won the insert race
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "idx_registration_user_event" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns).
			AddRow(21, 42, 5, 10, "completed", testTime))

	body := fmt.Sprintf(`{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "%s"
	}`, sig)
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	expectStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "already confirmed")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentTransactionInsertFails(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := utils.ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnError(fmt.Errorf("ERROR: could not extend file (SQLSTATE 53100)"))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "%s"
	}`, sig)
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	// No registration insert may be attempted if the transaction row fails
	expectStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, w.Body.String(), "Failed to record payment")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentRegistrationInsertFails(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "test_secret")

	sig := utils.ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))
	mock.ExpectQuery(`SELECT \* FROM "registrations"`).
		WillReturnRows(sqlmock.NewRows(registrationColumns))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	// Not a duplicate: the payment is captured but the slot is not recorded
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnError(fmt.Errorf("ERROR: could not extend file (SQLSTATE 53100)"))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "%s"
	}`, sig)
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	expectStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, w.Body.String(), "registration incomplete")
	assertMockMet(t, mock)
}

func TestVerifyEventPaymentMissingSecret(t *testing.T) {
	mock := newMockDB(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(eventRow(5, true, 299))

	body := `{
		"event_id": 5,
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "anything"
	}`
	w := performRequest(VerifyEventPayment, testUser(), http.MethodPost, body, nil)

	expectStatus(t, w, http.StatusInternalServerError)
	assert.Contains(t, w.Body.String(), "Payment system unavailable")
	assertMockMet(t, mock)
}
