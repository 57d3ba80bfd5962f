package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"
)

// AmountInPaise converts a rupee price to the integer paise amount the
// gateway expects. Rounded to absorb float representation error.
func AmountInPaise(price float64) int {
	return int(math.Round(price * 100))
}

// ComputeRazorpaySignature returns the hex-encoded HMAC-SHA256 of
// "orderID|paymentID" keyed by the gateway secret. This is the signature
// Razorpay attaches to a successful checkout.
func ComputeRazorpaySignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyRazorpaySignature checks a client-supplied signature against the
// recomputed one. Comparison is constant-time.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	expected := ComputeRazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
