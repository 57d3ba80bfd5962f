package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRazorpaySignature(t *testing.T) {
	// Precomputed HMAC-SHA256("order_abc|pay_xyz", "test_secret")
	sig := ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")
	assert.Equal(t, "a734976b4a9aa4403181acd25d87b09ad8cb31f7d73be91e2bb9eb5c517ca319", sig)

	// Precomputed HMAC-SHA256("order_MhYz1a|pay_NqTt7b", "rzp_secret_9xK2")
	sig = ComputeRazorpaySignature("order_MhYz1a", "pay_NqTt7b", "rzp_secret_9xK2")
	assert.Equal(t, "3be8c9c579a32e68833b211f0e1fba40c8031806768cbf3dbf1210edf39ceb4f", sig)
}

func TestComputeRazorpaySignatureDeterministic(t *testing.T) {
	first := ComputeRazorpaySignature("order_1", "pay_1", "secret")
	second := ComputeRazorpaySignature("order_1", "pay_1", "secret")
	assert.Equal(t, first, second)

	// Any input change must change the digest
	assert.NotEqual(t, first, ComputeRazorpaySignature("order_2", "pay_1", "secret"))
	assert.NotEqual(t, first, ComputeRazorpaySignature("order_1", "pay_2", "secret"))
	assert.NotEqual(t, first, ComputeRazorpaySignature("order_1", "pay_1", "other"))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	sig := ComputeRazorpaySignature("order_abc", "pay_xyz", "test_secret")

	assert.True(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, "test_secret"))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", "forged", "test_secret"))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, "wrong_secret"))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_other", sig, "test_secret"))
}

func TestAmountInPaise(t *testing.T) {
	assert.Equal(t, 29900, AmountInPaise(299))
	assert.Equal(t, 0, AmountInPaise(0))
	assert.Equal(t, 9999, AmountInPaise(99.99))
	assert.Equal(t, 5, AmountInPaise(0.05))
}
