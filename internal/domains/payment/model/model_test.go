package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kost/internal/domains/payment/model"
)

func TestTransactionStatus_Outcome(t *testing.T) {
	tests := []struct {
		status model.TransactionStatus
		want   model.Outcome
	}{
		{model.TransactionSettlement, model.OutcomeSettled},
		{model.TransactionCapture, model.OutcomeSettled},
		{"SETTLEMENT", model.OutcomeSettled},
		{model.TransactionCancel, model.OutcomeFailed},
		{model.TransactionExpire, model.OutcomeFailed},
		{model.TransactionDeny, model.OutcomeFailed},
		{model.TransactionPending, model.OutcomePending},
		{"refund", model.OutcomeUnknown},
		{"", model.OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Outcome())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "settled", model.OutcomeSettled.String())
	assert.Equal(t, "failed", model.OutcomeFailed.String())
	assert.Equal(t, "pending", model.OutcomePending.String())
	assert.Equal(t, "unknown", model.Outcome(42).String())
}

func TestSignature(t *testing.T) {
	// sha512("ORDER-1" + "200" + "10000.00" + "key")
	signature := model.Signature("ORDER-1", "200", "10000.00", "key")

	assert.Len(t, signature, 128)
	assert.Equal(t, signature, model.Signature("ORDER-1", "200", "10000.00", "key"))
	assert.NotEqual(t, signature, model.Signature("ORDER-1", "201", "10000.00", "key"))
}

func TestVerifySignature(t *testing.T) {
	signature := model.Signature("ORDER-1", "200", "10000.00", "key")

	assert.True(t, model.VerifySignature(signature, "ORDER-1", "200", "10000.00", "key"))
	assert.True(t, model.VerifySignature(strings.ToUpper(signature), "ORDER-1", "200", "10000.00", "key"))
	assert.False(t, model.VerifySignature(signature, "ORDER-1", "200", "10000.00", "other-key"))
	assert.False(t, model.VerifySignature(signature, "ORDER-2", "200", "10000.00", "key"))
	assert.False(t, model.VerifySignature("", "ORDER-1", "200", "10000.00", "key"))
}
