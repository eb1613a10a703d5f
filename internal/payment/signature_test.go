package payment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func signedHeader(body []byte, ts time.Time) string {
	unix := fmt.Sprintf("%d", ts.Unix())
	return fmt.Sprintf("t=%s,v1=%s", unix, ComputeSignature(body, unix, testSecret))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	assert.NoError(t, VerifySignature(body, signedHeader(body, time.Now()), testSecret))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	header := signedHeader(body, time.Now())

	tampered := []byte(`{"id":"evt_2"}`)
	assert.ErrorIs(t, VerifySignature(tampered, header, testSecret), ErrBadSignature)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	header := signedHeader(body, time.Now())

	assert.ErrorIs(t, VerifySignature(body, header, "whsec_other"), ErrBadSignature)
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	body := []byte(`{}`)
	header := signedHeader(body, time.Now().Add(-10*time.Minute))

	assert.ErrorIs(t, VerifySignature(body, header, testSecret), ErrStaleTimestamp)
}

func TestVerifySignatureRejectsMalformedHeader(t *testing.T) {
	body := []byte(`{}`)

	assert.ErrorIs(t, VerifySignature(body, "", testSecret), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature(body, "v1=abc", testSecret), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature(body, "t=notanumber,v1=abc", testSecret), ErrBadSignature)
}
