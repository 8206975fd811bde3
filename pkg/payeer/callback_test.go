package payeer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	callbackSecret = "secret"
	allowedIP      = "185.71.65.92"
)

type CallbackVerifierTestSuite struct {
	suite.Suite
	verifier *CallbackVerifier
}

func (s *CallbackVerifierTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v, err := NewCallbackVerifier(callbackSecret, []string{allowedIP, "10.0.0.0/8"}, logger)
	s.Require().NoError(err)
	s.verifier = v
}

// signedForm returns a well-formed successful callback signed with callbackSecret.
func signedForm() map[string]string {
	form := map[string]string{
		FieldOperationID:      "1234567",
		FieldOperationPS:      "2609",
		FieldOperationDate:    "21.12.2023 10:00:00",
		FieldOperationPayDate: "21.12.2023 10:00:05",
		FieldShop:             "12345",
		FieldOrderID:          "1001",
		FieldAmount:           "10.00",
		FieldCurrency:         "USD",
		FieldDescription:      EncodeDescription("Test order"),
		FieldStatus:           StatusSuccess,
	}
	resign(form)
	return form
}

func resign(form map[string]string) {
	values := make([]string, 0, len(CallbackFields)+2)
	for _, f := range CallbackFields {
		values = append(values, form[f])
	}
	if p := form[FieldParams]; p != "" {
		values = append(values, p)
	}
	form[FieldSign] = Sign(append(values, callbackSecret)...)
}

func (s *CallbackVerifierTestSuite) TestAccepts() {
	res, err := s.verifier.Verify(signedForm(), allowedIP)
	s.Require().NoError(err)

	s.True(res.Accepted)
	s.NoError(res.Reason)
	s.Equal("1001|success", res.Body)
	s.Equal("1001", res.Payload.OrderID)
	s.Equal("10.00", res.Payload.Amount)
}

func (s *CallbackVerifierTestSuite) TestAcceptsWithParams() {
	form := signedForm()
	form[FieldParams] = `{"reference":{"var1":"1"}}`
	resign(form)

	res, err := s.verifier.Verify(form, allowedIP)
	s.Require().NoError(err)
	s.True(res.Accepted)
	s.Equal(`{"reference":{"var1":"1"}}`, res.Payload.Params)
}

func (s *CallbackVerifierTestSuite) TestAcceptsFromAllowedPrefix() {
	res, err := s.verifier.Verify(signedForm(), "10.1.2.3")
	s.Require().NoError(err)
	s.True(res.Accepted)
}

func (s *CallbackVerifierTestSuite) TestSingleFieldCorruptionRejects() {
	tests := []struct {
		name   string
		mutate func(form map[string]string)
		reason error
	}{
		{
			name:   "wrong status",
			mutate: func(f map[string]string) { f[FieldStatus] = "fail"; resign(f) },
			reason: ErrPaymentNotSuccessful,
		},
		{
			name:   "wrong signature",
			mutate: func(f map[string]string) { f[FieldSign] = Sign("forged") },
			reason: ErrSignatureMismatch,
		},
		{
			name:   "lowercase signature",
			mutate: func(f map[string]string) { f[FieldSign] = "a" + f[FieldSign][1:] },
			reason: ErrSignatureMismatch,
		},
		{
			name:   "tampered amount",
			mutate: func(f map[string]string) { f[FieldAmount] = "1000.00" },
			reason: ErrSignatureMismatch,
		},
		{
			name:   "missing signature",
			mutate: func(f map[string]string) { delete(f, FieldSign) },
			reason: ErrSignatureMismatch,
		},
		{
			name:   "empty operation id",
			mutate: func(f map[string]string) { f[FieldOperationID] = ""; resign(f) },
			reason: ErrMissingOperationID,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			form := signedForm()
			tt.mutate(form)

			res, err := s.verifier.Verify(form, allowedIP)
			s.Require().NoError(err)
			s.False(res.Accepted)
			s.ErrorIs(res.Reason, tt.reason)
			s.Equal("1001|error", res.Body)
		})
	}
}

// The secret key must be the last signed field: a signature over the
// callback values alone has to be rejected.
func (s *CallbackVerifierTestSuite) TestSignatureWithoutSecretKeyRejected() {
	form := signedForm()
	values := make([]string, 0, len(CallbackFields))
	for _, f := range CallbackFields {
		values = append(values, form[f])
	}
	form[FieldSign] = Sign(values...)

	res, err := s.verifier.Verify(form, allowedIP)
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.ErrorIs(res.Reason, ErrSignatureMismatch)
}

func (s *CallbackVerifierTestSuite) TestForbiddenIP() {
	for _, ip := range []string{"1.2.3.4", "", "not-an-ip", "185.71.65.93"} {
		res, err := s.verifier.Verify(signedForm(), ip)
		s.Nil(res, "ip %q", ip)
		s.ErrorIs(err, ErrForbiddenIP, "ip %q", ip)
	}
}

func (s *CallbackVerifierTestSuite) TestMissingFieldsDefaultToEmpty() {
	res, err := s.verifier.Verify(map[string]string{}, allowedIP)
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.ErrorIs(res.Reason, ErrMissingOperationID)
	s.Equal("|error", res.Body)
	s.Equal(CallbackPayload{}, res.Payload)
}

func TestCallbackVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(CallbackVerifierTestSuite))
}

func TestNewCallbackVerifier_InvalidEntries(t *testing.T) {
	_, err := NewCallbackVerifier("k", []string{"300.1.1.1"}, nil)
	assert.Error(t, err)

	_, err = NewCallbackVerifier("k", []string{"10.0.0.0/33"}, nil)
	assert.Error(t, err)
}

func TestCallbackVerifier_IsAllowed_IPv4Mapped(t *testing.T) {
	v, err := NewCallbackVerifier("k", []string{allowedIP}, nil)
	require.NoError(t, err)

	assert.True(t, v.IsAllowed("::ffff:185.71.65.92"))
	assert.False(t, v.IsAllowed("::1"))
}

func TestCallbackPayload_SignedValues(t *testing.T) {
	p := ExtractCallbackPayload(signedForm())
	assert.Len(t, p.SignedValues(), len(CallbackFields))

	p.Params = "x"
	values := p.SignedValues()
	assert.Len(t, values, len(CallbackFields)+1)
	assert.Equal(t, "x", values[len(values)-1])
}
