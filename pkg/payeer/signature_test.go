package payeer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var upperHex64 = regexp.MustCompile(`^[0-9A-F]{64}$`)

func TestSign_KnownVectors(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{
			name:   "empty input",
			fields: nil,
			want:   "E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855",
		},
		{
			name:   "checkout fields",
			fields: []string{"12345", "1001", "10.00", "USD", "VGVzdCBvcmRlcg==", "secret"},
			want:   "60626623E2CB9B4EA9527F7E6197CFF399E4BE3ABE674E344042F8AEC09C2E86",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sign(tt.fields...))
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	fields := []string{"12345", "1001", "10.00", "USD", "VGVzdCBvcmRlcg==", "secret"}

	first := Sign(fields...)
	second := Sign(fields...)

	assert.Equal(t, first, second)
	assert.Regexp(t, upperHex64, first)
}

func TestSign_EveryFieldChangesOutput(t *testing.T) {
	base := []string{"12345", "1001", "10.00", "USD", "VGVzdCBvcmRlcg==", "secret"}
	baseSig := Sign(base...)

	for i := range base {
		changed := append([]string(nil), base...)
		changed[i] += "x"
		assert.NotEqual(t, baseSig, Sign(changed...), "field %d did not affect the signature", i)
	}
}

func TestSign_OrderSensitive(t *testing.T) {
	assert.NotEqual(t, Sign("a", "b", "c"), Sign("c", "b", "a"))
	assert.NotEqual(t, Sign("1001", "10.00"), Sign("10.00", "1001"))
}

func TestVerifySignature(t *testing.T) {
	sig := Sign("a", "b", "secret")

	assert.True(t, VerifySignature(sig, "a", "b", "secret"))
	assert.False(t, VerifySignature(sig, "a", "b", "other"))
	assert.False(t, VerifySignature(sig, "a", "b"))
	assert.False(t, VerifySignature("", "a", "b", "secret"))
}
