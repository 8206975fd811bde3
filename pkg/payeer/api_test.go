package payeer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, body string) Response {
	t.Helper()
	var r Response
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&r))
	return r
}

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		body   string
		failed bool
	}{
		{`{}`, false},
		{`{"errors":null}`, false},
		{`{"errors":false}`, false},
		{`{"errors":""}`, false},
		{`{"errors":[]}`, false},
		{`{"errors":{}}`, false},
		{`{"errors":true}`, true},
		{`{"errors":"Access denied"}`, true},
		{`{"errors":["Invalid account"]}`, true},
		{`{"errors":{"sum":"too small"}}`, true},
		{`{"errors":1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, failed := decodeResponse(t, tt.body).Errors()
			assert.Equal(t, tt.failed, failed)
		})
	}
}

func TestResponse_Object(t *testing.T) {
	r := decodeResponse(t, `{"balance":{"USD":{"BUDGET":"1.00"}},"history":[],"list":["a","b"],"id":"7"}`)

	obj, err := r.Object("balance")
	require.NoError(t, err)
	assert.Contains(t, obj, "USD")

	obj, err = r.Object("history")
	require.NoError(t, err)
	assert.Empty(t, obj)

	obj, err = r.Object("list")
	require.NoError(t, err)
	assert.Equal(t, Response{"0": "a", "1": "b"}, obj)

	_, err = r.Object("id")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)

	_, err = r.Object("missing")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestResponse_Int64(t *testing.T) {
	r := decodeResponse(t, `{"n":42,"f":3.0,"s":" 17 ","neg":-5,"bad":"x","obj":{}}`)

	tests := []struct {
		key  string
		want int64
		ok   bool
	}{
		{"n", 42, true},
		{"f", 3, true},
		{"s", 17, true},
		{"neg", -5, true},
		{"bad", 0, false},
		{"obj", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := r.Int64(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.key)
		}
	}

	n, ok := Response{"plain": float64(9)}.Int64("plain")
	assert.True(t, ok)
	assert.Equal(t, int64(9), n)
}

func TestTransferParams_Values(t *testing.T) {
	v := TransferParams{Sum: "1.5", To: "P1000001"}.Values()
	assert.Equal(t, "1.5", v.Get("sum"))
	assert.Equal(t, "P1000001", v.Get("to"))
	assert.Equal(t, DefaultAPICurrency, v.Get("curIn"))
	assert.Equal(t, DefaultAPICurrency, v.Get("curOut"))
	assert.Len(t, v, 4)

	v = TransferParams{Sum: "1", To: "P1000001", Protect: true}.Values()
	assert.Equal(t, "Y", v.Get("protect"))
	assert.False(t, v.Has("protectPeriod"))
	assert.False(t, v.Has("protectCode"))
}

func TestOutputParams_Values(t *testing.T) {
	v := OutputParams{PaySystem: "26808", Account: "4111", SumIn: "10", CurIn: "RUB"}.Values()
	assert.Equal(t, "26808", v.Get("ps"))
	assert.Equal(t, "4111", v.Get("param_ACCOUNT_NUMBER"))
	assert.Equal(t, "10", v.Get("sumIn"))
	assert.Equal(t, "RUB", v.Get("curIn"))
	assert.Equal(t, "USD", v.Get("curOut"))
}

func TestHistoryParams_Values(t *testing.T) {
	assert.Empty(t, HistoryParams{}.Values())

	v := HistoryParams{
		Sort:   "asc",
		Count:  50,
		From:   "2024-01-01 00:00:00",
		To:     "2024-02-01 00:00:00",
		Type:   "outgoing",
		Append: "1234",
	}.Values()
	assert.Equal(t, "asc", v.Get("sort"))
	assert.Equal(t, "50", v.Get("count"))
	assert.Equal(t, "2024-01-01 00:00:00", v.Get("from"))
	assert.Equal(t, "2024-02-01 00:00:00", v.Get("to"))
	assert.Equal(t, "outgoing", v.Get("type"))
	assert.Equal(t, "1234", v.Get("append"))
}

func TestParseHistoryParams(t *testing.T) {
	p, err := ParseHistoryParams(map[string]string{"sort": "desc", "count": "20", "type": "incoming"})
	require.NoError(t, err)
	assert.Equal(t, HistoryParams{Sort: "desc", Count: 20, Type: "incoming"}, p)

	_, err = ParseHistoryParams(map[string]string{"count": "many"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseHistoryParams(map[string]string{"limit": "5"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "limit", verr.Field)
}

func TestValidateStruct_HistoryParams(t *testing.T) {
	v := NewValidator(nil)

	assert.NoError(t, ValidateStruct(v, HistoryParams{}))
	assert.NoError(t, ValidateStruct(v, HistoryParams{Sort: "asc", Count: 1000}))

	err := ValidateStruct(v, HistoryParams{Type: "sideways"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Equal(t, "must be one of incoming outgoing", verr.Reason)
}

func TestValidateStruct_TransferParams(t *testing.T) {
	v := NewValidator(nil)

	assert.NoError(t, ValidateStruct(v, TransferParams{Sum: "0.001", To: "P123456789012"}))

	err := ValidateStruct(v, TransferParams{Sum: "1", To: "P123"})
	assert.ErrorIs(t, err, ErrInvalidWallet)

	err = ValidateStruct(v, TransferParams{Sum: "1", To: "P1000001", CurIn: "usd"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cur_in", verr.Field)

	err = ValidateStruct(v, TransferParams{Sum: "1", To: "P1000001", Protect: true, ProtectPeriod: 31})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "protect_period", verr.Field)
}
