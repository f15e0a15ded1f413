package adapter

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debank-scanner/internal/errors"
)

func TestValidateResponse(t *testing.T) {
	t.Run("non-200 status is a transport error", func(t *testing.T) {
		_, err := ValidateResponse(&RawResponse{StatusCode: http.StatusTooManyRequests, Body: []byte(`{}`)})
		require.Error(t, err)
		assert.True(t, errors.IsTransportError(err))
		assert.Equal(t, http.StatusTooManyRequests, errors.StatusCode(err))
	})

	t.Run("error code in body is an api error", func(t *testing.T) {
		body := `{"error_code": 1, "error_msg": "invalid user address", "data": null}`
		_, err := ValidateResponse(&RawResponse{StatusCode: http.StatusOK, Body: []byte(body)})
		require.Error(t, err)
		assert.True(t, errors.IsAPIError(err))
		assert.Equal(t, "invalid user address", errors.Categorize(err).Message)
		assert.Equal(t, http.StatusOK, errors.StatusCode(err))
	})

	t.Run("string error code is an api error", func(t *testing.T) {
		body := `{"error_code": "rate_limited", "error_msg": "slow down"}`
		_, err := ValidateResponse(&RawResponse{StatusCode: http.StatusOK, Body: []byte(body)})
		assert.True(t, errors.IsAPIError(err))
	})

	t.Run("zero error code returns data unchanged", func(t *testing.T) {
		body := `{"error_code": 0, "data": {"total_usd_value": 12.5}}`
		data, err := ValidateResponse(&RawResponse{StatusCode: http.StatusOK, Body: []byte(body)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_usd_value": 12.5}`, string(data))
	})

	t.Run("missing error code returns data", func(t *testing.T) {
		data, err := ValidateResponse(&RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"data": ["eth", "bsc"]}`)})
		require.NoError(t, err)
		assert.JSONEq(t, `["eth", "bsc"]`, string(data))
	})

	t.Run("malformed body is invalid data", func(t *testing.T) {
		_, err := ValidateResponse(&RawResponse{StatusCode: http.StatusOK, Body: []byte(`<html>`)})
		assert.True(t, errors.IsInvalidDataError(err))
	})
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: ``, want: false},
		{raw: `null`, want: false},
		{raw: `false`, want: false},
		{raw: `0`, want: false},
		{raw: `""`, want: false},
		{raw: `[]`, want: false},
		{raw: `{}`, want: false},
		{raw: `true`, want: true},
		{raw: `1`, want: true},
		{raw: `"x"`, want: true},
		{raw: `{"id": "job-1"}`, want: true},
		{raw: `[1]`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy([]byte(tt.raw)))
		})
	}
}
