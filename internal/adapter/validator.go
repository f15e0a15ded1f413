package adapter

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/debank-scanner/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the wrapper DeBank puts around every payload
type envelope struct {
	ErrorCode jsoniter.RawMessage `json:"error_code"`
	ErrorMsg  string              `json:"error_msg"`
	Data      jsoniter.RawMessage `json:"data"`
}

// ValidateResponse returns the envelope's data, or the error the response represents
func ValidateResponse(resp *RawResponse) (jsoniter.RawMessage, error) {
	if resp.StatusCode != fasthttp.StatusOK {
		return nil, errors.NewTransportError(resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, errors.NewInvalidDataError("response body is not a JSON object", err)
	}

	if Truthy(env.ErrorCode) {
		return nil, errors.NewAPIError(resp.StatusCode, env.ErrorMsg)
	}

	return env.Data, nil
}

// Truthy reports whether a JSON value counts as set: not null, false, 0, "", [] or {}
func Truthy(raw jsoniter.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		return value != ""
	case []interface{}:
		return len(value) > 0
	case map[string]interface{}:
		return len(value) > 0
	default:
		return true
	}
}
