package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itchan-dev/forum/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidate(t *testing.T) {
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
		Field2 int    `json:"field2"`
	}

	tests := []struct {
		name        string
		requestBody string
		target      interface{}
		expectedErr *errors.ErrorWithStatusCode
	}{
		{
			name:        "Valid JSON and Validation",
			requestBody: `{"field1": "value", "field2": 123}`,
			target:      &TestStruct{},
			expectedErr: nil,
		},
		{
			name:        "Valid JSON and Validation [2]",
			requestBody: `{"field1": "value"}`,
			target:      &TestStruct{},
			expectedErr: nil,
		},
		{
			name:        "Invalid JSON",
			requestBody: `{"field1": "value", "field2": 123`, // Missing closing brace
			target:      &TestStruct{},
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
		{
			name:        "Missing Required Field",
			requestBody: `{"field2": 123}`,
			target:      &TestStruct{},
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400},
		},
		{
			name:        "Empty Body",
			requestBody: "",
			target:      &TestStruct{},
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tt.requestBody)))

			err := DecodeValidate(req.Body, tt.target)

			if tt.expectedErr == nil {
				assert.NoError(t, err, "Expected no error")
			} else {
				e, ok := err.(*errors.ErrorWithStatusCode)
				require.True(t, ok, "Error should be ErrorWithStatusCode")
				assert.Equal(t, tt.expectedErr.Message, e.Message, "Error message mismatch")
				assert.Equal(t, tt.expectedErr.StatusCode, e.StatusCode, "Status code mismatch")
			}
		})
	}
}

func TestDecodeValidate_TooLarge(t *testing.T) {
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
	}
	body := fmt.Sprintf(`{"field1": "%s"}`, strings.Repeat("a", 100))
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 32)

	err := DecodeValidate(req.Body, &TestStruct{})

	e, ok := err.(*errors.ErrorWithStatusCode)
	require.True(t, ok, "Error should be ErrorWithStatusCode")
	assert.Equal(t, http.StatusRequestEntityTooLarge, e.StatusCode)
	assert.Equal(t, "Body is larger than 32 bytes", e.Message)
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "with status code",
			err:          &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized},
			expectedCode: http.StatusUnauthorized,
			expectedBody: "Please sign-in",
		},
		{
			name:         "validation",
			err:          &errors.ValidationError{Field: "title", Message: "is empty"},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Validation error: title: is empty",
		},
		{
			name:         "wrapped not found",
			err:          fmt.Errorf("append: %w", &errors.NotFoundError{Id: 7}),
			expectedCode: http.StatusNotFound,
			expectedBody: "discussion 7 not found",
		},
		{
			name:         "internal",
			err:          fmt.Errorf("lock poisoned"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteErrorAndStatusCode(rr, tt.err)
			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody+"\n", rr.Body.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]int{"id": 4})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id": 4}`, rr.Body.String())
}
