package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_TypeAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		typ    Type
		status int
	}{
		{"validation", ValidationError("missing required query parameter 'q'"), TypeValidation, 400},
		{"not found", NotFoundError("drug not found"), TypeNotFound, 404},
		{"internal", InternalError("drug search failed", errors.New("db closed")), TypeInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	cause := errors.New("s3 request timeout")
	err := InternalError("failed to fetch sentiment object", cause)

	assert.Contains(t, err.Error(), "failed to fetch sentiment object")
	assert.Contains(t, err.Error(), "s3 request timeout")
	assert.ErrorIs(t, err, cause)
}

func TestError_NoCause(t *testing.T) {
	err := ValidationError("limit must be a positive integer")

	assert.Equal(t, "validation: limit must be a positive integer", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestWithField_Chains(t *testing.T) {
	err := ValidationError("missing required query parameter 'drug_name'").
		WithField("drug_name", "").
		WithField("limit", 10)

	require.Len(t, err.Fields, 2)
	assert.Equal(t, "", err.Fields["drug_name"])
	assert.Equal(t, 10, err.Fields["limit"])
}

func TestResponse_OmitsFieldsAndCause(t *testing.T) {
	err := InternalError("drug lookup failed", errors.New("disk gone")).
		WithField("drugbank_id", "DB00945")

	resp := err.response()
	assert.Equal(t, "drug lookup failed", resp.Error)
	assert.Equal(t, TypeInternal, resp.Type)
}

func TestAsError_PassthroughAndWrap(t *testing.T) {
	typed := NotFoundError("drug not found")
	assert.Same(t, typed, asError(typed))

	wrapped := asError(fmt.Errorf("scan failed"))
	assert.Equal(t, TypeInternal, wrapped.Type)
	assert.Equal(t, "internal server error", wrapped.Message)
	assert.Contains(t, wrapped.Error(), "scan failed")
}

func TestAsError_UnwrapsNestedError(t *testing.T) {
	inner := ValidationError("count must be a positive integer")
	outer := fmt.Errorf("handler: %w", inner)

	assert.Same(t, inner, asError(outer))
}
