package s3

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

func TestClassify_NoSuchKey(t *testing.T) {
	err := classify("agg/aspirin.json", &types.NoSuchKey{})
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestClassify_NoSuchBucket(t *testing.T) {
	err := classify("agg/aspirin.json", &types.NoSuchBucket{})
	assert.ErrorIs(t, err, domain.ErrBucketNotFound)
}

func TestClassify_APIErrorCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"NoSuchKey", domain.ErrObjectNotFound},
		{"NotFound", domain.ErrObjectNotFound},
		{"NoSuchBucket", domain.ErrBucketNotFound},
		{"AccessDenied", domain.ErrAccessDenied},
		{"InvalidAccessKeyId", domain.ErrAccessDenied},
		{"SignatureDoesNotMatch", domain.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			apiErr := &smithy.GenericAPIError{Code: tt.code, Message: "denied"}
			err := classify("agg/aspirin.json", apiErr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassify_UnknownErrorPassesThrough(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := classify("agg/aspirin.json", cause)

	assert.False(t, errors.Is(err, domain.ErrObjectNotFound))
	assert.False(t, errors.Is(err, domain.ErrAccessDenied))
	assert.ErrorIs(t, err, cause)
}

func TestClassify_KeepsKeyInMessage(t *testing.T) {
	err := classify("agg/aspirin.json", &types.NoSuchKey{})
	assert.Contains(t, err.Error(), "agg/aspirin.json")
}
