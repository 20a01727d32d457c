package objstore

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

func TestTranslate_APIErrors(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"NotFound", models.ErrNotFound},
		{"NoSuchKey", models.ErrNotFound},
		{"NoSuchUpload", models.ErrNotFound},
		{"InvalidPart", models.ErrIncomplete},
		{"InvalidPartOrder", models.ErrIncomplete},
		{"AccessDenied", models.ErrBackendFailure},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := translate("head object", &smithy.GenericAPIError{Code: tc.code, Message: "boom"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTranslate_TransportError(t *testing.T) {
	err := translate("get object", errors.New("connection refused"))
	assert.ErrorIs(t, err, models.ErrBackendFailure)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}
