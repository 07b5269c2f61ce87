package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponseValidation(t *testing.T) {
	body := []byte(`{"amount": ["must be positive"], "category": ["required", "unknown id"]}`)
	err := FromResponse(400, body)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be positive"}, ve.Fields["amount"])
	assert.Equal(t, []string{"required", "unknown id"}, ve.Fields["category"])
}

func TestFromResponseValidationBareStrings(t *testing.T) {
	body := []byte(`{"password": "Las contrasenas no coinciden."}`)
	err := FromResponse(400, body)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Las contrasenas no coinciden."}, ve.Fields["password"])
}

func TestFromResponseBadRequestWithoutFields(t *testing.T) {
	err := FromResponse(400, []byte("not json at all"))

	var ue *UnknownError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 400, ue.Status)
}

func TestFromResponseAuthentication(t *testing.T) {
	for _, status := range []int{401, 403} {
		err := FromResponse(status, []byte(`{"detail": "Token is invalid or expired"}`))

		var ae *AuthenticationError
		require.ErrorAs(t, err, &ae, "status %d", status)
		assert.Equal(t, status, ae.Status)
		assert.Equal(t, "Token is invalid or expired", ae.Detail)
	}
}

func TestFromResponseNotFound(t *testing.T) {
	err := FromResponse(404, []byte(`{"detail": "Not found."}`))

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Not found.", nfe.Detail)
}

func TestFromResponseUnknown(t *testing.T) {
	err := FromResponse(500, []byte("internal server error"))

	var ue *UnknownError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 500, ue.Status)
	assert.Contains(t, ue.Error(), "500")
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("b", "second")
	ve.Add("a", "first")

	// Fields render sorted so the message does not flap between runs.
	assert.Equal(t, "validation failed: a: first | b: second", ve.Error())
}

func TestValidationErrorAsTarget(t *testing.T) {
	var err error = NewValidation("amount", "must be positive")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"must be positive"}, ve.Fields["amount"])
}
