package dto_test

import (
	"testing"

	"github.com/aretw0/lumina/internal/dto"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	body := []byte(`{"idsToBeDeleted": ["d1", "d2"], "error": false, "errorMessage": null}`)
	res, status, err := dto.DecodeResponse[domain.MassDeleteResponse](body)
	require.NoError(t, err)
	assert.False(t, status.Error)
	assert.Equal(t, []string{"d1", "d2"}, res.IDsToBeDeleted)
}

func TestDecodeResponse_Error(t *testing.T) {
	body := []byte(`{"idsToBeDeleted": "garbage", "error": true, "errorMessage": "quota exceeded"}`)
	res, status, err := dto.DecodeResponse[domain.MassDeleteResponse](body)
	require.NoError(t, err, "payload is not decoded for error responses")
	assert.True(t, status.Error)
	assert.Equal(t, "quota exceeded", status.ErrorMessage)
	assert.Empty(t, res.IDsToBeDeleted)
}

func TestDecodeResponse_Invalid(t *testing.T) {
	_, _, err := dto.DecodeResponse[domain.CheckDataResponse]([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeResponse_RoundTrip(t *testing.T) {
	body, err := dto.EncodeResponse(domain.CheckDataResponse{InvalidData: []string{"x"}}, dto.Status{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"invalidData": ["x"], "error": false, "errorMessage": ""}`, string(body))

	body, err = dto.EncodeResponse(domain.CheckDataResponse{InvalidData: []string{"x"}}, dto.Status{Error: true, ErrorMessage: "nope"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": true, "errorMessage": "nope"}`, string(body))
}
