package dto

import (
	"encoding/json"
	"fmt"
)

// Status is the error envelope shared by every AI response body.
// The payload fields sit next to it at the top level.
type Status struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errorMessage"`
}

// DecodeResponse splits a response body into its status and payload.
func DecodeResponse[T any](body []byte) (T, Status, error) {
	var payload T
	var status Status
	if err := json.Unmarshal(body, &status); err != nil {
		return payload, status, fmt.Errorf("failed to decode response status: %w", err)
	}
	if status.Error {
		return payload, status, nil
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, status, fmt.Errorf("failed to decode response payload: %w", err)
	}
	return payload, status, nil
}

// EncodeResponse builds a response body: the payload fields plus the status.
func EncodeResponse(payload any, status Status) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if !status.Error && payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("payload must encode as an object: %w", err)
		}
	}
	fields["error"], _ = json.Marshal(status.Error)
	fields["errorMessage"], _ = json.Marshal(status.ErrorMessage)
	return json.Marshal(fields)
}
