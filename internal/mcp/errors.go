package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/committee/internal/apperror"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrUnauthenticated indicates a tool call without an acting user.
var ErrUnauthenticated = apperror.Authorization("no acting user")

// APIError is the body of a failed tool result.
type APIError struct {
	Kind    apperror.Kind         `json:"kind"`
	Message string                `json:"message"`
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// MapError classifies err for a tool result. Persistence failures get a
// generic message.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	kind := apperror.KindOf(err)
	if kind == apperror.KindPersistence {
		return &APIError{Kind: kind, Message: "internal error"}
	}
	return &APIError{Kind: kind, Message: err.Error(), Fields: apperror.FieldsOf(err)}
}

func errorResult(logger *slog.Logger, tool string, err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr.Kind == apperror.KindPersistence && logger != nil {
		logger.Error("tool failed", "tool", tool, "error", err)
	}
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

// decodeError recovers the APIError from a failed tool result.
func decodeError(res *sdkmcp.CallToolResult) (*APIError, error) {
	if res == nil || !res.IsError || len(res.Content) == 0 {
		return nil, errors.New("not an error result")
	}
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	if !ok {
		return nil, errors.New("error result has no text content")
	}
	var apiErr APIError
	if err := json.Unmarshal([]byte(text.Text), &apiErr); err != nil {
		return nil, err
	}
	return &apiErr, nil
}
