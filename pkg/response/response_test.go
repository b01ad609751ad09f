package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFailureWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	ValidationError("invalid", []FieldError{{Field: "hours", Message: "must be at most 24"}}).Write(resp)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != ContentType {
		t.Fatalf("missing content type: %s", got)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded["success"] != false || decoded["error"] != "invalid" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
	if _, ok := decoded["status"]; ok {
		t.Fatalf("status must not be serialized: %+v", decoded)
	}
	if errs, ok := decoded["errors"].([]any); !ok || len(errs) != 1 {
		t.Fatalf("field errors missing: %+v", decoded)
	}
}

func TestSuccessWritesNullData(t *testing.T) {
	resp := httptest.NewRecorder()
	OK(resp, nil, "deleted")

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	data, present := decoded["data"]
	if !present || data != nil {
		t.Fatalf("expected explicit null data, got %+v", decoded)
	}
	if decoded["success"] != true || decoded["message"] != "deleted" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestCreatedStatus(t *testing.T) {
	resp := httptest.NewRecorder()
	Created(resp, map[string]int{"id": 1}, "")

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if _, ok := decoded["message"]; ok {
		t.Fatalf("empty message should be omitted: %+v", decoded)
	}
}
