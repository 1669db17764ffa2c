package api

import (
	"encoding/json"
	"testing"
)

func TestExecuteResultNestedShape(t *testing.T) {
	body := `{"status":"Completed","output":{"output":"4\n","status":"AC","time_ms":12}}`

	var result ExecuteResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("unmarshal nested shape: %v", err)
	}

	if result.Output != "4\n" {
		t.Errorf("Output: got %q, want %q", result.Output, "4\n")
	}
	if result.Status != "AC" {
		t.Errorf("Status: got %q, want AC", result.Status)
	}
	if result.TimeMS == nil || *result.TimeMS != 12 {
		t.Errorf("TimeMS: got %v, want 12", result.TimeMS)
	}
}

func TestExecuteResultFlatShape(t *testing.T) {
	body := `{"status":"Completed","output":"4\n","time_ms":12}`

	var result ExecuteResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("unmarshal flat shape: %v", err)
	}

	if result.Output != "4\n" {
		t.Errorf("Output: got %q, want %q", result.Output, "4\n")
	}
	if result.Status != "Completed" {
		t.Errorf("Status: got %q, want Completed", result.Status)
	}
	if result.TimeMS == nil || *result.TimeMS != 12 {
		t.Errorf("TimeMS: got %v, want 12", result.TimeMS)
	}
}

func TestExecuteResultNestedFieldsWin(t *testing.T) {
	body := `{"status":"Completed","time_ms":99,"output":{"output":"x","status":"AC","time_ms":12}}`

	var result ExecuteResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Status != "AC" {
		t.Errorf("Status: got %q, want nested AC", result.Status)
	}
	if *result.TimeMS != 12 {
		t.Errorf("TimeMS: got %v, want nested 12", *result.TimeMS)
	}
}

func TestExecuteResultDefaultsStatus(t *testing.T) {
	var result ExecuteResult
	if err := json.Unmarshal([]byte(`{"output":"hi\n"}`), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Status != "Completed" {
		t.Errorf("Status: got %q, want Completed default", result.Status)
	}
	if result.TimeMS != nil {
		t.Errorf("TimeMS: got %v, want nil", result.TimeMS)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []string{"AC", "WA", "TLE", "RE", "CE", "IE"}
	for _, status := range terminal {
		if !IsTerminalStatus(status) {
			t.Errorf("IsTerminalStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"P", "R", "", "weird"} {
		if IsTerminalStatus(status) {
			t.Errorf("IsTerminalStatus(%q) = true, want false", status)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"AC":      "Accepted",
		"WA":      "Wrong Answer",
		"TLE":     "Time Limit Exceeded",
		"RE":      "Runtime Error",
		"CE":      "Compile Error",
		"IE":      "Internal Error",
		"P":       "Pending",
		"R":       "Running",
		"unknown": "unknown",
	}
	for code, want := range cases {
		if got := StatusLabel(code); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", code, got, want)
		}
	}
}
