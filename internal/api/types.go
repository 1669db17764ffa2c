package api

import (
	"encoding/json"
	"time"
)

// Judge-internal submission status codes.
const (
	StatusPending           = "P"
	StatusRunning           = "R"
	StatusAccepted          = "AC"
	StatusWrongAnswer       = "WA"
	StatusTimeLimitExceeded = "TLE"
	StatusRuntimeError      = "RE"
	StatusCompileError      = "CE"
	StatusInternalError     = "IE"
)

// IsTerminalStatus reports whether a submission status code will never
// change again.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusAccepted, StatusWrongAnswer, StatusTimeLimitExceeded,
		StatusRuntimeError, StatusCompileError, StatusInternalError:
		return true
	}
	return false
}

// StatusLabel expands a judge status code into a human-readable label.
// Unknown codes are returned unchanged.
func StatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusAccepted:
		return "Accepted"
	case StatusWrongAnswer:
		return "Wrong Answer"
	case StatusTimeLimitExceeded:
		return "Time Limit Exceeded"
	case StatusRuntimeError:
		return "Runtime Error"
	case StatusCompileError:
		return "Compile Error"
	case StatusInternalError:
		return "Internal Error"
	}
	return status
}

// ExecuteRequest is the body of POST /compiler/execute/.
type ExecuteRequest struct {
	Code      string `json:"code"`
	Language  string `json:"language"`
	InputData string `json:"input_data"`
}

// ExecuteResult is the canonical decoded result of an ad-hoc run.
//
// The judge returns either a flat body
//
//	{"status": ..., "output": "...", "time_ms": ...}
//
// or wraps the interesting fields inside the output key
//
//	{"status": ..., "output": {"output": "...", "status": ..., "time_ms": ...}}
//
// Both shapes decode into this one struct; the nested fields win when
// present and the outer ones fill the gaps.
type ExecuteResult struct {
	Output string
	Status string
	TimeMS *float64
}

// UnmarshalJSON decodes both the flat and the nested wire shape.
func (r *ExecuteResult) UnmarshalJSON(data []byte) error {
	var outer struct {
		Status string          `json:"status"`
		Output json.RawMessage `json:"output"`
		TimeMS *float64        `json:"time_ms"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}

	r.Output = ""
	r.Status = outer.Status
	r.TimeMS = outer.TimeMS

	if len(outer.Output) > 0 && string(outer.Output) != "null" {
		if outer.Output[0] == '{' {
			var nested struct {
				Output string   `json:"output"`
				Status string   `json:"status"`
				TimeMS *float64 `json:"time_ms"`
			}
			if err := json.Unmarshal(outer.Output, &nested); err != nil {
				return err
			}
			r.Output = nested.Output
			if nested.Status != "" {
				r.Status = nested.Status
			}
			if nested.TimeMS != nil {
				r.TimeMS = nested.TimeMS
			}
		} else {
			if err := json.Unmarshal(outer.Output, &r.Output); err != nil {
				return err
			}
		}
	}

	if r.Status == "" {
		r.Status = "Completed"
	}
	return nil
}

// SubmitRequest is the body of POST /compiler/submit/.
type SubmitRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	ProblemUUID string `json:"problem_uuid"`
}

// SubmitResponse carries the id assigned to a newly created submission.
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID int64  `json:"submission_id"`
	Status       string `json:"status"`
}

// Submission is one graded attempt as reported by the judge.
type Submission struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	Language    string    `json:"language"`
	Timestamp   time.Time `json:"timestamp"`
	Output      string    `json:"output"`
	PassedCases int       `json:"passed_cases"`
	TotalCases  int       `json:"total_cases"`
	Time        *float64  `json:"time"`
	Memory      *float64  `json:"memory"`
	Code        string    `json:"code"`
}

// ReviewRequest is the body of POST /compiler/ai-review/.
type ReviewRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	ProblemUUID string `json:"problem_uuid"`
}

// ReviewResponse carries the generated review and the caller's
// remaining daily quota for this problem.
type ReviewResponse struct {
	Review            string `json:"review"`
	RemainingRequests int    `json:"remaining_requests"`
}

// TokenPair is returned by login and token refresh. Refresh may be
// empty on refresh responses that rotate only the access token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ProblemSummary is one row of GET /problems.
type ProblemSummary struct {
	UUID       string `json:"uuid"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

// ProblemDetail is the body of GET /problems/{id}.
type ProblemDetail struct {
	UUID       string `json:"uuid"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Statement  string `json:"statement"`
}
