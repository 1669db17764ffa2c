package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Execute runs code ad hoc against the judge without grading it.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	var result ExecuteResult
	if err := c.do(ctx, http.MethodPost, "/compiler/execute/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Submit creates a graded submission and returns its id. Grading is
// asynchronous; poll Submission until a terminal status appears.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (int64, error) {
	var resp SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/compiler/submit/", req, &resp); err != nil {
		return 0, err
	}
	return resp.SubmissionID, nil
}

// Submission fetches the current state of one graded attempt.
func (c *Client) Submission(ctx context.Context, id int64) (*Submission, error) {
	var sub Submission
	path := fmt.Sprintf("/compiler/submission/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Submissions lists the caller's past attempts for one problem, newest
// first.
func (c *Client) Submissions(ctx context.Context, problemUUID string) ([]Submission, error) {
	var subs []Submission
	path := "/compiler/submissions/?problem_uuid=" + url.QueryEscape(problemUUID)
	if err := c.do(ctx, http.MethodGet, path, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Review requests an AI-generated review of the given code.
func (c *Client) Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error) {
	var resp ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/compiler/ai-review/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Problems lists all available problems.
func (c *Client) Problems(ctx context.Context) ([]ProblemSummary, error) {
	var probs []ProblemSummary
	if err := c.do(ctx, http.MethodGet, "/problems", nil, &probs); err != nil {
		return nil, err
	}
	return probs, nil
}

// Problem fetches a single problem with its statement.
func (c *Client) Problem(ctx context.Context, uuid string) (*ProblemDetail, error) {
	var prob ProblemDetail
	if err := c.do(ctx, http.MethodGet, "/problems/"+url.PathEscape(uuid), nil, &prob); err != nil {
		return nil, err
	}
	return &prob, nil
}

// Login exchanges credentials for a token pair and persists it.
// The server also sets the refresh cookie, which the jar retains for
// in-process renewals.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/token/", body, &pair); err != nil {
		return err
	}
	if err := c.creds.SetTokens(pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

// Logout erases the persisted credential state.
func (c *Client) Logout() error {
	return c.creds.ClearTokens()
}
