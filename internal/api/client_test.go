package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// memCreds is an in-memory CredentialStore for tests.
type memCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (c *memCreds) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

func (c *memCreds) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh
}

func (c *memCreds) SetTokens(access, refresh string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access, c.refresh = access, refresh
	return nil
}

func (c *memCreds) ClearTokens() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access, c.refresh = "", ""
	c.cleared = true
	return nil
}

func newTestClient(t *testing.T, serverURL string, creds CredentialStore) *Client {
	t.Helper()
	return NewClient(serverURL, 5*time.Second, creds, zap.NewNop())
}

func TestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &memCreds{access: "tok-1"})
	if _, err := client.Submissions(context.Background(), "abc"); err != nil {
		t.Fatalf("Submissions failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer tok-1")
	}
}

func TestRenewsOnceAndReplays(t *testing.T) {
	var refreshCalls, apiCalls int
	var refreshCookieSeen string

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		if ck, err := r.Cookie("oj_refresh_token"); err == nil {
			refreshCookieSeen = ck.Value
		}
		w.Write([]byte(`{"access":"tok-new"}`))
	})
	mux.HandleFunc("/compiler/submissions/", func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &memCreds{access: "tok-old", refresh: "refresh-1"}
	client := newTestClient(t, srv.URL, creds)

	if _, err := client.Submissions(context.Background(), "abc"); err != nil {
		t.Fatalf("Submissions failed after renewal: %v", err)
	}

	if refreshCalls != 1 {
		t.Errorf("refresh calls: got %d, want 1", refreshCalls)
	}
	if apiCalls != 2 {
		t.Errorf("api calls: got %d, want 2 (original + replay)", apiCalls)
	}
	if refreshCookieSeen != "refresh-1" {
		t.Errorf("refresh cookie: got %q, want the persisted credential", refreshCookieSeen)
	}
	if creds.AccessToken() != "tok-new" {
		t.Errorf("stored access token: got %q, want tok-new", creds.AccessToken())
	}
	// The renewal credential survives a refresh that rotates only the
	// access token.
	if creds.RefreshToken() != "refresh-1" {
		t.Errorf("stored refresh token: got %q, want refresh-1", creds.RefreshToken())
	}
}

func TestSecond401IsNotRetried(t *testing.T) {
	var refreshCalls, apiCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.Write([]byte(`{"access":"tok-new"}`))
	})
	mux.HandleFunc("/compiler/submissions/", func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		// Always reject: renewal succeeds but the replay fails too.
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv.URL, &memCreds{access: "tok-old", refresh: "r"})

	_, err := client.Submissions(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected an error when the replayed request is rejected")
	}
	if refreshCalls != 1 {
		t.Errorf("refresh calls: got %d, want exactly 1", refreshCalls)
	}
	if apiCalls != 2 {
		t.Errorf("api calls: got %d, want 2 (no second retry)", apiCalls)
	}
}

func TestRenewalFailureClearsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/compiler/submissions/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &memCreds{access: "tok-old", refresh: "r"}
	client := newTestClient(t, srv.URL, creds)

	_, err := client.Submissions(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected an error when renewal fails")
	}
	if !creds.cleared {
		t.Error("credentials were not cleared after failed renewal")
	}
}

func TestDecodeErrorPrefersStructuredMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"output":"NameError: name 'x' is not defined"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &memCreds{})
	_, err := client.Execute(context.Background(), ExecuteRequest{Code: "x", Language: "python"})
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type: got %T, want *Error", err)
	}
	if apiErr.Message != "NameError: name 'x' is not defined" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestSubmitReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Submission received","submission_id":42,"status":"Pending"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &memCreds{access: "tok"})
	id, err := client.Submit(context.Background(), SubmitRequest{
		Code: "print(1)", Language: "python", ProblemUUID: "p-1",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id != 42 {
		t.Errorf("submission id: got %d, want 42", id)
	}
}
