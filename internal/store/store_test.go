package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadDraftReturnsTemplateWhenEmpty(t *testing.T) {
	s := openTestStore(t)

	for _, scope := range []string{"problem-1", ScratchScope} {
		code, err := s.LoadDraft(scope, "python")
		if err != nil {
			t.Fatalf("LoadDraft(%q, python) failed: %v", scope, err)
		}
		if code != "# Write your solution here\n" {
			t.Errorf("python template for %q: got %q", scope, code)
		}

		code, err = s.LoadDraft(scope, "cpp")
		if err != nil {
			t.Fatalf("LoadDraft(%q, cpp) failed: %v", scope, err)
		}
		if code != "// Write your solution here\n" {
			t.Errorf("cpp template for %q: got %q", scope, code)
		}
	}
}

func TestDraftKeyIsolation(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveDraft("scope-a", "python", "print(1)"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	// A different language under the same scope must not see the draft.
	code, err := s.LoadDraft("scope-a", "cpp")
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if code == "print(1)" {
		t.Error("cpp draft returned the python draft")
	}

	// A different scope under the same language must not see it either.
	code, err = s.LoadDraft("scope-b", "python")
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if code == "print(1)" {
		t.Error("scope-b draft returned scope-a's draft")
	}
}

func TestSaveDraftLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveDraft("p", "python", "v1"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if err := s.SaveDraft("p", "python", "v2"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	code, err := s.LoadDraft("p", "python")
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if code != "v2" {
		t.Errorf("draft: got %q, want v2", code)
	}
}

func TestReviewCacheRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, _, ok, err := s.LoadReview("p"); err != nil || ok {
		t.Fatalf("LoadReview on empty store: ok=%v err=%v, want miss", ok, err)
	}

	if err := s.SaveReview("p", "looks good", 3); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}
	review, remaining, ok, err := s.LoadReview("p")
	if err != nil || !ok {
		t.Fatalf("LoadReview failed: ok=%v err=%v", ok, err)
	}
	if review != "looks good" || remaining != 3 {
		t.Errorf("review: got (%q, %d), want (looks good, 3)", review, remaining)
	}

	// A later review overwrites both the text and the quota.
	if err := s.SaveReview("p", "second pass", 2); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}
	review, remaining, _, err = s.LoadReview("p")
	if err != nil {
		t.Fatalf("LoadReview failed: %v", err)
	}
	if review != "second pass" || remaining != 2 {
		t.Errorf("review after overwrite: got (%q, %d), want (second pass, 2)", review, remaining)
	}
}

func TestCredentialsPersistAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetTokens("acc-1", "ref-1"); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	if s2.AccessToken() != "acc-1" || s2.RefreshToken() != "ref-1" {
		t.Errorf("tokens after reopen: got (%q, %q)", s2.AccessToken(), s2.RefreshToken())
	}

	if err := s2.ClearTokens(); err != nil {
		t.Fatalf("ClearTokens failed: %v", err)
	}
	if s2.AccessToken() != "" || s2.RefreshToken() != "" {
		t.Error("tokens not empty after ClearTokens")
	}
}
