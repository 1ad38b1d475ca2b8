package model

import "testing"

func TestPageStatusTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status PageStatus
		want   bool
	}{
		{PagePending, false},
		{PageCrawled, true},
		{PageError, true},
		{PageSkipped, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionStatusValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status SessionStatus
		want   bool
	}{
		{SessionRunning, true},
		{SessionComplete, true},
		{SessionInterrupted, true},
		{SessionStatus("queued"), false},
		{SessionStatus(""), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	t.Run("empty body has empty hash", func(t *testing.T) {
		t.Parallel()

		if got := HashContent(nil); got != "" {
			t.Errorf("HashContent(nil) = %q, want empty", got)
		}
	})

	t.Run("same body produces same hash", func(t *testing.T) {
		t.Parallel()

		a := HashContent([]byte("<html></html>"))
		b := HashContent([]byte("<html></html>"))
		if a != b {
			t.Errorf("hashes differ: %q vs %q", a, b)
		}
		if len(a) != 64 {
			t.Errorf("hash length = %d, want 64 hex chars", len(a))
		}
	})

	t.Run("different bodies produce different hashes", func(t *testing.T) {
		t.Parallel()

		a := HashContent([]byte("page one"))
		b := HashContent([]byte("page two"))
		if a == b {
			t.Error("expected different hashes for different bodies")
		}
	})
}
