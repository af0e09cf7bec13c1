package ingestion

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestFailureKind(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{nil, "none"},
		{errors.Mark(errors.New("x"), ErrNoRule), "no_rule"},
		{errors.Mark(errors.New("x"), ErrRepository), "repository"},
		{errors.Mark(errors.New("x"), ErrFetchFailed), "fetch_failed"},
		{errors.Mark(errors.New("x"), ErrParseFailed), "parse_failed"},
		{errors.Mark(errors.New("x"), ErrStoreFailed), "store_failed"},
		{errors.New("unmarked"), "unknown"},
	}
	for _, c := range cases {
		if got := FailureKind(c.err); got != c.kind {
			t.Errorf("FailureKind(%v): got %v want %v", c.err, got, c.kind)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(errors.Mark(errors.New("x"), ErrNoRule)) {
		t.Error("no-rule cannot succeed on retry")
	}
	if Retryable(errors.Mark(errors.New("x"), ErrParseFailed)) {
		t.Error("same bytes, same outcome: parse failures are not retryable")
	}
	if !Retryable(errors.Mark(errors.New("x"), ErrFetchFailed)) {
		t.Error("fetch failures are transient")
	}
	if !Retryable(errors.Mark(errors.New("x"), ErrStoreFailed)) {
		t.Error("store failures are transient")
	}
}
