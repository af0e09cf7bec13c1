package ingestion

import "github.com/cockroachdb/errors"

// Failure kinds of an ingestion attempt. Every terminal failure returned by
// the orchestrator is marked with exactly one of these, so callers classify
// with errors.Is and decide whether redelivery can help.
var (
	// ErrNoRule marks attempts whose key matched no ingestion rule. Retrying
	// without a rule change cannot succeed.
	ErrNoRule = errors.New("no matching ingestion rule")

	// ErrRepository marks failures of the rule lookup itself, distinct from a
	// successful lookup with zero matches.
	ErrRepository = errors.New("ingestion rule lookup failed")

	// ErrFetchFailed marks object retrieval failures; transient, eligible for
	// caller-level retry.
	ErrFetchFailed = errors.New("object fetch failed")

	// ErrParseFailed marks converter failures; same bytes, same outcome, so
	// not worth retrying.
	ErrParseFailed = errors.New("file parsing failed")

	// ErrStoreFailed marks insert failures. Eligible for caller-level retry,
	// but an unspecified prefix of documents may already be persisted.
	ErrStoreFailed = errors.New("document storage failed")
)

// FailureKind names the failure kind of an attempt error, for logs and metric
// labels. Returns "none" for nil.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNoRule):
		return "no_rule"
	case errors.Is(err, ErrRepository):
		return "repository"
	case errors.Is(err, ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, ErrParseFailed):
		return "parse_failed"
	case errors.Is(err, ErrStoreFailed):
		return "store_failed"
	default:
		return "unknown"
	}
}

// Retryable reports whether redelivering the same file reference could lead to
// a different outcome.
func Retryable(err error) bool {
	return errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrStoreFailed) || errors.Is(err, ErrRepository)
}
