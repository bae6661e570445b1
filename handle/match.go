package handle

import (
	"regexp"
	"strings"

	"github.com/japaneseTemmie/os-extras/errors"
)

// MatchMode selects how a query string is compared against candidates in
// Find and Grep. The two strategies are explicit; the query's type never
// decides its interpretation.
type MatchMode int

const (
	// MatchLiteral matches when the candidate contains the query as a
	// plain substring. A query equal to the full candidate matches too.
	MatchLiteral MatchMode = iota

	// MatchPattern treats the query as a regular expression and matches
	// when the candidate contains any match of it (unanchored).
	MatchPattern
)

// matcher reports whether a candidate string matches the query.
type matcher func(string) bool

// newMatcher builds the match predicate for a query, failing fast with
// CodeInvalidArgument on an empty query or a malformed pattern.
func newMatcher(query string, mode MatchMode) (matcher, error) {
	if query == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "query must not be empty")
	}

	switch mode {
	case MatchLiteral:
		return func(s string) bool { return strings.Contains(s, query) }, nil
	case MatchPattern:
		re, err := regexp.Compile(query)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInvalidArgument, "invalid pattern %q", query)
		}
		return re.MatchString, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unknown match mode %d", mode)
	}
}
