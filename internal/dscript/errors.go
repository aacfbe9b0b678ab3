package dscript

import "fmt"

// ErrorKind classifies a compile failure. Kinds implement error so callers
// can match them with errors.Is.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota

	// Syntax errors (Reader)
	ErrEmptyScript         // No chunks in the script
	ErrHeaderArity         // Header is not 2, 3 or 4 tokens
	ErrMissingConverge     // 2-token header without CONVERGE
	ErrUnknownKind         // Node kind is not M or C
	ErrMissingMessage      // Header is the last line
	ErrUnterminatedChoices // Choice body has no END
	ErrMalformedChoice     // Choice line is not "text -> label"
	ErrNoChoices           // Choice body is empty

	// Semantic errors (Parser)
	ErrUndefinedLabel      // Label was never declared or already merged
	ErrAlreadyConverging   // Label already announced convergence
	ErrConvergingChoiceTip // Label tip is an unresolved choice
	ErrRootConvergence     // Root label cannot converge
	ErrOrphanedLabel       // Label lost its parent to a merge
	ErrEmptyBranch         // Label has no nodes yet
	ErrNothingToMerge      // Node follows a choice but no branch converged
	ErrLabelRedeclared     // Label name is already live
	ErrEmptyGraph          // No node reached the root
)

var kindNames = map[ErrorKind]string{
	ErrUnknown:             "unknown error",
	ErrEmptyScript:         "empty script",
	ErrHeaderArity:         "header must have 2, 3 or 4 fields",
	ErrMissingConverge:     "missing CONVERGE keyword",
	ErrUnknownKind:         "node kind must be M or C",
	ErrMissingMessage:      "missing message line",
	ErrUnterminatedChoices: "choice list not terminated by END",
	ErrMalformedChoice:     "choice must be \"<text> -> <label>\"",
	ErrNoChoices:           "choice list is empty",
	ErrUndefinedLabel:      "undefined label",
	ErrAlreadyConverging:   "label is already converging",
	ErrConvergingChoiceTip: "cannot converge from a choice",
	ErrRootConvergence:     "root label cannot converge",
	ErrOrphanedLabel:       "label has no parent to converge into",
	ErrEmptyBranch:         "label has no nodes",
	ErrNothingToMerge:      "no converging branches to merge",
	ErrLabelRedeclared:     "label already declared",
	ErrEmptyGraph:          "script produced no dialogue",
}

// Error returns the kind's description.
func (k ErrorKind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[ErrUnknown]
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	return k.Error()
}

// Syntax reports whether the kind is raised by the Reader.
func (k ErrorKind) Syntax() bool {
	return k >= ErrEmptyScript && k <= ErrNoChoices
}

// Error is a compile failure with its source position.
type Error struct {
	Kind   ErrorKind
	Line   int    // 1-based source line, 0 if unknown
	Label  string // Offending label, if any
	Detail string // Offending text, if any
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Label != "" || e.Kind == ErrRootConvergence {
		msg = fmt.Sprintf("%s %q", msg, e.Label)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Line > 0 {
		return fmt.Sprintf("dscript: line %d: %s", e.Line, msg)
	}
	return "dscript: " + msg
}

// Is matches an ErrorKind target against the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func syntaxError(kind ErrorKind, line int, detail string) *Error {
	return &Error{Kind: kind, Line: line, Detail: detail}
}

func labelError(kind ErrorKind, line int, label string) *Error {
	return &Error{Kind: kind, Line: line, Label: label}
}
