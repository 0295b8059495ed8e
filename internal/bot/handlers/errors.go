package handlers

import "fmt"

// Kind classifies a command failure so the dispatcher's mapping to user
// messages is exhaustive.
type Kind int

const (
	// KindUserInput covers malformed arguments: bad dates, future dates,
	// inverted time ranges, out-of-range indexes.
	KindUserInput Kind = iota

	// KindConflict covers data-integrity conflicts: duplicate member,
	// missing member, no open attendance record.
	KindConflict

	// KindInternal covers everything else; the dispatcher reports it with
	// the underlying error text and keeps running.
	KindInternal
)

// CommandError is a classified command failure. Message carries the
// bilingual user-facing explanation for user-input and conflict kinds.
type CommandError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// userError builds a user-input failure with a bilingual message.
func userError(message string) error {
	return &CommandError{Kind: KindUserInput, Message: message}
}

// conflict builds a data-conflict failure with a bilingual message.
func conflict(message string) error {
	return &CommandError{Kind: KindConflict, Message: message}
}
