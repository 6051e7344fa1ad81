package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for the recipe domain. Use errors.Is() to check these.
var (
	// ErrRecipeNotFound indicates no record carries the requested ID.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidRecipe indicates submitted data failed validation. The concrete
	// error is a *ValidationError carrying every message.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrStoreUnavailable indicates the record store could not complete a read
	// or reported a failed write.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrSubmitInProgress indicates a previous submit has not finished yet.
	ErrSubmitInProgress = errors.New("a submit is already in progress")
)

// ValidationError collects every validation failure of one submission.
type ValidationError struct {
	Messages []string
}

// NewValidationError returns nil when messages is empty.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return ErrInvalidRecipe.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Is makes errors.Is(err, ErrInvalidRecipe) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecipe
}

// StoreError carries a human-readable message from the store or transport.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is makes errors.Is(err, ErrStoreUnavailable) hold.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationMessages extracts the message list from err, or nil.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}
