package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
)

// Sentinel classes for the math resolution pipeline. Every failure inside the
// chat engine is one of these three; the orchestrator decides per class
// whether to fall through to the next tier or to skip remote tiers entirely.
var (
	// ErrParse marks input text that does not form a valid expression even
	// after repair heuristics.
	ErrParse = errors.New("expression parse failed")
	// ErrCompute marks a valid expression whose requested algebraic
	// operation is undefined or failed.
	ErrCompute = errors.New("computation failed")
	// ErrRemoteUnavailable marks a missing credential or a network/timeout
	// failure from the language-model collaborator.
	ErrRemoteUnavailable = errors.New("remote model unavailable")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Parse tags err as a parse failure.
func Parse(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// Parsef tags a formatted message as a parse failure.
func Parsef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// Compute tags err as a computation failure.
func Compute(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCompute, err)
}

// Computef tags a formatted message as a computation failure.
func Computef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCompute, fmt.Sprintf(format, args...))
}

// Remote tags err as a remote-collaborator failure.
func Remote(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}

// IsParse reports whether err is a parse failure.
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsCompute reports whether err is a computation failure.
func IsCompute(err error) bool { return errors.Is(err, ErrCompute) }

// IsRemoteUnavailable reports whether err means the LLM collaborator cannot
// be reached right now.
func IsRemoteUnavailable(err error) bool { return errors.Is(err, ErrRemoteUnavailable) }

// WrapRedis wraps a Redis error with a consistent status code and message.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Err:     err,
		Status:  http.StatusBadGateway,
		Message: RedisErrorMessage,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
