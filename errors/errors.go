// Package errors provides error types and handling for OneContext client operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a client operation error with context about the operation that failed.
// It wraps the underlying cause with the context name and file (if applicable) so
// failures can be traced back to the call that produced them.
type Error struct {
	// Op is the operation that failed (e.g., "uploadFiles", "search", "createContext")
	Op string

	// ContextName is the name of the remote context (if applicable)
	ContextName string

	// File is the display name of the file involved (if applicable)
	File string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	switch {
	case e.ContextName != "" && e.File != "":
		return fmt.Sprintf("onecontext.%s context %s file %s: %v", e.Op, e.ContextName, e.File, e.Err)
	case e.ContextName != "":
		return fmt.Sprintf("onecontext.%s context %s: %v", e.Op, e.ContextName, e.Err)
	case e.File != "":
		return fmt.Sprintf("onecontext.%s file %s: %v", e.Op, e.File, e.Err)
	}
	return fmt.Sprintf("onecontext.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithContext adds the remote context name to an existing error.
func (e *Error) WithContext(contextName string) *Error {
	e.ContextName = contextName
	return e
}

// WithFile adds the file display name to an existing error.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewContextError creates a new Error with context name information.
func NewContextError(op, contextName string, err error) *Error {
	return &Error{
		Op:          op,
		ContextName: contextName,
		Err:         err,
	}
}

// NewValidationError creates an Error for invalid caller input.
func NewValidationError(op, message string) *Error {
	return NewError(op, ErrValidation).WithMessage(message)
}

// Sentinel errors for client operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrConfiguration indicates required client settings (such as the API key) are missing
	ErrConfiguration = errors.New("onecontext: invalid configuration")

	// ErrValidation indicates caller-supplied arguments failed validation
	ErrValidation = errors.New("onecontext: validation failed")

	// ErrPresignRequestFailed indicates the service rejected the presigned upload URL request
	ErrPresignRequestFailed = errors.New("onecontext: failed to get presigned URLs")

	// ErrInvalidServerResponse indicates the service returned a malformed response
	ErrInvalidServerResponse = errors.New("onecontext: invalid response from server")

	// ErrUploadFailed indicates a single file could not be transferred to its presigned URL.
	// It is recorded per file and never returned from a batch upload.
	ErrUploadFailed = errors.New("onecontext: file upload failed")

	// ErrNoFilesUploaded indicates every file in a batch failed to upload
	ErrNoFilesUploaded = errors.New("onecontext: no files were successfully uploaded")

	// ErrNoFilesFound indicates a directory contained no eligible files
	ErrNoFilesFound = errors.New("onecontext: no valid files found in the directory")
)

// IsConfiguration checks if an error indicates a configuration problem.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidation checks if an error indicates invalid caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPresignRequestFailed checks if an error indicates the presign request was rejected.
func IsPresignRequestFailed(err error) bool {
	return errors.Is(err, ErrPresignRequestFailed)
}

// IsInvalidServerResponse checks if an error indicates a malformed server response.
func IsInvalidServerResponse(err error) bool {
	return errors.Is(err, ErrInvalidServerResponse)
}

// IsNoFilesUploaded checks if an error indicates that no file in a batch was uploaded.
func IsNoFilesUploaded(err error) bool {
	return errors.Is(err, ErrNoFilesUploaded)
}

// IsNoFilesFound checks if an error indicates that a directory had no eligible files.
func IsNoFilesFound(err error) bool {
	return errors.Is(err, ErrNoFilesFound)
}
