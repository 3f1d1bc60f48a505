package application

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNotInitialized = errors.New("application not initialized")
)

// TransferError represents an import or export that failed on the file side
type TransferError struct {
	Operation string
	FilePath  string
	Err       error
}

func (e *TransferError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("settings %s failed for file %s: %v", e.Operation, e.FilePath, e.Err)
	}
	return fmt.Sprintf("settings %s failed: %v", e.Operation, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// NewTransferError creates a new transfer error
func NewTransferError(operation, filePath string, err error) *TransferError {
	return &TransferError{
		Operation: operation,
		FilePath:  filePath,
		Err:       err,
	}
}
