package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404. Also used when a resource belongs to another user, so the
// response never reveals that the resource exists at all.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// Image pipeline.

// ErrImageConfigMissing means no processing rule is registered for the
// (resource type, image type) pair. A programming error, never retried.
func ErrImageConfigMissing(resourceType, imageType string) *AppError {
	return New(
		CodeConfigurationError,
		"images",
		fmt.Sprintf("no image configuration for resource %q, image type %q", resourceType, imageType),
		http.StatusInternalServerError,
	)
}

// ErrImageProcessing wraps a resize/convert/write failure.
func ErrImageProcessing(err error) *AppError {
	return Wrap(err, CodeProcessingError, "images",
		fmt.Sprintf("image processing failed: %v", err), http.StatusUnprocessableEntity)
}

// ErrImageNotFound means the requested filename does not exist on disk.
func ErrImageNotFound(filename string) *AppError {
	return New(CodeNotFound, "images",
		fmt.Sprintf("image %q not found", filename), http.StatusNotFound)
}

// Predefined static errors.

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
