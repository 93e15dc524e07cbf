package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	origin    *BaseError
	kind      *BaseError
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
// The copy still matches the original (and its class) with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		origin:    e.predefined(),
		kind:      e.kind,
	}
}

// Is matches the predefined error this one was derived from and its taxonomy class.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t == e.predefined() || (e.kind != nil && t == e.kind)
}

func (e *BaseError) predefined() *BaseError {
	if e.origin != nil {
		return e.origin
	}

	return e
}

// Taxonomy roots. Specialised errors below map onto one of these HTTP classes.
var (
	// ErrValidationFailed is bad input caught before any I/O.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Dados inválidos",
		"",
	)

	// ErrUnauthenticated means no active identity where one is required.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Usuário não autenticado",
		"",
	)

	// ErrForbidden means the identity is not allowed to touch the resource.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acesso negado",
		"",
	)

	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Recurso não encontrado",
		"",
	)

	// ErrUpstreamFailure means a backend call failed for reasons outside input validity.
	ErrUpstreamFailure = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_FAILURE",
		"Falha temporária no servidor, tente novamente",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Erro interno do sistema",
		"",
	)
)

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email ou senha incorretos",
		"",
	)

	ErrTooManyAttempts = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_ATTEMPTS",
		"Muitas tentativas. Tente novamente mais tarde",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Sessão expirada, faça login novamente",
		"",
	)

	// Upload-related errors
	ErrUnsupportedFileType = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_FILE_TYPE",
		"Tipo de arquivo não suportado. Use JPG, PNG ou WebP.",
		"",
	)

	ErrFileTooLarge = NewBaseError(
		http.StatusBadRequest,
		"FILE_TOO_LARGE",
		"Arquivo muito grande. Máximo 5MB.",
		"",
	)

	ErrImageDeleteFailed = NewBaseError(
		http.StatusBadGateway,
		"IMAGE_DELETE_FAILED",
		"Erro ao deletar imagem",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Produto não encontrado",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Categoria não encontrada",
		"",
	)

	ErrOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"OWNERSHIP_VIOLATION",
		"Você não tem permissão para alterar este recurso",
		"",
	)

	ErrDefaultCategoryProtected = NewBaseError(
		http.StatusForbidden,
		"DEFAULT_CATEGORY_PROTECTED",
		"Não é possível alterar categorias padrão",
		"",
	)

	ErrUnknownTemplate = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_TEMPLATE",
		"Tipo de negócio não encontrado",
		"",
	)

	// Storefront-related errors
	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"Loja não encontrada",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"O carrinho está vazio",
		"",
	)
)

func init() {
	for _, e := range []*BaseError{ErrInvalidCredentials, ErrSessionExpired} {
		e.kind = ErrUnauthenticated
	}
	for _, e := range []*BaseError{ErrUnsupportedFileType, ErrFileTooLarge, ErrEmptyCart} {
		e.kind = ErrValidationFailed
	}
	for _, e := range []*BaseError{ErrOwnershipViolation, ErrDefaultCategoryProtected} {
		e.kind = ErrForbidden
	}
	for _, e := range []*BaseError{ErrProductNotFound, ErrCategoryNotFound, ErrUnknownTemplate, ErrStoreNotFound} {
		e.kind = ErrNotFound
	}
	ErrImageDeleteFailed.kind = ErrUpstreamFailure
}
