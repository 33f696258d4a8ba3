package apperror

// AppError is a business-rule violation carrying the HTTP status it maps to at the API boundary.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithDetail returns a copy of the sentinel carrying a more specific message.
// The copy still matches the sentinel through errors.Is on its Err field.
func (e *AppError) WithDetail(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e,
	}
}
