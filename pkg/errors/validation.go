package errors

// ValidationError is a specialized error type for input validation failures
// that never reach the storage layer, such as an empty key. It embeds baseError for chaining and code-based handling,
// then adds the field that failed and why.
type ValidationError struct {
	*baseError
	field string
	rule  string
}

// NewValidationError creates a new validation-specific error.
func NewValidationError(err error, code Code, msg string) *ValidationError {
	return &ValidationError{baseError: newBaseError(err, code, msg)}
}

// WithDetail adds contextual information while maintaining the ValidationError type.
func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// WithField sets which field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// WithRule specifies which validation rule was violated.
func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

// Field returns the field name that failed validation.
func (ve *ValidationError) Field() string { return ve.field }

// Rule returns the validation rule that was violated.
func (ve *ValidationError) Rule() string { return ve.rule }

// NewRequiredFieldError creates a specialized error for a missing or empty
// required field, such as the key argument of Engine.Get/Set/Remove.
func NewRequiredFieldError(fieldName string) *ValidationError {
	return NewValidationError(nil, CodeInvalidInput, "required field is missing or empty").
		WithField(fieldName).WithRule("required")
}
