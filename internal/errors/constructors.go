package errors

// Convenience functions for common error patterns

// Grammar errors

func ParseFailed(line, col int, expected string, cause error) *MarkdownError {
	return Wrap(cause, CategoryParse, SeverityError, "markdown does not match the grammar").
		WithContext("line", line).
		WithContext("column", col).
		WithContext("expected", expected)
}

func NestingTooDeep(limit int, cause error) *MarkdownError {
	return Wrap(cause, CategoryNesting, SeverityError, "markdown nesting too deep").
		WithContext("limit", limit)
}

// I/O errors

func ReadFailed(path string, cause error) *MarkdownError {
	return Wrap(cause, CategoryIO, SeverityFatal, "reading input failed").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *MarkdownError {
	return Wrap(cause, CategoryIO, SeverityFatal, "writing output failed").
		WithContext("path", path)
}

// Config errors

func ConfigNotFound(path string) *MarkdownError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *MarkdownError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *MarkdownError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Internal errors

func InternalError(message string, cause error) *MarkdownError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
