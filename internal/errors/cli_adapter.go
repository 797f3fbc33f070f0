package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// WithOutput redirects the error message and replaces the exit function.
func (a *CLIErrorAdapter) WithOutput(stderr io.Writer, exit func(int)) *CLIErrorAdapter {
	if stderr != nil {
		a.stderr = stderr
	}
	if exit != nil {
		a.exit = exit
	}
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if me, ok := As(err); ok {
		return a.exitCodeFromMarkdown(me)
	}

	return 1
}

func (a *CLIErrorAdapter) exitCodeFromMarkdown(err *MarkdownError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryParse:
		return 3
	case CategoryNesting:
		return 4
	case CategoryIO:
		return 5
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if me, ok := As(err); ok {
		return a.formatMarkdown(me)
	}

	return fmt.Sprintf("Error: %v", err)
}

func (a *CLIErrorAdapter) formatMarkdown(err *MarkdownError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	case CategoryParse, CategoryNesting:
		// The grammar error already carries line and column.
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Category, err.Cause)
		}
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if me, ok := As(err); ok {
		return me.Category == CategoryInternal ||
			me.Category == CategoryIO ||
			me.Severity == SeverityFatal
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if me, ok := As(err); ok {
		level := slogLevelFromSeverity(me.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(me.Category)),
		}
		for k, v := range me.Context {
			attrs = append(attrs, slog.Any(k, v))
		}

		a.logger.LogAttrs(context.Background(), level, me.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
