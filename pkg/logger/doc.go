// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// transparent injection of values stored in context.Context and a
// human-oriented terminal handler.
//
// The package exposes a single factory – New – that creates a *slog.Logger
// configured by a set of Option functions. These options allow you to:
//
//   • Select an output format (terminal, text or json)
//   • Set the minimum log level
//   • Supply default slog.Attr values applied to every record
//   • Register ContextExtractor callbacks that inject attributes pulled from a
//     context value (for example a run id) every time Handle is invoked.
//
// # Architecture
//
// New determines the concrete slog.Handler implementation – TerminalHandler,
// slog.NewTextHandler or slog.NewJSONHandler – based on the configured Format.
// It then wraps the handler with LogHandlerDecorator which is responsible for
// executing any registered ContextExtractor callbacks before delegating to the
// underlying handler.
//
// TerminalHandler prints lines of the form
//
//	[2024-05-01 09:30:00] INFO  sending report recipient=a@example.com
//
// with levels colored through github.com/fatih/color. Colors are enabled only
// when the output is a terminal and NO_COLOR is unset.
//
// Helper constructors such as Error, Recipient, Success, etc. live in attr.go
// and return commonly-used slog.Attr instances to keep attribute naming
// consistent across the codebase.
//
// # Usage
//
//	import "github.com/dmitrymomot/sitrep/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithTerminalFormatter(),
//	        logger.WithDebug(os.Getenv("DEBUG") != ""),
//	        logger.WithContextValue("run_id", ctxKeyRunID),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "email sent",
//	        logger.Recipient("a@example.com"),
//	        logger.Success(),
//	    )
//	}
//
// # Configuration
//
//   • WithFormat / WithTextFormatter / WithJSONFormatter / WithTerminalFormatter – output format.
//   • WithNoColor – disable colors for the terminal format.
//   • WithLevel / WithDebug – set the minimum slog.Level.
//   • WithAttr / WithService – attach static attributes.
//   • WithContextExtractors / WithContextValue – inject attributes from context.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check.
package logger
