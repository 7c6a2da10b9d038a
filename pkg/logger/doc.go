// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks a JSON or text handler, applies default attributes and wraps the
// handler with a decorator that runs ContextExtractor callbacks (for example
// the request id extractor from package requestid) before each record is
// written.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "newsroom"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "user logged in", logger.UserID(id))
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
