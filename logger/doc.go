// Package logger provides structured logging on zerolog.
//
// Output is console or JSON, written to stdout, stderr, or a file rotated by
// lumberjack. Loggers are scoped with WithComponent and WithFields; fields
// are plain maps built with Fields.
//
//	logger.Init(cfg.Logging)
//	log := logger.WithComponent("rest")
//	log.Info("call finished", logger.Fields(logger.FieldStatus, 200))
package logger
