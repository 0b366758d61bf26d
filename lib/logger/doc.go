// Package logger provides the leveled logging facility used by all packages
// of this module. Loggers are created per package via CreateLogger and write
// line-oriented output in a fixed column format:
//
//	2025/04/01 12:00:00 INFO  | dict            | opened dictionary (engine=sqlite)
//
// The verbosity of a logger can be changed at runtime with SetLevel, which is
// safe to call concurrently with logging. The dictionary wires its log level
// from the PDICT_LOG_LEVEL environment variable when configured through
// OptionsFromEnv.
package logger
