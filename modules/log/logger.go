// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides logging capabilities.
// Concepts:
//
// * Logger: a Logger provides leveled logging functions and writes formatted events to its output
//
// * Named loggers: "default" is used by the package level functions, "xorm" receives SQL logs,
// "router" receives the access log. Unknown names fall back to "default".
//
// Call graph:
// -> log.Info()
// -> LoggerImpl.Log()
// -> prepare the event (time, caller, level), format and write it to the output under a lock
package log

// BaseLogger provides the basic logging functions
type BaseLogger interface {
	Log(skip int, level Level, format string, v ...any)
	GetLevel() Level
}

// LevelLogger provides level-related logging functions
type LevelLogger interface {
	LevelEnabled(level Level) bool

	Trace(format string, v ...any)
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
	Critical(format string, v ...any)
}

type Logger interface {
	BaseLogger
	LevelLogger
}

type LogStringer interface { //nolint:revive
	LogString() string
}
