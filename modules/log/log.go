// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

const DEFAULT = "default"

var (
	loggersMu sync.RWMutex
	loggers   = map[string]*LoggerImpl{}

	// OsExiter is used by Fatal, tests can replace it
	OsExiter = os.Exit
)

func init() {
	SetConsoleLogger(DEFAULT, INFO)
}

// CanColorStdout reports whether the stdout is a terminal which understands colors
func CanColorStdout() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetConsoleLogger (re)creates the named logger writing to stdout
func SetConsoleLogger(name string, level Level) {
	SetLogger(name, NewLoggerWithWriter(name, os.Stdout, level, LstdFlags, CanColorStdout()))
}

// SetLogger registers a logger with the given name, replacing any previous one
func SetLogger(name string, l *LoggerImpl) {
	loggersMu.Lock()
	loggers[name] = l
	loggersMu.Unlock()
}

// SetLoggerOutput redirects the named logger (created if missing) to "out", mostly used by tests
func SetLoggerOutput(name string, out io.Writer, level Level) *LoggerImpl {
	l := NewLoggerWithWriter(name, out, level, Llevelinitial, false)
	SetLogger(name, l)
	return l
}

// GetLogger returns the named logger, or the default logger if there is no such logger
func GetLogger(name string) Logger {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	return loggers[DEFAULT]
}

// SetLevel changes the level of every registered logger
func SetLevel(level Level) {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	for _, l := range loggers {
		l.SetLevel(level)
	}
}

// GetLevel returns the level of the default logger
func GetLevel() Level {
	return GetLogger(DEFAULT).GetLevel()
}

// IsDebug reports whether debug messages would be written
func IsDebug() bool {
	return GetLevel() <= DEBUG
}

// Log logs a message with the default logger, skip is the number of extra frames to skip
func Log(skip int, level Level, format string, v ...any) {
	GetLogger(DEFAULT).Log(skip+1, level, format, v...)
}

func Trace(format string, v ...any) {
	Log(1, TRACE, format, v...)
}

func Debug(format string, v ...any) {
	Log(1, DEBUG, format, v...)
}

func Info(format string, v ...any) {
	Log(1, INFO, format, v...)
}

func Warn(format string, v ...any) {
	Log(1, WARN, format, v...)
}

func Error(format string, v ...any) {
	Log(1, ERROR, format, v...)
}

func Critical(format string, v ...any) {
	Log(1, CRITICAL, format, v...)
}

// Fatal records a fatal error and exits
func Fatal(format string, v ...any) {
	Log(1, FATAL, format, v...)
	OsExiter(1)
}
