// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LoggerImpl writes formatted log events to an output
type LoggerImpl struct {
	name     string
	level    atomic.Int32
	mu       sync.Mutex
	out      io.Writer
	flags    Flags
	prefix   string
	colorize bool
}

var _ Logger = (*LoggerImpl)(nil)

// NewLoggerWithWriter creates a logger writing to "out"
func NewLoggerWithWriter(name string, out io.Writer, level Level, flags Flags, colorize bool) *LoggerImpl {
	l := &LoggerImpl{name: name, out: out, flags: flags, colorize: colorize}
	l.level.Store(int32(level))
	return l
}

// GetName returns the name of the logger
func (l *LoggerImpl) GetName() string {
	return l.name
}

// GetLevel returns the current level
func (l *LoggerImpl) GetLevel() Level {
	return Level(l.level.Load())
}

// SetLevel changes the level of the logger
func (l *LoggerImpl) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// SetPrefix sets the text written before every event
func (l *LoggerImpl) SetPrefix(prefix string) {
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

// LevelEnabled checks whether the level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	return level >= l.GetLevel() && l.GetLevel() != NONE
}

// Log prepares the event and writes it. "skip" is the number of extra frames to skip for the caller.
func (l *LoggerImpl) Log(skip int, level Level, format string, v ...any) {
	if !l.LevelEnabled(level) {
		return
	}

	now := time.Now()
	var filename string
	var line int
	if l.flags&Lshortfile != 0 {
		var ok bool
		if _, filename, line, ok = runtime.Caller(skip + 1); ok {
			filename = filepath.Base(filename)
		}
	}

	msg := format
	if len(v) > 0 {
		for i, arg := range v {
			if s, ok := arg.(LogStringer); ok {
				v[i] = s.LogString()
			}
		}
		msg = fmt.Sprintf(format, v...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	buf := make([]byte, 0, len(msg)+64)
	buf = append(buf, l.prefix...)
	buf = l.appendHeader(buf, now, level, filename, line)
	buf = append(buf, msg...)
	if !strings.HasSuffix(msg, "\n") {
		buf = append(buf, '\n')
	}
	_, _ = l.out.Write(buf)
}

func (l *LoggerImpl) appendHeader(buf []byte, t time.Time, level Level, filename string, line int) []byte {
	if l.flags&LUTC != 0 {
		t = t.UTC()
	}
	if l.flags&Ldate != 0 {
		buf = t.AppendFormat(buf, "2006/01/02 ")
	}
	if l.flags&(Ltime|Lmicroseconds) != 0 {
		if l.flags&Lmicroseconds != 0 {
			buf = t.AppendFormat(buf, "15:04:05.000000 ")
		} else {
			buf = t.AppendFormat(buf, "15:04:05 ")
		}
	}
	if filename != "" {
		buf = append(buf, filename...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(line), 10)
		buf = append(buf, ' ')
	}
	if l.flags&(Llevel|Llevelinitial) != 0 {
		if l.colorize {
			buf = append(buf, level.ColorString()...)
		}
		buf = append(buf, '[')
		if l.flags&Llevel != 0 {
			buf = append(buf, strings.ToUpper(level.String())...)
		} else {
			buf = append(buf, strings.ToUpper(level.String())[0])
		}
		buf = append(buf, ']')
		if l.colorize {
			buf = append(buf, resetColor...)
		}
		buf = append(buf, ' ')
	}
	return buf
}

func (l *LoggerImpl) Trace(format string, v ...any) {
	l.Log(1, TRACE, format, v...)
}

func (l *LoggerImpl) Debug(format string, v ...any) {
	l.Log(1, DEBUG, format, v...)
}

func (l *LoggerImpl) Info(format string, v ...any) {
	l.Log(1, INFO, format, v...)
}

func (l *LoggerImpl) Warn(format string, v ...any) {
	l.Log(1, WARN, format, v...)
}

func (l *LoggerImpl) Error(format string, v ...any) {
	l.Log(1, ERROR, format, v...)
}

func (l *LoggerImpl) Critical(format string, v ...any) {
	l.Log(1, CRITICAL, format, v...)
}
