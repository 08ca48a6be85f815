// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"strings"
	"testing"

	"code.kwd.dev/wordfilter/modules/json"

	"github.com/stretchr/testify/assert"
)

type testLogString struct {
	Field string
}

func (t testLogString) LogString() string {
	return "log-string"
}

func TestLoggerLevels(t *testing.T) {
	buf := &strings.Builder{}
	logger := NewLoggerWithWriter("test", buf, WARN, Llevelinitial, false)

	logger.Info("not written %d", 1)
	logger.Warn("written %d", 2)
	logger.Error("written %s", "3")
	assert.Equal(t, "[W] written 2\n[E] written 3\n", buf.String())

	assert.False(t, logger.LevelEnabled(INFO))
	assert.True(t, logger.LevelEnabled(ERROR))

	logger.SetLevel(NONE)
	logger.Error("dropped")
	assert.Equal(t, "[W] written 2\n[E] written 3\n", buf.String())
}

func TestLoggerFlags(t *testing.T) {
	buf := &strings.Builder{}
	logger := NewLoggerWithWriter("test", buf, TRACE, Lshortfile|Llevel, false)
	logger.SetPrefix("wf ")
	logger.Debug("msg with %v", testLogString{})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "wf logger_test.go:"), out)
	assert.Contains(t, out, "[DEBUG] msg with log-string\n")
}

func TestNamedLoggers(t *testing.T) {
	buf := &strings.Builder{}
	SetLoggerOutput("test-named", buf, INFO)
	GetLogger("test-named").Info("hello")
	assert.Equal(t, "[I] hello\n", buf.String())

	// unknown names use the default logger
	assert.Equal(t, GetLogger(DEFAULT), GetLogger("no-such-logger"))
}

func TestFatalUsesExiter(t *testing.T) {
	buf := &strings.Builder{}
	old := GetLogger(DEFAULT).(*LoggerImpl)
	defer SetLogger(DEFAULT, old)
	SetLoggerOutput(DEFAULT, buf, INFO)

	exitCode := -1
	oldExiter := OsExiter
	OsExiter = func(code int) { exitCode = code }
	defer func() { OsExiter = oldExiter }()

	Fatal("boom")
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "[F] boom\n", buf.String())
}

func TestLevelJSON(t *testing.T) {
	b, err := json.Marshal(WARN)
	assert.NoError(t, err)
	assert.Equal(t, `"warn"`, string(b))

	var l Level
	assert.NoError(t, json.Unmarshal([]byte(`"Debug"`), &l))
	assert.Equal(t, DEBUG, l)
	assert.NoError(t, json.Unmarshal([]byte(`2`), &l))
	assert.Equal(t, DEBUG, l)
	assert.NoError(t, json.Unmarshal([]byte(`true`), &l))
	assert.Equal(t, INFO, l)

	assert.Equal(t, WARN, LevelFromString("warning"))
	assert.Equal(t, INFO, LevelFromString("unknown"))
}

func TestFlagsFromString(t *testing.T) {
	assert.Equal(t, Ldate|Ltime, FlagsFromString("date, time"))
	assert.Equal(t, LstdFlags, FlagsFromString("stdflags"))
	assert.Equal(t, Flags(0), FlagsFromString("none"))
}
