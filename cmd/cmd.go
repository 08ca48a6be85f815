// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the wordfilter binary
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/routers"

	"github.com/urfave/cli/v2"
)

// argsSet checks that all the required arguments are set. args is a list of
// arguments that must be set in the passed Context.
func argsSet(c *cli.Context, args ...string) error {
	for _, a := range args {
		if !c.IsSet(a) {
			return errors.New(a + " is not set")
		}

		if strings.TrimSpace(c.String(a)) == "" {
			return errors.New(a + " is required")
		}
	}
	return nil
}

// initDB loads the config file and connects to the database, tests replace it
// with a function that keeps the test database
var initDB = func(ctx context.Context) error {
	setting.LoadCommonSettings()
	if err := routers.InitDBEngine(ctx); err != nil {
		return fmt.Errorf("unable to initialize the database using the configuration in %q: %w", setting.CustomConf, err)
	}
	return nil
}

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}

// PrepareConsoleLoggerLevel sets the console logger level before the config is loaded
func PrepareConsoleLoggerLevel(defaultLevel log.Level) func(*cli.Context) error {
	return func(c *cli.Context) error {
		level := defaultLevel
		if c.Bool("quiet") {
			level = log.FATAL
		}
		if c.Bool("verbose") {
			level = log.TRACE
		}
		log.SetConsoleLogger(log.DEFAULT, level)
		return nil
	}
}

// readInput returns the content of the named file, "-" or "" reads the command's stdin
func readInput(c *cli.Context, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		r := io.Reader(os.Stdin)
		if c.App.Reader != nil {
			r = c.App.Reader
		}
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %q: %w", inputName(name), err)
	}
	return string(data), nil
}

func inputName(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return name
}
