// Copyright 2014 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/routers"

	"github.com/urfave/cli/v2"
)

// cmdWeb represents the available web sub-command.
func cmdWeb() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web server",
		Description: `The web server serves the published posts with the word filter applied,
the feeds and the administration pages of the filter.`,
		Action: runWeb,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   "3000",
				Usage:   "Temporary port number to prevent conflict",
			},
			&cli.StringFlag{
				Name:  "listen-addr",
				Value: "",
				Usage: "Temporary listen address",
			},
		},
	}
}

func runWeb(c *cli.Context) error {
	managerCtx, cancel := installSignals()
	defer cancel()

	setting.LoadCommonSettings()

	// Override the provided port number within the configuration
	if c.IsSet("port") {
		setting.HTTPPort = c.String("port")
	}
	if c.IsSet("listen-addr") {
		setting.HTTPAddr = c.String("listen-addr")
	}

	routers.InitWebInstalled(managerCtx)
	handler := routers.NormalRoutes(managerCtx)

	listenAddr := net.JoinHostPort(setting.HTTPAddr, setting.HTTPPort)
	log.Info("Listen: http://%s%s", listenAddr, setting.AppSubURL)
	return listen(managerCtx, handler, listenAddr)
}

func listen(ctx context.Context, handler http.Handler, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: setting.ReadTimeout,
		ReadTimeout:       setting.ReadTimeout,
		WriteTimeout:      setting.WriteTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("PID: %d. Shutting down the web server, waiting up to %s for active requests", os.Getpid(), setting.GracefulHammerTime)
		hammerCtx, cancel := context.WithTimeout(context.Background(), setting.GracefulHammerTime)
		defer cancel()
		if err := srv.Shutdown(hammerCtx); err != nil {
			log.Error("Failed to shutdown the web server gracefully: %v", err)
			_ = srv.Close()
		}
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Critical("Failed to start server: %v", err)
		return fmt.Errorf("listen on %s: %w", listenAddr, err)
	}
	<-shutdownDone
	log.Info("HTTP Listener: %s Closed", listenAddr)
	return nil
}
