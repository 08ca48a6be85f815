// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"os"

	"code.kwd.dev/wordfilter/models/system"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/wordfilter"
	wordfilter_service "code.kwd.dev/wordfilter/services/wordfilter"

	"github.com/urfave/cli/v2"
)

// cmdFilter represents the available filter sub-command.
func cmdFilter() *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "Filter text read from a file or stdin and write it to stdout",
		ArgsUsage: "[file]",
		Description: `Without --words the stored word list and replacement are used, which needs the config file.
The input is treated as HTML: the replacement is escaped before it is inserted.`,
		Action: runFilter,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "words",
				Usage: "Comma separated words to filter instead of the stored list",
			},
			&cli.StringFlag{
				Name:  "replacement",
				Value: wordfilter.DefaultReplacement,
				Usage: "Text put in place of filtered words, only used with --words",
			},
			&cli.StringFlag{
				Name:  "policy",
				Value: "sequential",
				Usage: `Replacement policy: "sequential" or "simultaneous", only used with --words`,
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Render the input as markdown before filtering",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   setting.CustomConf,
				Usage:   "Custom configuration file path, used when --words is not set",
			},
		},
	}
}

// filterFunc returns the filter matching the command line, it falls back to the stored settings
func filterFunc(c *cli.Context) (markup.ContentFilter, error) {
	if c.IsSet("words") {
		policy := wordfilter.ParsePolicy(c.String("policy"))
		words, replacement := c.String("words"), c.String("replacement")
		return func(_ context.Context, content string) (string, error) {
			return wordfilter.FilterWithPolicy(policy, content, words, replacement), nil
		}, nil
	}

	for _, curCtx := range c.Lineage() {
		if curCtx.IsSet("config") {
			setting.InitWorkPathAndCommonConfig(os.Getenv, setting.ArgWorkPathAndCustomConf{CustomConf: curCtx.String("config")})
			break
		}
	}
	if err := initDB(c.Context); err != nil {
		return nil, err
	}
	s := wordfilter_service.NewService(system.NewDBStore(), markup.NewPipeline())
	return s.FilterContent, nil
}

func runFilter(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("at most one input file is allowed, got %d", c.NArg())
	}
	input, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}
	filter, err := filterFunc(c)
	if err != nil {
		return err
	}

	pipeline := markup.NewPipeline()
	pipeline.AddFilter(wordfilter_service.FilterName, 0, filter)

	var output string
	if c.Bool("markdown") {
		rendered, err := markup.RenderContent(c.Context, pipeline, input)
		if err != nil {
			return err
		}
		output = string(rendered)
	} else if output, err = pipeline.Apply(c.Context, input); err != nil {
		return err
	}

	_, err = fmt.Fprint(c.App.Writer, output)
	return err
}
