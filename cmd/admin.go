// Copyright 2016 The Gogs Authors. All rights reserved.
// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"strings"

	content_model "code.kwd.dev/wordfilter/models/content"
	"code.kwd.dev/wordfilter/models/system"
	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/modules/wordfilter"
	wordfilter_service "code.kwd.dev/wordfilter/services/wordfilter"

	"github.com/urfave/cli/v2"
)

func cmdAdmin() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Perform common administrative operations",
		Subcommands: []*cli.Command{
			subcmdUser(),
			subcmdWordFilter(),
			subcmdPost(),
		},
	}
}

func subcmdUser() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Modify users",
		Subcommands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a new user in database",
				Action: runCreateUser,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "Username",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "User password",
					},
					&cli.BoolFlag{
						Name:  "admin",
						Usage: "User is an admin",
					},
					&cli.StringSliceFlag{
						Name:  "capability",
						Usage: "Grant a capability to the user, eg: manage_options",
					},
				},
			},
			{
				Name:   "grant",
				Usage:  "Grant capabilities to an existing user",
				Action: runGrantUser,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "Username",
					},
					&cli.StringSliceFlag{
						Name:  "capability",
						Usage: "Capability to grant, eg: manage_options",
					},
				},
			},
		},
	}
}

func subcmdWordFilter() *cli.Command {
	return &cli.Command{
		Name:  "wordfilter",
		Usage: "Show or change the word filter settings",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the stored word list and replacement",
				Action: runWordFilterShow,
			},
			{
				Name:      "set-words",
				Usage:     "Store the comma separated list of words to filter",
				ArgsUsage: "<list>",
				Action:    runWordFilterSetWords,
			},
			{
				Name:      "set-replacement",
				Usage:     "Store the text put in place of filtered words, an empty text removes them",
				ArgsUsage: "<text>",
				Action:    runWordFilterSetReplacement,
			},
		},
	}
}

func subcmdPost() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "Manage published posts",
		Subcommands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Publish a post written in markdown",
				Action: runCreatePost,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "slug",
						Usage: "Lower-cased URL name of the post, eg: hello-world",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Title of the post",
					},
					&cli.StringFlag{
						Name:  "file",
						Value: "-",
						Usage: `Markdown file with the content, "-" reads stdin`,
					},
				},
			},
		},
	}
}

func parseCapabilities(values []string) ([]user_model.Capability, error) {
	caps := make([]user_model.Capability, 0, len(values))
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if user_model.Capability(s) != user_model.CapManageOptions {
				return nil, fmt.Errorf("unknown capability: %s", s)
			}
			caps = append(caps, user_model.Capability(s))
		}
	}
	return caps, nil
}

func runCreateUser(c *cli.Context) error {
	if err := argsSet(c, "username", "password"); err != nil {
		return err
	}
	caps, err := parseCapabilities(c.StringSlice("capability"))
	if err != nil {
		return err
	}

	ctx := c.Context
	if err := initDB(ctx); err != nil {
		return err
	}

	u := &user_model.User{
		Name:    c.String("username"),
		IsAdmin: c.Bool("admin"),
	}
	for _, capability := range caps {
		u.Grant(capability)
	}
	if err := user_model.CreateUser(ctx, u, c.String("password")); err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}

	_, _ = fmt.Fprintf(c.App.Writer, "New user '%s' has been successfully created!\n", u.Name)
	return nil
}

func runGrantUser(c *cli.Context) error {
	if err := argsSet(c, "username"); err != nil {
		return err
	}
	caps, err := parseCapabilities(c.StringSlice("capability"))
	if err != nil {
		return err
	}
	if len(caps) == 0 {
		return errors.New("capability is required")
	}

	ctx := c.Context
	if err := initDB(ctx); err != nil {
		return err
	}

	u, err := user_model.GetUserByName(ctx, c.String("username"))
	if err != nil {
		return err
	}
	for _, capability := range caps {
		u.Grant(capability)
	}
	if err := user_model.UpdateUserCols(ctx, u, "capabilities"); err != nil {
		return fmt.Errorf("UpdateUserCols: %w", err)
	}

	_, _ = fmt.Fprintf(c.App.Writer, "User '%s' now has the capabilities: %s\n", u.Name, u.Capabilities)
	return nil
}

func newWordFilterService(c *cli.Context) (*wordfilter_service.Service, error) {
	if err := initDB(c.Context); err != nil {
		return nil, err
	}
	// the command has its own pipeline, a running web server picks the changes up on reload
	return wordfilter_service.NewService(system.NewDBStore(), markup.NewPipeline()), nil
}

func runWordFilterShow(c *cli.Context) error {
	s, err := newWordFilterService(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	list, err := s.WordList(ctx)
	if err != nil {
		return err
	}
	words, err := s.Words(ctx)
	if err != nil {
		return err
	}
	replacement, err := s.Replacement(ctx)
	if err != nil {
		return err
	}

	w := c.App.Writer
	_, _ = fmt.Fprintf(w, "Words:       %s\n", list)
	_, _ = fmt.Fprintf(w, "Word count:  %d\n", len(words))
	_, _ = fmt.Fprintf(w, "Replacement: %q\n", replacement)
	_, _ = fmt.Fprintf(w, "Policy:      %s\n", s.Policy())
	return nil
}

func runWordFilterSetWords(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exactly one word list argument is required")
	}
	s, err := newWordFilterService(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	if err := s.SetWordList(ctx, c.Args().First()); err != nil {
		return err
	}
	words, err := s.Words(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Saved %d words: %s\n", len(words), wordfilter.JoinWords(words))
	return nil
}

func runWordFilterSetReplacement(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(`exactly one replacement argument is required, use "" to remove the filtered words`)
	}
	s, err := newWordFilterService(c)
	if err != nil {
		return err
	}

	if err := s.SaveReplacement(c.Context, c.Args().First()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Saved replacement: %q\n", c.Args().First())
	return nil
}

func runCreatePost(c *cli.Context) error {
	if err := argsSet(c, "slug", "title"); err != nil {
		return err
	}
	content, err := readInput(c, c.String("file"))
	if err != nil {
		return err
	}

	ctx := c.Context
	if err := initDB(ctx); err != nil {
		return err
	}

	p := &content_model.Post{
		Slug:    c.String("slug"),
		Title:   c.String("title"),
		Content: content,
	}
	if err := content_model.CreatePost(ctx, p); err != nil {
		return fmt.Errorf("CreatePost: %w", err)
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Post '%s' has been published\n", p.Slug)
	return nil
}
