package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	fbgraph "github.com/jamesprial/go-facebook-graph-wrapper"
	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	"github.com/jamesprial/go-facebook-graph-wrapper/internal/config"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/options"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/tokenset"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

func main() {
	app := &cli.App{
		Name:  "fbgraph-example",
		Usage: "Exercise the Graph API client from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				EnvVars: []string{"FB_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load (default .env when present)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override logging.level, e.g. debug or warn+2",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "auth-url",
				Usage: "print the OAuth dialog URL and its state",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scope", Usage: "comma-separated permissions", Value: "public_profile"},
				},
				Action: withClient(authURL),
			},
			{
				Name:  "exchange",
				Usage: "trade an authorization code for a user token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Required: true},
					&cli.BoolFlag{Name: "long-lived", Usage: "renew the result into a long-lived token"},
				},
				Action: withClient(exchange),
			},
			{
				Name:   "app-token",
				Usage:  "request an app access token",
				Action: withClient(appToken),
			},
			{
				Name:   "me",
				Usage:  "print the token owner's profile",
				Action: withClient(me),
			},
			{
				Name:  "feed",
				Usage: "print one page of a profile's feed",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Value: "me"},
					&cli.IntFlag{Name: "limit", Value: 5},
					&cli.StringFlag{Name: "after", Usage: "cursor from a previous page"},
				},
				Action: withClient(feed),
			},
			{
				Name:  "comments",
				Usage: "print the comment threads of an object",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
					&cli.IntFlag{Name: "limit", Value: 25},
				},
				Action: withClient(comments),
			},
			{
				Name:   "permissions",
				Usage:  "list the permissions granted to the app",
				Action: withClient(permissions),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type action func(ctx context.Context, c *cli.Context, client *fbgraph.Client, logger *slog.Logger) error

func withClient(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config"), c.StringSlice("env-file")...)
		if err != nil {
			return err
		}
		if lvl := c.String("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		color := true
		if cfg.Logging.Color != nil {
			color = *cfg.Logging.Color
		}
		logger := internal.NewConsoleLogger(os.Stderr, cfg.LogLevel(), color)

		client, err := fbgraph.NewClient(cfg.ClientConfig(logger))
		if err != nil {
			return err
		}
		return fn(c.Context, c, client, logger)
	}
}

func authURL(_ context.Context, c *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	state := fbgraph.NewState()
	u, err := client.OAuth.BuildAuthorizationURL(state, tokenset.Parse[types.Scope](c.String("scope")))
	if err != nil {
		return err
	}
	fmt.Printf("state: %s\n%s\n", state, u)
	return nil
}

func exchange(ctx context.Context, c *cli.Context, client *fbgraph.Client, logger *slog.Logger) error {
	resp, err := client.OAuth.ExchangeAuthorizationCode(ctx, c.String("code"))
	if err != nil {
		return err
	}
	token := resp.Data
	if c.Bool("long-lived") {
		renewed, err := client.OAuth.RenewAccessToken(ctx, token.Token)
		if err != nil {
			return err
		}
		token = renewed.Data
	}
	logger.Info("token received", slog.Int64("expires_in", token.ExpiresIn))
	fmt.Println(token.Token)
	return nil
}

func appToken(ctx context.Context, _ *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	tok, err := client.OAuth.AppTokenSource(ctx).Token()
	if err != nil {
		return err
	}
	fmt.Println(tok.AccessToken)
	return nil
}

func me(ctx context.Context, _ *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	resp, err := client.Users.Me(ctx, types.FieldID.With(types.FieldName, types.FieldEmail, types.FieldLocale))
	if err != nil {
		return err
	}
	u := resp.Data
	fmt.Printf("%s (%s)\n", u.Name, u.ID)
	if u.HasEmail() {
		fmt.Printf("email: %s\n", u.Email)
	}
	if u.HasLocale() {
		fmt.Printf("locale: %s\n", u.Locale)
	}
	return nil
}

func feed(ctx context.Context, c *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	resp, err := client.Posts.Feed(ctx, options.EdgeOptions{
		ID:     c.String("id"),
		Fields: types.FieldID.With(types.FieldMessage, types.FieldStory, types.FieldCreatedTime),
		Limit:  c.Int("limit"),
		After:  c.String("after"),
	})
	if err != nil {
		return err
	}

	for _, post := range resp.Data.Data {
		text := post.Message
		if !post.HasMessage() {
			text = post.Story
		}
		fmt.Printf("%s  %s  %s\n", post.CreatedTime.Format("2006-01-02 15:04"), post.ID, text)
	}
	if resp.Data.Paging.HasNext() {
		fmt.Printf("next page: --after %s\n", resp.Data.Paging.AfterCursor())
	}
	return nil
}

func comments(ctx context.Context, c *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	resp, err := client.Comments.List(ctx, options.EdgeOptions{
		ID:      c.String("id"),
		Fields:  types.FieldID.With(types.FieldMessage, types.FieldFrom, types.FieldParent),
		Limit:   c.Int("limit"),
		Summary: true,
	})
	if err != nil {
		return err
	}

	tree := fbgraph.NewCommentTree(resp.Data.Data)
	var printThread func(list []*types.Comment, depth int)
	printThread = func(list []*types.Comment, depth int) {
		for _, comment := range list {
			author := "?"
			if comment.From != nil {
				author = comment.From.Name
			}
			fmt.Printf("%s%s: %s\n", strings.Repeat("  ", depth), author, comment.Message)
			printThread(tree.Replies(comment.ID), depth+1)
		}
	}
	printThread(tree.GetTopLevel(), 0)

	if resp.Data.Summary != nil {
		fmt.Printf("%d comments in total\n", resp.Data.Summary.TotalCount)
	}
	return nil
}

func permissions(ctx context.Context, _ *cli.Context, client *fbgraph.Client, _ *slog.Logger) error {
	resp, err := client.Permissions.List(ctx, options.PermissionsOptions{UserID: "me"})
	if err != nil {
		return err
	}
	for _, p := range resp.Data.Data {
		fmt.Printf("%-24s %s\n", p.Scope, p.Status)
	}
	return nil
}
