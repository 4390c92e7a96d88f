// Package fbgraph provides a Go wrapper for the Facebook Graph API and its OAuth login flow.
//
// # Overview
//
// The package builds Graph requests, attaches the access token, version and
// locale to them, sends them through a rate-limited transport and parses the
// JSON replies into entities from the types package. Each entity records which
// keys the payload carried, so an absent field can be told apart from one sent
// with its zero value.
//
// # Features
//
//   - OAuth dialog URLs, code exchange, long-lived token renewal and app tokens
//   - appsecret_proof signing for apps that require it
//   - Typed endpoints for posts, feeds, likes, comments, photos, users and permissions
//   - Raw variants of every endpoint for callers that parse the body themselves
//   - Client-side rate limiting that honors Retry-After and X-Business-Use-Case-Usage
//   - Structured logging via log/slog with credentials redacted
//   - Comment threading with NewCommentTree
//
// # Quick Start
//
// Reading with an existing token:
//
//	client, err := fbgraph.NewClient(&fbgraph.Config{
//		AccessToken: os.Getenv("FB_ACCESS_TOKEN"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Posts.Get(ctx, options.ObjectOptions{
//		ID:     "123_456",
//		Fields: types.FieldID.With(types.FieldMessage, types.FieldCreatedTime),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if resp.Data.HasMessage() {
//		fmt.Println(resp.Data.Message)
//	}
//
// NewClient performs no network activity. Operations check the properties they
// need when called and return a *errors.PreconditionError before sending
// anything when one is unset.
//
// # Login Flow
//
//	state := fbgraph.NewState()
//	dialog, err := client.OAuth.BuildAuthorizationURL(state, types.ScopeEmail.With(types.ScopeUserPosts))
//	// redirect the user to dialog, then on the callback check state and:
//	token, err := client.OAuth.ExchangeAuthorizationCode(ctx, r.URL.Query().Get("code"))
//	if err != nil {
//		return err
//	}
//	client.OAuth.SetAccessToken(token.Data.Token)
//
// The token operations never change the stored token; apply the result with
// SetAccessToken.
//
// # Pagination
//
// Edge responses carry Paging with cursors and next/previous links. They are
// surfaced but never followed. To fetch the next page pass the after cursor:
//
//	page, err := client.Comments.List(ctx, options.EdgeOptions{ID: postID, Limit: 25})
//	if err == nil && page.Data.Paging.HasNext() {
//		next, err := client.Comments.List(ctx, options.EdgeOptions{
//			ID:    postID,
//			Limit: 25,
//			After: page.Data.Paging.AfterCursor(),
//		})
//	}
//
// # Error Handling
//
//	resp, err := client.Users.Me(ctx, nil)
//	if err != nil {
//		var apiErr *errors.APIError
//		var pre *errors.PreconditionError
//		switch {
//		case stderrors.As(err, &pre):
//			// missing argument or client property, nothing was sent
//		case stderrors.As(err, &apiErr):
//			// Graph error envelope; apiErr.Code 190 means the token is invalid
//		}
//	}
//
// The other kinds are *errors.ConfigError, *errors.RequestError and *errors.ParseError.
//
// # Logging
//
// Provide a logger in the config. Access tokens, client secrets, proofs and
// codes are masked in every record the client writes:
//
//	config := &fbgraph.Config{
//		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
//	}
//
// # Graph API Documentation
//
// See https://developers.facebook.com/docs/graph-api for endpoint details.
package fbgraph
