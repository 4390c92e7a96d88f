package fbgraph

import (
	"context"
	"log/slog"

	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/options"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// Each endpoint family has Raw methods, which validate their options, send the
// request and return the undecoded response, and typed methods, which pass
// that response through Wrap with the matching parser.
//
// Invalid options fail with a *errors.PreconditionError before any network
// activity.

type endpoint struct {
	client *OAuthClient
	logger *slog.Logger
}

func (e endpoint) send(ctx context.Context, req *options.Request, err error) (*types.RawResponse, error) {
	if err != nil {
		return nil, err
	}
	return e.client.DoRequest(ctx, req)
}

func fetch[T any](ctx context.Context, e endpoint, op string, req *options.Request, err error, parse jsonobj.Parser[T]) (*Response[T], error) {
	raw, err := e.send(ctx, req, err)
	if err != nil {
		return nil, err
	}
	return wrap(e.logger, op, raw, parse)
}

// PostsEndpoint reads posts and feeds.
type PostsEndpoint struct{ endpoint }

// GetRaw fetches GET /{id}.
func (e *PostsEndpoint) GetRaw(ctx context.Context, opts options.ObjectOptions) (*types.RawResponse, error) {
	req, err := opts.Request()
	return e.send(ctx, req, err)
}

// Get fetches a single post.
func (e *PostsEndpoint) Get(ctx context.Context, opts options.ObjectOptions) (*Response[types.Post], error) {
	req, err := opts.Request()
	return fetch(ctx, e.endpoint, "Posts.Get", req, err, types.ParsePost)
}

// FeedRaw fetches GET /{id}/feed.
func (e *PostsEndpoint) FeedRaw(ctx context.Context, opts options.EdgeOptions) (*types.RawResponse, error) {
	req, err := opts.Request(options.EdgeFeed)
	return e.send(ctx, req, err)
}

// Feed fetches one page of a profile's feed.
func (e *PostsEndpoint) Feed(ctx context.Context, opts options.EdgeOptions) (*Response[types.List[types.Post]], error) {
	req, err := opts.Request(options.EdgeFeed)
	return fetch(ctx, e.endpoint, "Posts.Feed", req, err, types.ListParser(types.ParsePost))
}

// LikesEndpoint reads the likes edge of an object.
type LikesEndpoint struct{ endpoint }

// ListRaw fetches GET /{id}/likes.
func (e *LikesEndpoint) ListRaw(ctx context.Context, opts options.EdgeOptions) (*types.RawResponse, error) {
	req, err := opts.Request(options.EdgeLikes)
	return e.send(ctx, req, err)
}

// List fetches one page of likes.
func (e *LikesEndpoint) List(ctx context.Context, opts options.EdgeOptions) (*Response[types.List[types.Like]], error) {
	req, err := opts.Request(options.EdgeLikes)
	return fetch(ctx, e.endpoint, "Likes.List", req, err, types.ListParser(types.ParseLike))
}

// CommentsEndpoint reads the comments edge of an object.
type CommentsEndpoint struct{ endpoint }

// ListRaw fetches GET /{id}/comments.
func (e *CommentsEndpoint) ListRaw(ctx context.Context, opts options.EdgeOptions) (*types.RawResponse, error) {
	req, err := opts.Request(options.EdgeComments)
	return e.send(ctx, req, err)
}

// List fetches one page of comments. Use NewCommentTree on the page's Data to
// arrange replies under their parents.
func (e *CommentsEndpoint) List(ctx context.Context, opts options.EdgeOptions) (*Response[types.List[types.Comment]], error) {
	req, err := opts.Request(options.EdgeComments)
	return fetch(ctx, e.endpoint, "Comments.List", req, err, types.ListParser(types.ParseComment))
}

// PhotosEndpoint reads and publishes photos.
type PhotosEndpoint struct{ endpoint }

// GetRaw fetches GET /{id}.
func (e *PhotosEndpoint) GetRaw(ctx context.Context, opts options.ObjectOptions) (*types.RawResponse, error) {
	req, err := opts.Request()
	return e.send(ctx, req, err)
}

// Get fetches a single photo.
func (e *PhotosEndpoint) Get(ctx context.Context, opts options.ObjectOptions) (*Response[types.Photo], error) {
	req, err := opts.Request()
	return fetch(ctx, e.endpoint, "Photos.Get", req, err, types.ParsePhoto)
}

// UploadRaw sends POST /{target}/photos.
func (e *PhotosEndpoint) UploadRaw(ctx context.Context, opts options.PhotoUploadOptions) (*types.RawResponse, error) {
	req, err := opts.Request()
	return e.send(ctx, req, err)
}

// Upload publishes a photo from a URL.
func (e *PhotosEndpoint) Upload(ctx context.Context, opts options.PhotoUploadOptions) (*Response[types.PhotoUpload], error) {
	req, err := opts.Request()
	return fetch(ctx, e.endpoint, "Photos.Upload", req, err, types.ParsePhotoUpload)
}

// UsersEndpoint reads user profiles.
type UsersEndpoint struct{ endpoint }

// GetRaw fetches GET /{id}.
func (e *UsersEndpoint) GetRaw(ctx context.Context, opts options.ObjectOptions) (*types.RawResponse, error) {
	req, err := opts.Request()
	return e.send(ctx, req, err)
}

// Get fetches a user. The ID "me" names the token's owner.
func (e *UsersEndpoint) Get(ctx context.Context, opts options.ObjectOptions) (*Response[types.User], error) {
	req, err := opts.Request()
	return fetch(ctx, e.endpoint, "Users.Get", req, err, types.ParseUser)
}

// Me fetches the profile of the access token's owner.
func (e *UsersEndpoint) Me(ctx context.Context, fields types.Fields) (*Response[types.User], error) {
	return e.Get(ctx, options.ObjectOptions{ID: "me", Fields: fields})
}

// PermissionsEndpoint reads the permissions a user granted the app.
type PermissionsEndpoint struct{ endpoint }

// ListRaw fetches GET /{user}/permissions.
func (e *PermissionsEndpoint) ListRaw(ctx context.Context, opts options.PermissionsOptions) (*types.RawResponse, error) {
	req, err := opts.Request()
	return e.send(ctx, req, err)
}

// List fetches the user's permissions and their status.
func (e *PermissionsEndpoint) List(ctx context.Context, opts options.PermissionsOptions) (*Response[types.List[types.Permission]], error) {
	req, err := opts.Request()
	return fetch(ctx, e.endpoint, "Permissions.List", req, err, types.ListParser(types.ParsePermission))
}

// Granted returns the scopes the user has currently granted.
func (e *PermissionsEndpoint) Granted(ctx context.Context, userID string) (types.Scopes, error) {
	resp, err := e.List(ctx, options.PermissionsOptions{UserID: userID})
	if err != nil || resp == nil {
		return nil, err
	}
	return types.GrantedScopes(resp.Data.Data), nil
}
