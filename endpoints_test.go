package fbgraph

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/options"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
	"github.com/jamesprial/go-facebook-graph-wrapper/test_helpers"
)

func newMockClient(t *testing.T) (*Client, *test_helpers.MockServer) {
	t.Helper()
	ms := test_helpers.NewMockServer()
	t.Cleanup(ms.Close)

	client, err := NewClient(&Config{
		AccessToken: "user-token",
		Locale:      "en_US",
		GraphURL:    ms.URL(),
		HTTPClient:  ms.Client(),
		RateLimit:   &RateLimitConfig{RequestsPerMinute: 60000, Burst: 100},
	})
	require.NoError(t, err)
	return client, ms
}

func TestPosts_Get(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/123_456", `{
		"id": "123_456",
		"message": "hello",
		"from": {"id": "123", "name": "Alice"},
		"shares": {"count": 4},
		"status_type": "mobile_status_update",
		"likes": {"data": [{"id": "9", "name": "Bob"}], "summary": {"total_count": 1}}
	}`)

	resp, err := client.Posts.Get(context.Background(), options.ObjectOptions{
		ID:     "123_456",
		Fields: types.FieldID.With(types.FieldMessage, types.FieldFrom),
	})
	require.NoError(t, err)

	post := resp.Data
	assert.Equal(t, "hello", post.Message)
	require.NotNil(t, post.From)
	assert.Equal(t, "Alice", post.From.Name)
	assert.Equal(t, 4, post.SharesCount)
	assert.Equal(t, types.StatusTypeMobileStatus, post.StatusType)
	require.NotNil(t, post.Likes)
	assert.Equal(t, 1, post.Likes.Len())
	assert.Equal(t, 1, post.Likes.Summary.TotalCount)
	assert.False(t, post.HasComments())

	last := ms.GetLastRequest()
	require.NotNil(t, last)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "id,message,from", last.Query.Get("fields"))
	assert.Equal(t, "user-token", last.Query.Get("access_token"))
	assert.Equal(t, "en_US", last.Query.Get("locale"))
}

func TestPosts_GetRaw(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/1", `{"id":"1"}`)

	raw, err := client.Posts.GetRaw(context.Background(), options.ObjectOptions{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.JSONEq(t, `{"id":"1"}`, string(raw.Body))
	assert.False(t, ms.GetLastRequest().Query.Has("fields"))
}

func TestPosts_Feed(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/me/feed", `{
		"data": [{"id": "1_1"}, {"id": "1_2", "story": "shared a link"}],
		"paging": {"cursors": {"before": "B", "after": "A"}, "next": "https://graph.facebook.com/v2.9/me/feed?after=A"}
	}`)

	resp, err := client.Posts.Feed(context.Background(), options.EdgeOptions{ID: "me", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Data.Len())
	assert.True(t, resp.Data.Data[1].HasStory())
	assert.True(t, resp.Data.Paging.HasNext())
	assert.Equal(t, "A", resp.Data.Paging.AfterCursor())
	assert.Equal(t, "2", ms.GetLastRequest().Query.Get("limit"))
}

func TestLikes_List(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/123_456/likes", `{"data":[{"id":"1","name":"A"},{"id":"2"}],"summary":{"total_count":10}}`)

	resp, err := client.Likes.List(context.Background(), options.EdgeOptions{ID: "123_456", Summary: true})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Data.Len())
	assert.True(t, resp.Data.Data[0].HasName())
	assert.False(t, resp.Data.Data[1].HasName())
	assert.Equal(t, 10, resp.Data.Summary.TotalCount)
	assert.Equal(t, "true", ms.GetLastRequest().Query.Get("summary"))
}

func TestComments_ListIntoTree(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/123_456/comments", `{"data":[
		{"id":"c1","message":"top","from":{"id":"u1"}},
		{"id":"c2","message":"reply","parent":{"id":"c1"}},
		{"id":"c3","message":"other"}
	]}`)

	resp, err := client.Comments.List(context.Background(), options.EdgeOptions{
		ID:     "123_456",
		Fields: types.FieldID.With(types.FieldMessage, types.FieldParent, types.FieldFrom),
	})
	require.NoError(t, err)

	tree := NewCommentTree(resp.Data.Data)
	assert.Equal(t, 3, tree.Count())
	assert.Len(t, tree.GetTopLevel(), 2)
	require.Len(t, tree.Replies("c1"), 1)
	assert.Equal(t, "c2", tree.Replies("c1")[0].ID)
	assert.Len(t, tree.GetByAuthor("u1"), 1)
}

func TestPhotos_Upload(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/me/photos", `{"id":"55","post_id":"1_55"}`)

	resp, err := client.Photos.Upload(context.Background(), options.PhotoUploadOptions{
		Target:    "me",
		URL:       "https://example.com/cat.jpg",
		Caption:   "cat",
		Published: options.Bool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "55", resp.Data.ID)
	assert.Equal(t, "1_55", resp.Data.PostID)

	last := ms.GetLastRequest()
	require.NotNil(t, last)
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "https://example.com/cat.jpg", last.Form.Get("url"))
	assert.Equal(t, "cat", last.Form.Get("caption"))
	assert.Equal(t, "false", last.Form.Get("published"))
	assert.False(t, last.Form.Has("no_story"))
	assert.Equal(t, "user-token", last.Query.Get("access_token"))
}

func TestPhotos_Get(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/55", `{"id":"55","images":[{"source":"https://cdn/x.jpg","width":720,"height":480}]}`)

	resp, err := client.Photos.Get(context.Background(), options.ObjectOptions{ID: "55"})
	require.NoError(t, err)
	require.Len(t, resp.Data.Images, 1)
	assert.Equal(t, 720, resp.Data.Images[0].Width)
	assert.False(t, resp.Data.HasName())
}

func TestUsers_Me(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/me", `{"id":"10","name":"Alice","picture":{"data":{"url":"https://cdn/p.jpg","is_silhouette":false}}}`)

	resp, err := client.Users.Me(context.Background(), types.FieldID.With(types.FieldName, types.FieldPicture))
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Data.Name)
	require.NotNil(t, resp.Data.Picture)
	assert.Equal(t, "https://cdn/p.jpg", resp.Data.Picture.URL)
	assert.Equal(t, "id,name,picture", ms.GetLastRequest().Query.Get("fields"))
}

func TestPermissions(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetJSON("/v2.9/me/permissions", `{"data":[
		{"permission":"public_profile","status":"granted"},
		{"permission":"email","status":"declined"},
		{"permission":"user_posts","status":"granted"}
	]}`)

	resp, err := client.Permissions.List(context.Background(), options.PermissionsOptions{UserID: "me"})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Data.Len())
	assert.Equal(t, types.PermissionDeclined, resp.Data.Data[1].Status)

	granted, err := client.Permissions.Granted(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, "public_profile,user_posts", granted.String())
}

func TestEndpoints_PreconditionsSendNothing(t *testing.T) {
	client, ms := newMockClient(t)
	ctx := context.Background()

	_, err := client.Posts.Get(ctx, options.ObjectOptions{})
	requirePrecondition(t, err, "ID")

	_, err = client.Likes.List(ctx, options.EdgeOptions{})
	requirePrecondition(t, err, "ID")

	_, err = client.Photos.Upload(ctx, options.PhotoUploadOptions{Target: "me"})
	requirePrecondition(t, err, "URL")

	_, err = client.Permissions.Granted(ctx, "")
	requirePrecondition(t, err, "UserID")

	_, err = client.Comments.ListRaw(ctx, options.EdgeOptions{ID: "1", After: "a", Before: "b"})
	requirePrecondition(t, err, "Before")

	assert.Empty(t, ms.GetRequestLog())
}

func TestEndpoints_APIError(t *testing.T) {
	client, ms := newMockClient(t)
	ms.SetGraphError("/v2.9/me", http.StatusUnauthorized, 190, "Error validating access token")

	resp, err := client.Users.Me(context.Background(), nil)
	assert.Nil(t, resp)

	var apiErr *pkgerrs.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, 190, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	raw, err := client.Users.GetRaw(context.Background(), options.ObjectOptions{ID: "me"})
	require.NoError(t, err, "raw calls return non-2xx responses undecoded")
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(&Config{})
	require.NoError(t, err)
	assert.NotNil(t, client.OAuth)
	assert.NotNil(t, client.Posts)
	assert.NotNil(t, client.Permissions)

	_, err = NewClient(nil)
	var cfgErr *pkgerrs.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
