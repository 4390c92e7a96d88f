// Package types holds the Graph API entities and the parsers that build them.
//
// Entities are created only by their Parse function and are not modified afterwards.
// Each one records which keys were present in the source payload, so a caller can
// tell a field that was absent from one that was sent with its zero value:
//
//	post, _ := types.ParsePost(obj)
//	if post.HasMessage() && post.Message == "" {
//		// the post has an explicitly empty message
//	}
package types

import (
	"time"

	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
)

// GraphObject defines the common behavior of Graph nodes.
type GraphObject interface {
	GetID() string
	Has(Field) bool
}

// Tracked records key presence for an entity. It is embedded by every entity.
type Tracked struct {
	presence jsonobj.Presence
}

// Has reports whether the field's key was present in the source payload,
// regardless of the value it held.
func (t Tracked) Has(f Field) bool {
	return t.presence.Has(string(f))
}

// PresentFields returns the sorted names of the fields present in the payload.
func (t Tracked) PresentFields() []string {
	return t.presence.Present()
}

// Node holds the identifier shared by Graph nodes.
type Node struct {
	Tracked
	ID string
}

// GetID returns the node's ID.
func (n Node) GetID() string {
	return n.ID
}

// Cursors mark the first and last items of a returned page.
type Cursors struct {
	Tracked
	Before string
	After  string
}

// Paging carries pagination cursors and links. They are surfaced, never followed.
type Paging struct {
	Tracked
	Cursors  *Cursors
	Next     string
	Previous string
}

// HasNext reports whether the provider advertised a next page.
func (p *Paging) HasNext() bool {
	return p != nil && p.Next != ""
}

// AfterCursor returns the cursor to pass as "after" for the next page, or "".
func (p *Paging) AfterCursor() string {
	if p == nil || p.Cursors == nil {
		return ""
	}
	return p.Cursors.After
}

// Summary is returned on edges requested with summary=true.
type Summary struct {
	Tracked
	TotalCount int
	CanComment bool
}

// List is a page of an edge such as /{id}/likes.
type List[T any] struct {
	Tracked
	Data    []*T
	Paging  *Paging
	Summary *Summary
}

// Len returns the number of items on the page.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Data)
}

// PostStatusType is the kind of a post.
type PostStatusType string

// Known post status types.
const (
	StatusTypeUnknown         PostStatusType = ""
	StatusTypeMobileStatus    PostStatusType = "mobile_status_update"
	StatusTypeCreatedNote     PostStatusType = "created_note"
	StatusTypeAddedPhotos     PostStatusType = "added_photos"
	StatusTypeAddedVideo      PostStatusType = "added_video"
	StatusTypeSharedStory     PostStatusType = "shared_story"
	StatusTypeCreatedGroup    PostStatusType = "created_group"
	StatusTypeCreatedEvent    PostStatusType = "created_event"
	StatusTypeWallPost        PostStatusType = "wall_post"
	StatusTypeAppCreatedStory PostStatusType = "app_created_story"
	StatusTypePublishedStory  PostStatusType = "published_story"
	StatusTypeTaggedInPhoto   PostStatusType = "tagged_in_photo"
	StatusTypeApprovedFriend  PostStatusType = "approved_friend"
)

// Post is an entry in a profile's feed.
type Post struct {
	Node
	Message      string
	Story        string
	CreatedTime  time.Time
	UpdatedTime  time.Time
	From         *User
	PermalinkURL string
	Link         string
	StatusType   PostStatusType
	FullPicture  string
	SharesCount  int
	IsHidden     bool
	Likes        *List[Like]
	Comments     *List[Comment]
}

// HasMessage reports whether the payload carried "message".
func (p *Post) HasMessage() bool { return p.Has(FieldMessage) }

// HasStory reports whether the payload carried "story".
func (p *Post) HasStory() bool { return p.Has(FieldStory) }

// HasCreatedTime reports whether the payload carried "created_time".
func (p *Post) HasCreatedTime() bool { return p.Has(FieldCreatedTime) }

// HasFrom reports whether the payload carried "from".
func (p *Post) HasFrom() bool { return p.Has(FieldFrom) }

// HasPermalinkURL reports whether the payload carried "permalink_url".
func (p *Post) HasPermalinkURL() bool { return p.Has(FieldPermalinkURL) }

// HasStatusType reports whether the payload carried "status_type".
func (p *Post) HasStatusType() bool { return p.Has(FieldStatusType) }

// HasShares reports whether the payload carried "shares".
func (p *Post) HasShares() bool { return p.Has(FieldShares) }

// HasLikes reports whether the payload carried "likes".
func (p *Post) HasLikes() bool { return p.Has(FieldLikes) }

// HasComments reports whether the payload carried "comments".
func (p *Post) HasComments() bool { return p.Has(FieldComments) }

// Like is a profile that liked an object.
type Like struct {
	Node
	Name string
}

// HasName reports whether the payload carried "name".
func (l *Like) HasName() bool { return l.Has(FieldName) }

// Comment is a comment on an object.
type Comment struct {
	Node
	Message      string
	CreatedTime  time.Time
	From         *User
	LikeCount    int
	CommentCount int
	UserLikes    bool
	Parent       *Comment
}

// HasMessage reports whether the payload carried "message".
func (c *Comment) HasMessage() bool { return c.Has(FieldMessage) }

// HasFrom reports whether the payload carried "from".
func (c *Comment) HasFrom() bool { return c.Has(FieldFrom) }

// HasLikeCount reports whether the payload carried "like_count".
func (c *Comment) HasLikeCount() bool { return c.Has(FieldLikeCount) }

// HasCommentCount reports whether the payload carried "comment_count".
func (c *Comment) HasCommentCount() bool { return c.Has(FieldCommentCount) }

// HasParent reports whether the payload carried "parent".
func (c *Comment) HasParent() bool { return c.Has(FieldParent) }

// PhotoImage is one rendition of a photo.
type PhotoImage struct {
	Tracked
	Source string
	Width  int
	Height int
}

// Photo is an uploaded image.
type Photo struct {
	Node
	Name        string
	Link        string
	Picture     string
	Width       int
	Height      int
	CreatedTime time.Time
	From        *User
	Images      []*PhotoImage
}

// HasName reports whether the payload carried "name".
func (p *Photo) HasName() bool { return p.Has(FieldName) }

// HasImages reports whether the payload carried "images".
func (p *Photo) HasImages() bool { return p.Has(FieldImages) }

// HasFrom reports whether the payload carried "from".
func (p *Photo) HasFrom() bool { return p.Has(FieldFrom) }

// PhotoUpload is the result of publishing a photo.
type PhotoUpload struct {
	Node
	PostID string
}

// HasPostID reports whether the payload carried "post_id".
func (p *PhotoUpload) HasPostID() bool { return p.Has(FieldPostID) }

// ProfilePicture is the data of a /{user}/picture edge.
type ProfilePicture struct {
	Tracked
	URL          string
	Width        int
	Height       int
	IsSilhouette bool
}

// User is a person's profile.
type User struct {
	Node
	Name      string
	FirstName string
	LastName  string
	Email     string
	Locale    string
	Link      string
	Picture   *ProfilePicture
}

// HasName reports whether the payload carried "name".
func (u *User) HasName() bool { return u.Has(FieldName) }

// HasEmail reports whether the payload carried "email".
func (u *User) HasEmail() bool { return u.Has(FieldEmail) }

// HasLocale reports whether the payload carried "locale".
func (u *User) HasLocale() bool { return u.Has(FieldLocale) }

// HasPicture reports whether the payload carried "picture".
func (u *User) HasPicture() bool { return u.Has(FieldPicture) }

// PermissionStatus is the grant state of a permission.
type PermissionStatus string

// Known permission states.
const (
	PermissionUnknown  PermissionStatus = "unknown"
	PermissionGranted  PermissionStatus = "granted"
	PermissionDeclined PermissionStatus = "declined"
	PermissionExpired  PermissionStatus = "expired"
)

// Permission is one entry of /{user}/permissions.
type Permission struct {
	Tracked
	Scope  Scope
	Status PermissionStatus
}

// HasStatus reports whether the payload carried "status".
func (p *Permission) HasStatus() bool { return p.Has(FieldStatus) }

// GrantedScopes collects the scopes whose status is granted.
func GrantedScopes(perms []*Permission) Scopes {
	var out Scopes
	for _, p := range perms {
		if p != nil && p.Status == PermissionGranted {
			out = out.With(p.Scope)
		}
	}
	return out
}

// AccessToken is a token endpoint response.
type AccessToken struct {
	Tracked
	Token     string
	TokenType string
	// ExpiresIn is the lifetime in seconds. Zero when the token does not expire
	// or the provider omitted it.
	ExpiresIn int64
}

// HasExpiresIn reports whether the payload carried "expires_in".
func (a *AccessToken) HasExpiresIn() bool { return a.Has(FieldExpiresIn) }
