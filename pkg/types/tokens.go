package types

import "github.com/jamesprial/go-facebook-graph-wrapper/pkg/tokenset"

// Field names a node field that can be requested through the fields query parameter.
type Field string

// Scope names an OAuth permission.
type Scope string

// Fields is an ordered set of requested fields.
type Fields = tokenset.Set[Field]

// Scopes is an ordered set of OAuth permissions.
type Scopes = tokenset.Set[Scope]

// With combines two fields into a set, e.g. FieldID.With(FieldMessage).
func (f Field) With(others ...Field) Fields {
	return tokenset.Of(f).With(others...)
}

// With combines two scopes into a set, e.g. ScopeEmail.With(ScopeUserPosts).
func (s Scope) With(others ...Scope) Scopes {
	return tokenset.Of(s).With(others...)
}

// Known node fields.
const (
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldMessage       Field = "message"
	FieldStory         Field = "story"
	FieldCreatedTime   Field = "created_time"
	FieldUpdatedTime   Field = "updated_time"
	FieldFrom          Field = "from"
	FieldPermalinkURL  Field = "permalink_url"
	FieldLink          Field = "link"
	FieldStatusType    Field = "status_type"
	FieldFullPicture   Field = "full_picture"
	FieldPicture       Field = "picture"
	FieldShares        Field = "shares"
	FieldLikes         Field = "likes"
	FieldComments      Field = "comments"
	FieldLikeCount     Field = "like_count"
	FieldCommentCount  Field = "comment_count"
	FieldParent        Field = "parent"
	FieldWidth         Field = "width"
	FieldHeight        Field = "height"
	FieldImages        Field = "images"
	FieldSource        Field = "source"
	FieldPostID        Field = "post_id"
	FieldFirstName     Field = "first_name"
	FieldLastName      Field = "last_name"
	FieldEmail         Field = "email"
	FieldLocale        Field = "locale"
	FieldPermission    Field = "permission"
	FieldStatus        Field = "status"
	FieldAccessToken   Field = "access_token"
	FieldTokenType     Field = "token_type"
	FieldExpiresIn     Field = "expires_in"
	FieldData          Field = "data"
	FieldPaging        Field = "paging"
	FieldSummary       Field = "summary"
	FieldCursors       Field = "cursors"
	FieldBefore        Field = "before"
	FieldAfter         Field = "after"
	FieldNext          Field = "next"
	FieldPrevious      Field = "previous"
	FieldTotalCount    Field = "total_count"
	FieldURL           Field = "url"
	FieldIsSilhouette  Field = "is_silhouette"
	FieldCanComment    Field = "can_comment"
	FieldUserLikes     Field = "user_likes"
	FieldIsHidden      Field = "is_hidden"
	FieldAlbum         Field = "album"
	FieldPlace         Field = "place"
	FieldBackdatedTime Field = "backdated_time"
)

// Known OAuth permissions.
const (
	ScopePublicProfile       Scope = "public_profile"
	ScopeEmail               Scope = "email"
	ScopeUserFriends         Scope = "user_friends"
	ScopeUserPosts           Scope = "user_posts"
	ScopeUserPhotos          Scope = "user_photos"
	ScopeUserLikes           Scope = "user_likes"
	ScopeUserBirthday        Scope = "user_birthday"
	ScopeUserLocation        Scope = "user_location"
	ScopePublishActions      Scope = "publish_actions"
	ScopeManagePages         Scope = "manage_pages"
	ScopePublishPages        Scope = "publish_pages"
	ScopePagesShowList       Scope = "pages_show_list"
	ScopePagesMessaging      Scope = "pages_messaging"
	ScopePagesManageMetadata Scope = "pages_manage_metadata"
	ScopePagesReadEngagement Scope = "pages_read_engagement"
)

// NewFieldRegistry returns a registry of every field this package knows about.
// Build it once at startup and share it; it is read-only.
func NewFieldRegistry() *tokenset.Registry[Field] {
	return tokenset.NewRegistry(
		FieldID, FieldName, FieldMessage, FieldStory, FieldCreatedTime, FieldUpdatedTime,
		FieldFrom, FieldPermalinkURL, FieldLink, FieldStatusType, FieldFullPicture, FieldPicture,
		FieldShares, FieldLikes, FieldComments, FieldLikeCount, FieldCommentCount, FieldParent,
		FieldWidth, FieldHeight, FieldImages, FieldSource, FieldPostID, FieldFirstName,
		FieldLastName, FieldEmail, FieldLocale, FieldPermission, FieldStatus, FieldAccessToken,
		FieldTokenType, FieldExpiresIn, FieldCanComment, FieldUserLikes, FieldIsHidden,
		FieldAlbum, FieldPlace, FieldBackdatedTime,
	)
}

// NewScopeRegistry returns a registry of every permission this package knows about.
func NewScopeRegistry() *tokenset.Registry[Scope] {
	return tokenset.NewRegistry(
		ScopePublicProfile, ScopeEmail, ScopeUserFriends, ScopeUserPosts, ScopeUserPhotos,
		ScopeUserLikes, ScopeUserBirthday, ScopeUserLocation, ScopePublishActions,
		ScopeManagePages, ScopePublishPages, ScopePagesShowList, ScopePagesMessaging,
		ScopePagesManageMetadata, ScopePagesReadEngagement,
	)
}
