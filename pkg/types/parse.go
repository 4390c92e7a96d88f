package types

import (
	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/jsonobj"
)

// Keys read by each parser. Presence is recorded for exactly these keys.
var (
	cursorsKeys     = keys(FieldBefore, FieldAfter)
	pagingKeys      = keys(FieldCursors, FieldNext, FieldPrevious)
	summaryKeys     = keys(FieldTotalCount, FieldCanComment)
	listKeys        = keys(FieldData, FieldPaging, FieldSummary)
	postKeys        = keys(FieldID, FieldMessage, FieldStory, FieldCreatedTime, FieldUpdatedTime, FieldFrom, FieldPermalinkURL, FieldLink, FieldStatusType, FieldFullPicture, FieldShares, FieldIsHidden, FieldLikes, FieldComments)
	likeKeys        = keys(FieldID, FieldName)
	commentKeys     = keys(FieldID, FieldMessage, FieldCreatedTime, FieldFrom, FieldLikeCount, FieldCommentCount, FieldUserLikes, FieldParent)
	photoImageKeys  = keys(FieldSource, FieldWidth, FieldHeight)
	photoKeys       = keys(FieldID, FieldName, FieldLink, FieldPicture, FieldWidth, FieldHeight, FieldCreatedTime, FieldFrom, FieldImages)
	photoUploadKeys = keys(FieldID, FieldPostID)
	pictureKeys     = keys(FieldURL, FieldWidth, FieldHeight, FieldIsSilhouette)
	userKeys        = keys(FieldID, FieldName, FieldFirstName, FieldLastName, FieldEmail, FieldLocale, FieldLink, FieldPicture)
	permissionKeys  = keys(FieldPermission, FieldStatus)
	tokenKeys       = keys(FieldAccessToken, FieldTokenType, FieldExpiresIn)
)

func keys(fields ...Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func requireString(o jsonobj.Object, op string, f Field) (string, error) {
	s := o.String(string(f))
	if s == "" {
		return "", &pkgerrs.ParseError{Operation: op, Message: string(f) + " is required"}
	}
	return s, nil
}

func parseNode(o jsonobj.Object, op string, known []string) (Node, error) {
	id, err := requireString(o, op, FieldID)
	if err != nil {
		return Node{}, err
	}
	return Node{Tracked: Tracked{presence: o.Presence(known...)}, ID: id}, nil
}

// ParseCursors builds Cursors from a paging.cursors object.
func ParseCursors(o jsonobj.Object) (*Cursors, error) {
	if o == nil {
		return nil, nil
	}
	return &Cursors{
		Tracked: Tracked{presence: o.Presence(cursorsKeys...)},
		Before:  o.String(string(FieldBefore)),
		After:   o.String(string(FieldAfter)),
	}, nil
}

// ParsePaging builds Paging from a list's paging object.
func ParsePaging(o jsonobj.Object) (*Paging, error) {
	if o == nil {
		return nil, nil
	}
	return &Paging{
		Tracked:  Tracked{presence: o.Presence(pagingKeys...)},
		Cursors:  jsonobj.ObjectOf(o, string(FieldCursors), ParseCursors),
		Next:     o.String(string(FieldNext)),
		Previous: o.String(string(FieldPrevious)),
	}, nil
}

// ParseSummary builds a Summary from an edge summary object.
func ParseSummary(o jsonobj.Object) (*Summary, error) {
	if o == nil {
		return nil, nil
	}
	return &Summary{
		Tracked:    Tracked{presence: o.Presence(summaryKeys...)},
		TotalCount: o.Int(string(FieldTotalCount)),
		CanComment: o.Bool(string(FieldCanComment)),
	}, nil
}

// ListParser returns a parser for an edge page whose items are built by elem.
// The data key is required; items elem rejects are dropped.
func ListParser[T any](elem jsonobj.Parser[T]) jsonobj.Parser[List[T]] {
	return func(o jsonobj.Object) (*List[T], error) {
		if o == nil {
			return nil, nil
		}
		if _, ok := o.Raw(string(FieldData)).([]any); !ok {
			return nil, &pkgerrs.ParseError{Operation: "ParseList", Message: "data is required"}
		}
		return &List[T]{
			Tracked: Tracked{presence: o.Presence(listKeys...)},
			Data:    jsonobj.ArrayOf(o, string(FieldData), elem),
			Paging:  jsonobj.ObjectOf(o, string(FieldPaging), ParsePaging),
			Summary: jsonobj.ObjectOf(o, string(FieldSummary), ParseSummary),
		}, nil
	}
}

// ParsePost builds a Post. The id is required.
func ParsePost(o jsonobj.Object) (*Post, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParsePost", postKeys)
	if err != nil {
		return nil, err
	}

	var shares int
	if s := o.Object(string(FieldShares)); s != nil {
		shares = s.Int("count")
	}

	return &Post{
		Node:         node,
		Message:      o.String(string(FieldMessage)),
		Story:        o.String(string(FieldStory)),
		CreatedTime:  o.Time(string(FieldCreatedTime)),
		UpdatedTime:  o.Time(string(FieldUpdatedTime)),
		From:         jsonobj.ObjectOf(o, string(FieldFrom), ParseUser),
		PermalinkURL: o.String(string(FieldPermalinkURL)),
		Link:         o.String(string(FieldLink)),
		StatusType: jsonobj.Enum(o, string(FieldStatusType), StatusTypeUnknown,
			StatusTypeMobileStatus, StatusTypeCreatedNote, StatusTypeAddedPhotos, StatusTypeAddedVideo,
			StatusTypeSharedStory, StatusTypeCreatedGroup, StatusTypeCreatedEvent, StatusTypeWallPost,
			StatusTypeAppCreatedStory, StatusTypePublishedStory, StatusTypeTaggedInPhoto, StatusTypeApprovedFriend),
		FullPicture: o.String(string(FieldFullPicture)),
		SharesCount: shares,
		IsHidden:    o.Bool(string(FieldIsHidden)),
		Likes:       jsonobj.ObjectOf(o, string(FieldLikes), ListParser(ParseLike)),
		Comments:    jsonobj.ObjectOf(o, string(FieldComments), ListParser(ParseComment)),
	}, nil
}

// ParseLike builds a Like. The id is required.
func ParseLike(o jsonobj.Object) (*Like, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParseLike", likeKeys)
	if err != nil {
		return nil, err
	}
	return &Like{Node: node, Name: o.String(string(FieldName))}, nil
}

// ParseComment builds a Comment. The id is required.
func ParseComment(o jsonobj.Object) (*Comment, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParseComment", commentKeys)
	if err != nil {
		return nil, err
	}
	return &Comment{
		Node:         node,
		Message:      o.String(string(FieldMessage)),
		CreatedTime:  o.Time(string(FieldCreatedTime)),
		From:         jsonobj.ObjectOf(o, string(FieldFrom), ParseUser),
		LikeCount:    o.Int(string(FieldLikeCount)),
		CommentCount: o.Int(string(FieldCommentCount)),
		UserLikes:    o.Bool(string(FieldUserLikes)),
		Parent:       jsonobj.ObjectOf(o, string(FieldParent), ParseComment),
	}, nil
}

// ParsePhotoImage builds one photo rendition.
func ParsePhotoImage(o jsonobj.Object) (*PhotoImage, error) {
	if o == nil {
		return nil, nil
	}
	return &PhotoImage{
		Tracked: Tracked{presence: o.Presence(photoImageKeys...)},
		Source:  o.String(string(FieldSource)),
		Width:   o.Int(string(FieldWidth)),
		Height:  o.Int(string(FieldHeight)),
	}, nil
}

// ParsePhoto builds a Photo. The id is required.
func ParsePhoto(o jsonobj.Object) (*Photo, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParsePhoto", photoKeys)
	if err != nil {
		return nil, err
	}
	return &Photo{
		Node:        node,
		Name:        o.String(string(FieldName)),
		Link:        o.String(string(FieldLink)),
		Picture:     o.String(string(FieldPicture)),
		Width:       o.Int(string(FieldWidth)),
		Height:      o.Int(string(FieldHeight)),
		CreatedTime: o.Time(string(FieldCreatedTime)),
		From:        jsonobj.ObjectOf(o, string(FieldFrom), ParseUser),
		Images:      jsonobj.ArrayOf(o, string(FieldImages), ParsePhotoImage),
	}, nil
}

// ParsePhotoUpload builds the result of a photo upload. The id is required.
func ParsePhotoUpload(o jsonobj.Object) (*PhotoUpload, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParsePhotoUpload", photoUploadKeys)
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{Node: node, PostID: o.String(string(FieldPostID))}, nil
}

// ParseProfilePicture builds a ProfilePicture from a picture edge. Both the
// {"data": {...}} envelope and the bare data object are accepted.
func ParseProfilePicture(o jsonobj.Object) (*ProfilePicture, error) {
	if o == nil {
		return nil, nil
	}
	if data := o.Object(string(FieldData)); data != nil {
		o = data
	}
	return &ProfilePicture{
		Tracked:      Tracked{presence: o.Presence(pictureKeys...)},
		URL:          o.String(string(FieldURL)),
		Width:        o.Int(string(FieldWidth)),
		Height:       o.Int(string(FieldHeight)),
		IsSilhouette: o.Bool(string(FieldIsSilhouette)),
	}, nil
}

// ParseUser builds a User. The id is required.
func ParseUser(o jsonobj.Object) (*User, error) {
	if o == nil {
		return nil, nil
	}
	node, err := parseNode(o, "ParseUser", userKeys)
	if err != nil {
		return nil, err
	}
	return &User{
		Node:      node,
		Name:      o.String(string(FieldName)),
		FirstName: o.String(string(FieldFirstName)),
		LastName:  o.String(string(FieldLastName)),
		Email:     o.String(string(FieldEmail)),
		Locale:    o.String(string(FieldLocale)),
		Link:      o.String(string(FieldLink)),
		Picture:   jsonobj.ObjectOf(o, string(FieldPicture), ParseProfilePicture),
	}, nil
}

// ParsePermission builds a Permission. The permission name is required.
func ParsePermission(o jsonobj.Object) (*Permission, error) {
	if o == nil {
		return nil, nil
	}
	name, err := requireString(o, "ParsePermission", FieldPermission)
	if err != nil {
		return nil, err
	}
	return &Permission{
		Tracked: Tracked{presence: o.Presence(permissionKeys...)},
		Scope:   Scope(name),
		Status: jsonobj.Enum(o, string(FieldStatus), PermissionUnknown,
			PermissionGranted, PermissionDeclined, PermissionExpired),
	}, nil
}

// ParseAccessToken builds a token endpoint response. The access_token is required.
func ParseAccessToken(o jsonobj.Object) (*AccessToken, error) {
	if o == nil {
		return nil, nil
	}
	token, err := requireString(o, "ParseAccessToken", FieldAccessToken)
	if err != nil {
		return nil, err
	}
	return &AccessToken{
		Tracked:   Tracked{presence: o.Presence(tokenKeys...)},
		Token:     token,
		TokenType: o.String(string(FieldTokenType)),
		ExpiresIn: o.Int64(string(FieldExpiresIn)),
	}, nil
}
