package fbgraph

import (
	"github.com/jamesprial/go-facebook-graph-wrapper/internal"
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// CommentTree provides utility methods for working with a page of comments
// arranged into threads by their parent.
type CommentTree interface {
	Replies(id string) []*types.Comment
	Flatten() []*types.Comment
	Filter(func(*types.Comment) bool) []*types.Comment
	Find(func(*types.Comment) bool) *types.Comment
	GetByID(string) *types.Comment
	GetByAuthor(authorID string) []*types.Comment
	GetTopLevel() []*types.Comment
	GetDepth() int
	Count() int
	Walk(func(*types.Comment))
}

// NewCommentTree creates a new CommentTree from a slice of comments, such as
// the Data of a Comments.List page requested with the parent field.
func NewCommentTree(comments []*types.Comment) CommentTree {
	return internal.NewCommentTree(comments)
}
