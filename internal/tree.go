package internal

import (
	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

// CommentTree arranges a flat page of comments into threads using each
// comment's parent. A comment whose parent is not in the page is a root.
type CommentTree struct {
	roots    []*types.Comment
	children map[string][]*types.Comment
	byID     map[string]*types.Comment
}

// NewCommentTree creates a new CommentTree from a slice of comments. Order
// within each level follows the input order.
func NewCommentTree(comments []*types.Comment) *CommentTree {
	ct := &CommentTree{
		children: make(map[string][]*types.Comment),
		byID:     make(map[string]*types.Comment, len(comments)),
	}

	for _, c := range comments {
		if c == nil {
			continue
		}
		if _, dup := ct.byID[c.ID]; dup {
			continue
		}
		ct.byID[c.ID] = c
	}

	seen := make(map[string]bool, len(ct.byID))
	for _, c := range comments {
		if c == nil || seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		parentID := ""
		if c.Parent != nil {
			parentID = c.Parent.ID
		}
		if _, ok := ct.byID[parentID]; ok && parentID != "" && parentID != c.ID {
			ct.children[parentID] = append(ct.children[parentID], c)
			continue
		}
		ct.roots = append(ct.roots, c)
	}
	return ct
}

// Replies returns the direct replies to the comment with the given ID.
func (ct *CommentTree) Replies(id string) []*types.Comment {
	return ct.children[id]
}

// Flatten returns all reachable comments depth-first.
func (ct *CommentTree) Flatten() []*types.Comment {
	var result []*types.Comment
	ct.Walk(func(c *types.Comment) {
		result = append(result, c)
	})
	return result
}

// Filter returns comments that match the given filter function.
func (ct *CommentTree) Filter(filterFunc func(*types.Comment) bool) []*types.Comment {
	var result []*types.Comment
	ct.Walk(func(c *types.Comment) {
		if filterFunc(c) {
			result = append(result, c)
		}
	})
	return result
}

// Find returns the first comment, depth-first, that matches the given condition.
func (ct *CommentTree) Find(condition func(*types.Comment) bool) *types.Comment {
	return ct.findRecursive(ct.roots, condition)
}

func (ct *CommentTree) findRecursive(comments []*types.Comment, condition func(*types.Comment) bool) *types.Comment {
	for _, comment := range comments {
		if condition(comment) {
			return comment
		}
		if found := ct.findRecursive(ct.children[comment.ID], condition); found != nil {
			return found
		}
	}
	return nil
}

// GetByID returns a comment by its ID.
func (ct *CommentTree) GetByID(id string) *types.Comment {
	return ct.byID[id]
}

// GetByAuthor returns all comments whose author has the given profile ID.
func (ct *CommentTree) GetByAuthor(authorID string) []*types.Comment {
	return ct.Filter(func(c *types.Comment) bool {
		return c.From != nil && c.From.ID == authorID
	})
}

// GetTopLevel returns only the top-level comments.
func (ct *CommentTree) GetTopLevel() []*types.Comment {
	return ct.roots
}

// GetDepth returns the maximum depth of the comment tree.
func (ct *CommentTree) GetDepth() int {
	return ct.getDepthRecursive(ct.roots, 0)
}

func (ct *CommentTree) getDepthRecursive(comments []*types.Comment, currentDepth int) int {
	maxDepth := currentDepth
	for _, comment := range comments {
		replies := ct.children[comment.ID]
		if len(replies) > 0 {
			if depth := ct.getDepthRecursive(replies, currentDepth+1); depth > maxDepth {
				maxDepth = depth
			}
		}
	}
	return maxDepth
}

// Count returns the total number of comments in the tree.
func (ct *CommentTree) Count() int {
	return len(ct.Flatten())
}

// Walk applies a function to each comment in the tree.
func (ct *CommentTree) Walk(fn func(*types.Comment)) {
	ct.walkRecursive(ct.roots, fn)
}

func (ct *CommentTree) walkRecursive(comments []*types.Comment, fn func(*types.Comment)) {
	for _, comment := range comments {
		fn(comment)
		ct.walkRecursive(ct.children[comment.ID], fn)
	}
}
