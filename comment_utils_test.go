package fbgraph

import (
	"testing"

	"github.com/jamesprial/go-facebook-graph-wrapper/pkg/types"
)

func createTestComment(id, authorID string, parent *types.Comment) *types.Comment {
	c := &types.Comment{
		Node:    types.Node{ID: id},
		Message: "comment " + id,
		From:    &types.User{Node: types.Node{ID: authorID}},
	}
	if parent != nil {
		// Graph returns the parent as a stub holding only its id.
		c.Parent = &types.Comment{Node: types.Node{ID: parent.ID}}
	}
	return c
}

func commentIDs(comments []*types.Comment) []string {
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// thread builds:
//
//	c1 (alice)
//	  c2 (bob)
//	    c4 (alice)
//	  c3 (carol)
//	c5 (bob)
func thread() []*types.Comment {
	c1 := createTestComment("c1", "alice", nil)
	c2 := createTestComment("c2", "bob", c1)
	c3 := createTestComment("c3", "carol", c1)
	c4 := createTestComment("c4", "alice", c2)
	c5 := createTestComment("c5", "bob", nil)
	return []*types.Comment{c1, c2, c3, c4, c5}
}

func TestCommentTree_Structure(t *testing.T) {
	tree := NewCommentTree(thread())

	if got := commentIDs(tree.GetTopLevel()); !equalIDs(got, []string{"c1", "c5"}) {
		t.Errorf("GetTopLevel() = %v, want [c1 c5]", got)
	}
	if got := commentIDs(tree.Replies("c1")); !equalIDs(got, []string{"c2", "c3"}) {
		t.Errorf("Replies(c1) = %v, want [c2 c3]", got)
	}
	if got := commentIDs(tree.Flatten()); !equalIDs(got, []string{"c1", "c2", "c4", "c3", "c5"}) {
		t.Errorf("Flatten() = %v, want depth-first order", got)
	}
	if got := tree.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if got := tree.GetDepth(); got != 2 {
		t.Errorf("GetDepth() = %d, want 2", got)
	}
}

func TestCommentTree_Queries(t *testing.T) {
	tree := NewCommentTree(thread())

	if c := tree.GetByID("c4"); c == nil || c.ID != "c4" {
		t.Errorf("GetByID(c4) = %v", c)
	}
	if c := tree.GetByID("missing"); c != nil {
		t.Errorf("GetByID(missing) = %v, want nil", c)
	}

	if got := commentIDs(tree.GetByAuthor("alice")); !equalIDs(got, []string{"c1", "c4"}) {
		t.Errorf("GetByAuthor(alice) = %v, want [c1 c4]", got)
	}

	found := tree.Find(func(c *types.Comment) bool { return c.From.ID == "carol" })
	if found == nil || found.ID != "c3" {
		t.Errorf("Find(carol) = %v, want c3", found)
	}
	if tree.Find(func(*types.Comment) bool { return false }) != nil {
		t.Error("Find() with no match should return nil")
	}

	replies := tree.Filter(func(c *types.Comment) bool { return c.Parent != nil })
	if got := commentIDs(replies); !equalIDs(got, []string{"c2", "c4", "c3"}) {
		t.Errorf("Filter(replies) = %v, want [c2 c4 c3]", got)
	}

	var walked int
	tree.Walk(func(*types.Comment) { walked++ })
	if walked != 5 {
		t.Errorf("Walk visited %d comments, want 5", walked)
	}
}

func TestCommentTree_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		comments  []*types.Comment
		wantRoots []string
		wantCount int
	}{
		{
			name:      "empty",
			comments:  nil,
			wantRoots: []string{},
			wantCount: 0,
		},
		{
			name:      "nil entries skipped",
			comments:  []*types.Comment{nil, createTestComment("a", "u", nil), nil},
			wantRoots: []string{"a"},
			wantCount: 1,
		},
		{
			name: "parent outside page becomes root",
			comments: []*types.Comment{
				createTestComment("b", "u", &types.Comment{Node: types.Node{ID: "elsewhere"}}),
			},
			wantRoots: []string{"b"},
			wantCount: 1,
		},
		{
			name: "duplicate ids kept once",
			comments: []*types.Comment{
				createTestComment("a", "u", nil),
				createTestComment("a", "v", nil),
			},
			wantRoots: []string{"a"},
			wantCount: 1,
		},
		{
			name: "self parent becomes root",
			comments: []*types.Comment{
				createTestComment("a", "u", &types.Comment{Node: types.Node{ID: "a"}}),
			},
			wantRoots: []string{"a"},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewCommentTree(tt.comments)
			if got := commentIDs(tree.GetTopLevel()); !equalIDs(got, tt.wantRoots) {
				t.Errorf("GetTopLevel() = %v, want %v", got, tt.wantRoots)
			}
			if got := tree.Count(); got != tt.wantCount {
				t.Errorf("Count() = %d, want %d", got, tt.wantCount)
			}
		})
	}
}
