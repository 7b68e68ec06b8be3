package authz

import (
	"testing"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	admin   = domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	editor  = domain.Actor{ID: "e1", Role: domain.RoleEditor}
	editor2 = domain.Actor{ID: "e2", Role: domain.RoleEditor}
	viewer  = domain.Actor{ID: "v1", Role: domain.RoleViewer}
)

func TestCan(t *testing.T) {
	owned := Resource{OwnerID: "e1"}
	tests := []struct {
		name   string
		actor  domain.Actor
		action Action
		res    Resource
		want   bool
	}{
		{"admin creates", admin, ActionCreatePost, Resource{}, true},
		{"editor creates", editor, ActionCreatePost, Resource{}, true},
		{"viewer cannot create", viewer, ActionCreatePost, Resource{}, false},

		{"admin publishes any", admin, ActionPublishPost, owned, true},
		{"editor publishes own", editor, ActionPublishPost, owned, true},
		{"editor cannot publish others", editor2, ActionPublishPost, owned, false},
		{"viewer cannot publish own", domain.Actor{ID: "e1", Role: domain.RoleViewer}, ActionPublishPost, owned, false},
		{"editor with empty owner", editor, ActionPublishPost, Resource{}, false},

		{"editor edits own draft", editor, ActionUpdatePost, owned, true},
		{"editor cannot edit others", editor2, ActionUpdatePost, owned, false},

		{"viewer comments", viewer, ActionSubmitComment, Resource{}, true},

		{"admin moderates any", admin, ActionModerateComment, owned, true},
		{"post author editor moderates", editor, ActionModerateComment, owned, true},
		{"other editor cannot moderate", editor2, ActionModerateComment, owned, false},
		{"viewer cannot moderate", viewer, ActionModerateComment, owned, false},

		{"admin lists pending", admin, ActionListPendingComments, Resource{}, true},
		{"editor cannot list pending", editor, ActionListPendingComments, Resource{}, false},

		{"anonymous denied", domain.Actor{Role: domain.RoleAdmin}, ActionCreatePost, Resource{}, false},
		{"unknown role denied", domain.Actor{ID: "x", Role: "root"}, ActionSubmitComment, Resource{}, false},
		{"unknown action denied", admin, Action("post:delete"), Resource{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action, tt.res))
		})
	}
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleEditor}, RolesFor(ActionPublishPost))
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, RolesFor(ActionListPendingComments))
	assert.Len(t, RolesFor(ActionSubmitComment), 3)
}
