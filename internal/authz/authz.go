// Package authz holds the role and ownership rules shared by the post and
// comment lifecycles.
package authz

import "github.com/damoang/angple-press/internal/domain"

// Action is something an actor may attempt
type Action string

const (
	ActionCreatePost          Action = "post:create"
	ActionUpdatePost          Action = "post:update"
	ActionPublishPost         Action = "post:publish"
	ActionListOwnPosts        Action = "post:list_own"
	ActionSubmitComment       Action = "comment:submit"
	ActionModerateComment     Action = "comment:moderate"
	ActionListPendingComments Action = "comment:list_pending"
)

// Resource describes what the action targets. OwnerID is the author of the
// post the action concerns; empty when ownership does not apply.
type Resource struct {
	OwnerID string
}

// rule decides one action for a given role
type rule func(actor domain.Actor, res Resource) bool

func allow(domain.Actor, Resource) bool { return true }

func ownsResource(actor domain.Actor, res Resource) bool {
	return actor.ID != "" && res.OwnerID != "" && actor.ID == res.OwnerID
}

// table[action][role]. A missing entry denies.
var table = map[Action]map[domain.Role]rule{
	ActionCreatePost: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: allow,
	},
	ActionUpdatePost: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: ownsResource,
	},
	ActionPublishPost: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: ownsResource,
	},
	ActionListOwnPosts: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: allow,
	},
	ActionSubmitComment: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: allow,
		domain.RoleViewer: allow,
	},
	ActionModerateComment: {
		domain.RoleAdmin:  allow,
		domain.RoleEditor: ownsResource,
	},
	ActionListPendingComments: {
		domain.RoleAdmin: allow,
	},
}

// Can reports whether actor may perform action on res.
func Can(actor domain.Actor, action Action, res Resource) bool {
	if actor.ID == "" {
		return false
	}
	byRole, ok := table[action]
	if !ok {
		return false
	}
	r, ok := byRole[actor.Role]
	if !ok {
		return false
	}
	return r(actor, res)
}

// RolesFor lists the roles that can ever perform action, regardless of
// ownership. Route guards use it for the coarse check.
func RolesFor(action Action) []domain.Role {
	var roles []domain.Role
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer} {
		if _, ok := table[action][role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}
