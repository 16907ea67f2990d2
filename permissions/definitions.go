package permissions

import "github.com/arden-cole/portfoliobackend/models"

// Action is one of the operations a user can perform on an author's
// portfolio content.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
)

// ActionDefinition describes a single grantable action for the admin UI
type ActionDefinition struct {
	Key         Action `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefinedActions holds the statically defined per-author actions
var DefinedActions = []ActionDefinition{
	{
		Key:         ActionCreate,
		Name:        "Create Projects",
		Description: "Allows creating new projects for the author.",
	},
	{
		Key:         ActionUpdate,
		Name:        "Update Content",
		Description: "Allows editing the author profile and its projects.",
	},
	{
		Key:         ActionDelete,
		Name:        "Delete Content",
		Description: "Allows deleting the author's projects.",
	},
	{
		Key:         ActionPublish,
		Name:        "Publish Projects",
		Description: "Allows switching projects between active and inactive.",
	},
}

// CanManageUsers reports whether a role may create, edit, or delete
// user accounts and grants.
func CanManageUsers(role string) bool {
	return role == models.RoleAdmin
}

// CanActOnAuthor decides whether a principal with the given role and
// per-author grant may perform an action on that author's content.
// Admins bypass grants; viewers never mutate; editors follow the grant,
// and a missing grant denies everything.
func CanActOnAuthor(role string, grant *models.UserAuthor, action Action) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleViewer:
		return false
	case models.RoleEditor:
		if grant == nil {
			return false
		}
		switch action {
		case ActionCreate:
			return grant.CanCreate
		case ActionUpdate:
			return grant.CanUpdate
		case ActionDelete:
			return grant.CanDelete
		case ActionPublish:
			return grant.CanPublish
		default:
			return false
		}
	default:
		return false
	}
}
