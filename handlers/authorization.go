package handlers

import (
	"context"
	"strconv"

	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/permissions"
	"github.com/arden-cole/portfoliobackend/repository"
)

// authorizeAuthorAction checks the request principal's per-author grant
// for a mutation. Admins always pass; editors follow their UserAuthor
// grant. An unauthenticated context passes here because route-level
// middleware already enforced authentication and role.
func authorizeAuthorAction(ctx context.Context, userRepo repository.UserRepository, authorID int64, action permissions.Action) bool {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return true
	}
	if principal.Role != models.RoleEditor {
		return permissions.CanActOnAuthor(principal.Role, nil, action)
	}

	userID, err := strconv.ParseInt(principal.Subject, 10, 64)
	if err != nil {
		return false
	}
	grant, err := userRepo.GetAuthorGrant(userID, authorID)
	if err != nil {
		grant = nil
	}
	return permissions.CanActOnAuthor(principal.Role, grant, action)
}
