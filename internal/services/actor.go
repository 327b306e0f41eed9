package services

import "github.com/SaniTheWay/TaskManagmentSystem/internal/models"

// Actor is the authenticated user a service call runs for. The transport
// layer resolves it per request and passes it explicitly.
type Actor struct {
	UserID uint64
	Role   models.UserRole
}

// NewActor builds an Actor from a stored user.
func NewActor(user *models.User) Actor {
	return Actor{UserID: user.ID, Role: user.Role}
}

func (a Actor) IsAdmin() bool {
	switch a.Role {
	case models.RoleCompanyAdmin:
		return true
	case models.RoleTeamMember:
		return false
	default:
		return false
	}
}

func requireActor(a Actor) error {
	if a.UserID == 0 || !a.Role.IsValid() {
		return ErrUnauthenticated
	}
	return nil
}

func requireAdmin(a Actor) error {
	if err := requireActor(a); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return forbiddenError("only company admins can perform this action")
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
