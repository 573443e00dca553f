package shelters

import (
	"context"

	"orfanato-app/internal/domain/users"

	"gorm.io/gorm"
)

// Scope is the set of shelters a user may see. All is set for admins.
type Scope struct {
	All        bool
	ShelterIDs []string
}

func (s Scope) Allows(shelterID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.ShelterIDs {
		if id == shelterID {
			return true
		}
	}
	return false
}

// Apply restricts q to rows whose column is one of the scope's shelters.
func (s Scope) Apply(q *gorm.DB, column string) *gorm.DB {
	if s.All {
		return q
	}
	if len(s.ShelterIDs) == 0 {
		return q.Where("1 = 0")
	}
	return q.Where(column+" IN ?", s.ShelterIDs)
}

// ScopeFor resolves the shelters visible to a user: admins see every shelter,
// leaders the shelters of the teams they lead, teachers the shelter of their team.
func ScopeFor(ctx context.Context, db *gorm.DB, userID uint, role string) (Scope, error) {
	var ids []string
	switch role {
	case users.RoleAdmin:
		return Scope{All: true}, nil
	case users.RoleLeader:
		err := db.WithContext(ctx).
			Table("teams").
			Joins("JOIN team_leaders ON team_leaders.team_id = teams.id").
			Joins("JOIN leader_profiles ON leader_profiles.id = team_leaders.leader_profile_id").
			Where("leader_profiles.user_id = ?", userID).
			Distinct().
			Pluck("teams.shelter_id", &ids).Error
		if err != nil {
			return Scope{}, err
		}
	case users.RoleTeacher:
		err := db.WithContext(ctx).
			Table("teams").
			Joins("JOIN teacher_profiles ON teacher_profiles.team_id = teams.id").
			Where("teacher_profiles.user_id = ?", userID).
			Pluck("teams.shelter_id", &ids).Error
		if err != nil {
			return Scope{}, err
		}
	}
	return Scope{ShelterIDs: ids}, nil
}
