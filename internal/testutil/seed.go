package testutil

import (
	"fmt"
	"testing"

	"orfanato-app/internal/domain/shelters"
	"orfanato-app/internal/domain/users"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Staff is a small organisation: two shelters, one team in ShelterA led by
// Leader and served by Teacher. ShelterB has no staff.
type Staff struct {
	Admin   users.User
	Leader  users.User
	Teacher users.User

	LeaderProfile  shelters.LeaderProfile
	TeacherProfile shelters.TeacherProfile

	ShelterA shelters.Shelter
	ShelterB shelters.Shelter
	Team     shelters.Team
}

func SeedStaff(t *testing.T, db *gorm.DB) *Staff {
	t.Helper()
	s := &Staff{}

	mk := func(name, role string) users.User {
		u := users.User{
			Name:     name,
			Email:    fmt.Sprintf("%s@orfanato.test", name),
			Password: "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinv",
			Role:     role,
			Active:   true,
		}
		require.NoError(t, db.Create(&u).Error)
		return u
	}
	s.Admin = mk("admin", users.RoleAdmin)
	s.Leader = mk("leader", users.RoleLeader)
	s.Teacher = mk("teacher", users.RoleTeacher)

	s.ShelterA = shelters.Shelter{Name: "Lar Esperança"}
	s.ShelterB = shelters.Shelter{Name: "Casa Abrigo"}
	require.NoError(t, db.Create(&s.ShelterA).Error)
	require.NoError(t, db.Create(&s.ShelterB).Error)

	s.Team = shelters.Team{ShelterID: s.ShelterA.ID, Number: 1}
	require.NoError(t, db.Create(&s.Team).Error)

	s.LeaderProfile = shelters.LeaderProfile{UserID: s.Leader.ID, Active: true}
	require.NoError(t, db.Create(&s.LeaderProfile).Error)
	require.NoError(t, db.Model(&s.Team).Association("Leaders").Append(&s.LeaderProfile))

	s.TeacherProfile = shelters.TeacherProfile{UserID: s.Teacher.ID, Active: true, TeamID: &s.Team.ID}
	require.NoError(t, db.Create(&s.TeacherProfile).Error)
	return s
}
