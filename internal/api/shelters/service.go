package shelters

import (
	"context"
	"strings"

	"orfanato-app/internal/api/httpx"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/sheltered"
	"orfanato-app/internal/domain/shelters"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) scope(ctx context.Context, id httpx.Identity) (shelters.Scope, error) {
	return shelters.ScopeFor(ctx, s.db, id.UserID, id.Role)
}

func (s *Service) List(ctx context.Context, who httpx.Identity, search string, p httpx.Page) (*httpx.Paged[shelters.Shelter], error) {
	sc, err := s.scope(ctx, who)
	if err != nil {
		return nil, err
	}
	q := sc.Apply(s.db.WithContext(ctx).Model(&shelters.Shelter{}), "id")
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	list := []shelters.Shelter{}
	if err := q.Order("name ASC").Offset(p.Offset()).Limit(p.Limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return &httpx.Paged[shelters.Shelter]{Items: list, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) Get(ctx context.Context, who httpx.Identity, id string) (*shelters.Shelter, error) {
	sc, err := s.scope(ctx, who)
	if err != nil {
		return nil, err
	}
	if !sc.Allows(id) {
		return nil, apperr.Forbidden("Access denied to this shelter")
	}
	var sh shelters.Shelter
	err = s.db.WithContext(ctx).
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		Preload("Teams.Leaders.User").
		Preload("Teams.Teachers.User").
		First(&sh, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Shelter")
	}
	return &sh, nil
}

func (s *Service) Create(ctx context.Context, req ShelterRequest) (*shelters.Shelter, error) {
	sh := shelters.Shelter{Name: req.Name, Description: req.Description, Address: req.Address}
	if err := s.db.WithContext(ctx).Create(&sh).Error; err != nil {
		return nil, apperr.FromDB(err, "Shelter with this name")
	}
	return &sh, nil
}

func (s *Service) Update(ctx context.Context, id string, req ShelterRequest) (*shelters.Shelter, error) {
	var sh shelters.Shelter
	if err := s.db.WithContext(ctx).First(&sh, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Shelter")
	}
	sh.Name = req.Name
	sh.Description = req.Description
	sh.Address = req.Address
	if err := s.db.WithContext(ctx).Save(&sh).Error; err != nil {
		return nil, apperr.FromDB(err, "Shelter with this name")
	}
	return &sh, nil
}

// Delete refuses to remove a shelter that still has sheltered people.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sh shelters.Shelter
		if err := tx.Preload("Teams").First(&sh, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, "Shelter")
		}
		var n int64
		if err := tx.Model(&sheltered.Sheltered{}).Where("shelter_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Shelter still has sheltered people")
		}
		for i := range sh.Teams {
			if err := detachTeam(tx, &sh.Teams[i]); err != nil {
				return err
			}
		}
		if err := tx.Where("shelter_id = ?", id).Delete(&shelters.Team{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sh).Error
	})
}

func detachTeam(tx *gorm.DB, t *shelters.Team) error {
	if err := tx.Model(t).Association("Leaders").Clear(); err != nil {
		return err
	}
	return tx.Model(&shelters.TeacherProfile{}).Where("team_id = ?", t.ID).Update("team_id", nil).Error
}

func (s *Service) ListTeams(ctx context.Context, who httpx.Identity, shelterID string) ([]shelters.Team, error) {
	sc, err := s.scope(ctx, who)
	if err != nil {
		return nil, err
	}
	if !sc.Allows(shelterID) {
		return nil, apperr.Forbidden("Access denied to this shelter")
	}
	teams := []shelters.Team{}
	err = teamsWithPeople(s.db.WithContext(ctx)).Where("shelter_id = ?", shelterID).Find(&teams).Error
	return teams, err
}

func (s *Service) CreateTeam(ctx context.Context, shelterID string, req TeamRequest) (*shelters.Team, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&shelters.Shelter{}, "id = ?", shelterID).Error; err != nil {
		return nil, apperr.FromDB(err, "Shelter")
	}
	t := shelters.Team{ShelterID: shelterID, Number: req.Number, Description: req.Description}
	if err := db.Create(&t).Error; err != nil {
		return nil, apperr.FromDB(err, "Team with this number")
	}
	return &t, nil
}

func (s *Service) loadTeam(db *gorm.DB, shelterID, teamID string) (*shelters.Team, error) {
	var t shelters.Team
	if err := db.First(&t, "id = ? AND shelter_id = ?", teamID, shelterID).Error; err != nil {
		return nil, apperr.FromDB(err, "Team")
	}
	return &t, nil
}

func (s *Service) UpdateTeam(ctx context.Context, shelterID, teamID string, req TeamRequest) (*shelters.Team, error) {
	db := s.db.WithContext(ctx)
	t, err := s.loadTeam(db, shelterID, teamID)
	if err != nil {
		return nil, err
	}
	t.Number = req.Number
	t.Description = req.Description
	if err := db.Save(t).Error; err != nil {
		return nil, apperr.FromDB(err, "Team with this number")
	}
	return t, nil
}

func (s *Service) DeleteTeam(ctx context.Context, shelterID, teamID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.loadTeam(tx, shelterID, teamID)
		if err != nil {
			return err
		}
		if err := detachTeam(tx, t); err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}

// SetLeaders replaces the leaders of a team.
func (s *Service) SetLeaders(ctx context.Context, shelterID, teamID string, req LeadersRequest) (*shelters.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.loadTeam(tx, shelterID, teamID)
		if err != nil {
			return err
		}
		leaders := []shelters.LeaderProfile{}
		if len(req.LeaderProfileIDs) > 0 {
			if err := tx.Where("id IN ?", req.LeaderProfileIDs).Find(&leaders).Error; err != nil {
				return err
			}
		}
		if len(leaders) != len(req.LeaderProfileIDs) {
			return apperr.BadRequest("unknown leader profile in leaderProfileIds")
		}
		if len(leaders) == 0 {
			return tx.Model(t).Association("Leaders").Clear()
		}
		return tx.Model(t).Association("Leaders").Replace(leaders)
	})
	if err != nil {
		return nil, err
	}
	return s.team(ctx, teamID)
}

// SetTeachers replaces the teachers of a team. A teacher belongs to one
// team, so listed teachers leave their previous team.
func (s *Service) SetTeachers(ctx context.Context, shelterID, teamID string, req TeachersRequest) (*shelters.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.loadTeam(tx, shelterID, teamID)
		if err != nil {
			return err
		}
		var n int64
		if len(req.TeacherProfileIDs) > 0 {
			if err := tx.Model(&shelters.TeacherProfile{}).Where("id IN ?", req.TeacherProfileIDs).Count(&n).Error; err != nil {
				return err
			}
		}
		if int(n) != len(req.TeacherProfileIDs) {
			return apperr.BadRequest("unknown teacher profile in teacherProfileIds")
		}
		if err := tx.Model(&shelters.TeacherProfile{}).Where("team_id = ?", t.ID).Update("team_id", nil).Error; err != nil {
			return err
		}
		if len(req.TeacherProfileIDs) == 0 {
			return nil
		}
		return tx.Model(&shelters.TeacherProfile{}).Where("id IN ?", req.TeacherProfileIDs).Update("team_id", t.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.team(ctx, teamID)
}

func (s *Service) team(ctx context.Context, id string) (*shelters.Team, error) {
	var t shelters.Team
	if err := teamsWithPeople(s.db.WithContext(ctx)).First(&t, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Team")
	}
	return &t, nil
}
