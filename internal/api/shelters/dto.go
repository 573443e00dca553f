package shelters

import "orfanato-app/internal/domain/shelters"

type ShelterRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description string           `json:"description"`
	Address     shelters.Address `json:"address"`
}

type TeamRequest struct {
	Number      int    `json:"number" binding:"required,min=1"`
	Description string `json:"description"`
}

type LeadersRequest struct {
	LeaderProfileIDs []string `json:"leaderProfileIds" binding:"omitempty,dive,uuid"`
}

type TeachersRequest struct {
	TeacherProfileIDs []string `json:"teacherProfileIds" binding:"omitempty,dive,uuid"`
}
