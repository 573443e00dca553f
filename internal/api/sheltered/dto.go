package sheltered

import "time"

type Request struct {
	Name          string     `json:"name" binding:"required,max=255"`
	BirthDate     *time.Time `json:"birthDate"`
	Gender        string     `json:"gender" binding:"omitempty,oneof=M F"`
	GuardianName  string     `json:"guardianName"`
	GuardianPhone string     `json:"guardianPhone"`
	JoinedAt      *time.Time `json:"joinedAt"`
	ShelterID     string     `json:"shelterId" binding:"required,uuid"`
}

type Filter struct {
	ShelterID string
	Search    string
}
