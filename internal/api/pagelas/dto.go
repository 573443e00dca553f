package pagelas

type CreateRequest struct {
	ShelteredID   string `json:"shelteredId" binding:"required,uuid"`
	Year          int    `json:"year" binding:"required,min=2000,max=2100"`
	Visit         int    `json:"visit" binding:"required,min=1"`
	ReferenceDate string `json:"referenceDate" binding:"required,datetime=2006-01-02"`
	Present       bool   `json:"present"`
	Notes         string `json:"notes"`
}

type UpdateRequest struct {
	ReferenceDate *string `json:"referenceDate" binding:"omitempty,datetime=2006-01-02"`
	Present       *bool   `json:"present"`
	Notes         *string `json:"notes"`
}

type Filter struct {
	ShelteredID string
	Year        int
}
