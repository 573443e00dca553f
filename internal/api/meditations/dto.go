package meditations

import (
	"time"

	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/pages"
	"orfanato-app/internal/domain/route"
)

const dateLayout = "2006-01-02"

type DayInput struct {
	Day   string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Verse string `json:"verse" binding:"required"`
	Topic string `json:"topic" binding:"required"`
}

type CreateRequest struct {
	Topic     string           `json:"topic" binding:"required,max=255"`
	StartDate string           `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string           `json:"endDate" binding:"required,datetime=2006-01-02"`
	Days      []DayInput       `json:"days" binding:"omitempty,dive"`
	Media     *media.ItemInput `json:"media"`
}

// UpdateRequest leaves nil fields untouched. Days, when present, replaces
// the stored days.
type UpdateRequest struct {
	Topic     *string          `json:"topic" binding:"omitempty,min=1,max=255"`
	StartDate *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Days      []DayInput       `json:"days" binding:"omitempty,dive"`
	Media     *media.ItemInput `json:"media"`
}

type Response struct {
	ID        string                `json:"id"`
	Topic     string                `json:"topic"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Days      []pages.MeditationDay `json:"days"`
	Route     *route.Route          `json:"route"`
	Media     *media.Item           `json:"media"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func toResponse(m pages.Meditation, items []media.Item) Response {
	days := m.Days
	if days == nil {
		days = []pages.MeditationDay{}
	}
	out := Response{
		ID:        m.ID,
		Topic:     m.Topic,
		StartDate: m.StartDate.Format(dateLayout),
		EndDate:   m.EndDate.Format(dateLayout),
		Days:      days,
		Route:     m.Route,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(items) > 0 {
		out.Media = &items[0]
	}
	return out
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Badf("invalid startDate %q", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Badf("invalid endDate %q", end)
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, apperr.BadRequest("endDate must not be before startDate")
	}
	return s, e, nil
}

func toDays(meditationID string, in []DayInput) []pages.MeditationDay {
	out := make([]pages.MeditationDay, 0, len(in))
	for _, d := range in {
		out = append(out, pages.MeditationDay{MeditationID: meditationID, Day: d.Day, Verse: d.Verse, Topic: d.Topic})
	}
	return out
}
