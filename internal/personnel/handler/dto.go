package handler

import (
	"time"

	"astrotrack/internal/personnel/models"
	dErrors "astrotrack/pkg/domain-errors"
)

// CreatePersonRequest is the body of POST /person and PUT /person/{name}.
type CreatePersonRequest struct {
	Name string `json:"name"`
}

// CreateDutyRequest is the body of POST /astronautduty. DutyStartDate is
// RFC 3339 or YYYY-MM-DD.
type CreateDutyRequest struct {
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	DutyTitle     string `json:"duty_title"`
	DutyStartDate string `json:"duty_start_date"`
}

func (r *CreateDutyRequest) toModel() (*models.CreateDutyRequest, error) {
	req := &models.CreateDutyRequest{
		Name:      r.Name,
		Rank:      r.Rank,
		DutyTitle: r.DutyTitle,
	}
	if r.DutyStartDate != "" {
		start, err := models.ParseDate(r.DutyStartDate)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "duty_start_date must be RFC 3339 or YYYY-MM-DD")
		}
		req.DutyStartDate = start
	}
	return req, nil
}

type CreateDutyResponse struct {
	ID string `json:"id"`
}

// PersonResponse flattens a person and their current status.
type PersonResponse struct {
	PersonID         string `json:"person_id"`
	Name             string `json:"name"`
	CurrentRank      string `json:"current_rank,omitempty"`
	CurrentDutyTitle string `json:"current_duty_title,omitempty"`
	CareerStartDate  string `json:"career_start_date,omitempty"`
	CareerEndDate    string `json:"career_end_date,omitempty"`
}

type DutyResponse struct {
	ID            string `json:"id"`
	Rank          string `json:"rank"`
	DutyTitle     string `json:"duty_title"`
	DutyStartDate string `json:"duty_start_date"`
	DutyEndDate   string `json:"duty_end_date,omitempty"`
}

type DutyHistoryResponse struct {
	Person PersonResponse `json:"person"`
	Duties []DutyResponse `json:"duties"`
}

type PeopleResponse struct {
	People []PersonResponse `json:"people"`
}

func toPersonResponse(person *models.Person, status *models.AstronautStatus) PersonResponse {
	resp := PersonResponse{
		PersonID: person.ID.String(),
		Name:     person.Name,
	}
	if status != nil {
		resp.CurrentRank = status.CurrentRank
		resp.CurrentDutyTitle = status.CurrentDutyTitle
		resp.CareerStartDate = formatDay(status.CareerStartDate)
		resp.CareerEndDate = models.FormatDate(status.CareerEndDate)
	}
	return resp
}

func toDutyHistoryResponse(history *models.DutyHistory) DutyHistoryResponse {
	duties := make([]DutyResponse, 0, len(history.Duties))
	for _, d := range history.Duties {
		duties = append(duties, DutyResponse{
			ID:            d.ID.String(),
			Rank:          d.Rank,
			DutyTitle:     d.Title,
			DutyStartDate: formatDay(d.StartDate),
			DutyEndDate:   models.FormatDate(d.EndDate),
		})
	}
	return DutyHistoryResponse{
		Person: toPersonResponse(history.Person, history.Status),
		Duties: duties,
	}
}

func formatDay(t time.Time) string {
	return models.FormatDate(&t)
}
