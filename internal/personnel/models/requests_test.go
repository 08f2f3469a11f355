package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
)

type CreateDutyRequestSuite struct {
	suite.Suite
}

func TestCreateDutyRequestSuite(t *testing.T) {
	suite.Run(t, new(CreateDutyRequestSuite))
}

func (s *CreateDutyRequestSuite) validRequest() *CreateDutyRequest {
	return &CreateDutyRequest{
		Name:          "Jane Doe",
		Rank:          "Major",
		DutyTitle:     "Pilot",
		DutyStartDate: time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
	}
}

func (s *CreateDutyRequestSuite) TestNormalize() {
	req := s.validRequest()
	req.Name = "  Jane Doe "
	req.DutyTitle = " Pilot\t"
	req.Normalize()

	s.Equal("Jane Doe", req.Name)
	s.Equal("Pilot", req.DutyTitle)
	s.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), req.DutyStartDate)
}

func (s *CreateDutyRequestSuite) TestValidation() {
	s.Run("valid request passes", func() {
		req := s.validRequest()
		req.Normalize()
		s.NoError(req.Validate())
	})

	cases := map[string]func(r *CreateDutyRequest){
		"blank name":      func(r *CreateDutyRequest) { r.Name = "   " },
		"blank rank":      func(r *CreateDutyRequest) { r.Rank = "" },
		"blank title":     func(r *CreateDutyRequest) { r.DutyTitle = "\t" },
		"zero start date": func(r *CreateDutyRequest) { r.DutyStartDate = time.Time{} },
		"oversized rank":  func(r *CreateDutyRequest) { r.Rank = strings.Repeat("x", MaxFieldLength+1) },
		"oversized title": func(r *CreateDutyRequest) { r.DutyTitle = strings.Repeat("x", MaxFieldLength+1) },
	}
	for name, mutate := range cases {
		s.Run(name+" rejected", func() {
			req := s.validRequest()
			mutate(req)
			req.Normalize()
			err := req.Validate()
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func (s *CreateDutyRequestSuite) TestPersonNames() {
	now := time.Now()

	s.Run("blank name violates invariant", func() {
		_, err := NewPerson(id.NewPersonID(), " ", now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rename updates timestamp", func() {
		p, err := NewPerson(id.NewPersonID(), "Jane Doe", now)
		s.Require().NoError(err)
		later := now.Add(time.Hour)
		s.Require().NoError(p.Rename("Jane Smith", later))
		s.Equal("Jane Smith", p.Name)
		s.Equal(later, p.UpdatedAt)
		s.Equal(now, p.CreatedAt)
	})

	s.Run("oversized name rejected", func() {
		_, err := NewPerson(id.NewPersonID(), strings.Repeat("n", MaxNameLength+1), now)
		s.Error(err)
	})
}
