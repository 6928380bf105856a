package models

import "time"

// Schedule holds the planning fields shared by projects and tasks. Efforts are
// measured in days.
type Schedule struct {
	EstimatedStartDate *time.Time `json:"estimated_start_date"`
	EstimatedEndDate   *time.Time `json:"estimated_end_date"`
	ActualStartDate    *time.Time `json:"actual_start_date"`
	ActualEndDate      *time.Time `json:"actual_end_date"`
	EstimatedEffort    *uint16    `json:"estimated_effort"`
	ActualEffort       *uint16    `json:"actual_effort"`
}

// DueIn is the time left until the estimated end date, or nil when none is set.
func (s Schedule) DueIn(now time.Time) *time.Duration {
	if s.EstimatedEndDate == nil {
		return nil
	}
	d := s.EstimatedEndDate.Sub(now)
	return &d
}
