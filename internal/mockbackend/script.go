// Package mockbackend emulates the analysis backend for demos and tests.
// Each analysis follows a script: pending on the first read, processing for
// a number of reads, then completed or failed.
package mockbackend

import (
	"errors"

	"skincare-client/internal/analyses"
)

var ErrNotFound = errors.New("analysis not found")

// Script drives the status progression of one analysis.
type Script struct {
	ID              string                 `json:"id,omitempty"`
	ProcessingPolls int                    `json:"processingPolls"`
	Fail            bool                   `json:"fail"`
	ErrorMessage    string                 `json:"errorMessage,omitempty"`
	Metrics         map[string]*float64    `json:"metrics,omitempty"`
	Routine         []analyses.RoutineStep `json:"routine,omitempty"`
	Products        []analyses.Product     `json:"products,omitempty"`
}

// statusAt returns the status reported on the given zero-based read.
func (s Script) statusAt(read int) analyses.Status {
	switch {
	case read == 0:
		return analyses.StatusPending
	case read <= s.ProcessingPolls:
		return analyses.StatusProcessing
	case s.Fail:
		return analyses.StatusFailed
	default:
		return analyses.StatusCompleted
	}
}

func severity(v float64) *float64 { return &v }

// DefaultScript is a completed analysis with one unscored metric and a short
// English routine.
func DefaultScript() Script {
	return Script{
		ProcessingPolls: 2,
		Metrics: map[string]*float64{
			"acne":         severity(0.38),
			"wrinkles":     severity(0.12),
			"dark_circles": severity(0.45),
			"pores":        severity(0.18),
			"redness":      nil,
			"hydration":    severity(0.03),
		},
		Routine: []analyses.RoutineStep{
			{Step: 1, Name: "Gentle Cleanser", Instructions: "Massage onto damp skin for 60 seconds, then rinse.", Period: "am"},
			{Step: 2, Name: "Vitamin C Serum", Instructions: "Apply a pea-sized amount to clean, dry skin twice a day.", Period: "am"},
			{Step: 3, Name: "Sunscreen", Instructions: "Use SPF 50 and reapply every 2 hours", Period: "am"},
			{Step: 4, Name: "Night Cream", Instructions: "Leave on for 10 minutes, then rinse.", Period: "pm"},
		},
		Products: []analyses.Product{
			{Name: "CeraVe Foaming Cleanser for Oily Skin", Brand: "CeraVe", Category: "cleanser"},
			{Name: "Broad Spectrum SPF 30 Sunscreen", Brand: "Supergoop", Category: "sunscreen"},
		},
	}
}
