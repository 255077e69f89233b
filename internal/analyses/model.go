package analyses

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the backend job state of an analysis.
type Status string

const (
	StatusPending    Status = "pending"
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ParseStatus normalizes a backend status string. Unknown values are kept
// as-is and treated as non-terminal.
func ParseStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// IsTerminal reports whether polling should stop at this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Analysis is a point-in-time snapshot of a backend skin analysis.
// Metrics maps metric name to a severity fraction; nil means the backend had
// too little data to score it.
type Analysis struct {
	ID           string
	Status       Status
	Metrics      map[string]*float64
	ErrorMessage string
	Routine      []RoutineStep
	Products     []Product
	CreatedAt    time.Time
}

// RoutineStep is one step of the recommended skincare routine.
type RoutineStep struct {
	Step         int    `json:"step"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	Period       string `json:"period,omitempty"`
}

// Product is a recommended product.
type Product struct {
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

type wireResult struct {
	Metrics  map[string]*float64 `json:"metrics,omitempty"`
	Routine  []RoutineStep       `json:"routine,omitempty"`
	Products []Product           `json:"products,omitempty"`
}

type wireAnalysis struct {
	ID                string              `json:"id"`
	Status            string              `json:"status"`
	Metrics           map[string]*float64 `json:"metrics,omitempty"`
	Result            *wireResult         `json:"result,omitempty"`
	ErrorMessage      *string             `json:"error_message,omitempty"`
	ErrorMessageCamel *string             `json:"errorMessage,omitempty"`
	Routine           []RoutineStep       `json:"routine,omitempty"`
	Products          []Product           `json:"products,omitempty"`
	CreatedAt         *time.Time          `json:"created_at,omitempty"`
	CreatedAtCamel    *time.Time          `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts the backend's shape variants: metrics at the top
// level or nested under result, and snake or camel case error and timestamp
// fields.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var w wireAnalysis
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Analysis{
		ID:       strings.TrimSpace(w.ID),
		Status:   ParseStatus(w.Status),
		Metrics:  w.Metrics,
		Routine:  w.Routine,
		Products: w.Products,
	}
	if w.Result != nil {
		if out.Metrics == nil {
			out.Metrics = w.Result.Metrics
		}
		if out.Routine == nil {
			out.Routine = w.Result.Routine
		}
		if out.Products == nil {
			out.Products = w.Result.Products
		}
	}
	switch {
	case w.ErrorMessage != nil:
		out.ErrorMessage = strings.TrimSpace(*w.ErrorMessage)
	case w.ErrorMessageCamel != nil:
		out.ErrorMessage = strings.TrimSpace(*w.ErrorMessageCamel)
	}
	switch {
	case w.CreatedAt != nil:
		out.CreatedAt = *w.CreatedAt
	case w.CreatedAtCamel != nil:
		out.CreatedAt = *w.CreatedAtCamel
	}

	*a = out
	return nil
}

// MarshalJSON writes the canonical backend shape.
func (a Analysis) MarshalJSON() ([]byte, error) {
	w := wireAnalysis{
		ID:       a.ID,
		Status:   string(a.Status),
		Metrics:  a.Metrics,
		Routine:  a.Routine,
		Products: a.Products,
	}
	if a.ErrorMessage != "" {
		msg := a.ErrorMessage
		w.ErrorMessage = &msg
	}
	if !a.CreatedAt.IsZero() {
		ts := a.CreatedAt
		w.CreatedAt = &ts
	}
	return json.Marshal(w)
}
