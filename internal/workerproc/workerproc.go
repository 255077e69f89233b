package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"skincare-client/internal/queue"
	"skincare-client/internal/results"
	"skincare-client/internal/shared/metrics"
	"skincare-client/internal/shared/telemetry"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingAnalysisID indicates a settle event without an analysis id.
type ErrMissingAnalysisID struct {
	Meta MessageMeta
}

func (e ErrMissingAnalysisID) Error() string { return "missing analysis id" }

// ErrProcess indicates pre-warming failed after the message parsed.
type ErrProcess struct {
	AnalysisID string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "prewarm analysis"
	}
	return "prewarm analysis: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Permanent reports whether retrying the message can never succeed.
func Permanent(err error) bool {
	var (
		empty   ErrEmptyBody
		decode  ErrDecode
		missing ErrMissingAnalysisID
	)
	return errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &missing)
}

// Warmer computes and caches the displayed result of an analysis.
type Warmer interface {
	Result(ctx context.Context, analysisID string) (results.View, error)
}

// ParseMessage validates and decodes a settle event.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return msg, meta, ErrMissingAnalysisID{Meta: meta}
	}
	return msg, meta, nil
}

// HandleMessage pre-warms the result cache for a completed analysis. Events
// for other statuses are acknowledged without work.
func HandleMessage(ctx context.Context, warmer Warmer, body string) error {
	if warmer == nil {
		return errors.New("result service not configured")
	}
	msg, meta, err := ParseMessage(body)
	if err != nil {
		metrics.IncSettleEvent("consume", "invalid")
		return err
	}

	if !strings.EqualFold(msg.Status, "completed") {
		metrics.IncSettleEvent("consume", "skipped")
		telemetry.Info("worker.skip", map[string]any{
			"analysis_id": msg.AnalysisID,
			"status":      msg.Status,
			"body_sha":    meta.BodySHA,
		})
		return nil
	}

	view, err := warmer.Result(ctx, msg.AnalysisID)
	if err != nil {
		metrics.IncSettleEvent("consume", "error")
		return ErrProcess{AnalysisID: msg.AnalysisID, Err: err}
	}
	metrics.IncSettleEvent("consume", "ok")
	telemetry.Info("worker.prewarmed", map[string]any{
		"analysis_id":   msg.AnalysisID,
		"metrics":       len(view.Metrics),
		"overall_score": view.OverallScore,
	})
	return nil
}
