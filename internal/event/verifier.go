package event

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"

	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 300

// ProofToken is the payload rendered into an event's QR code and posted
// back by a participant to claim attendance. The secret is the per-event
// bearer value; holding it proves the caller saw the displayed code.
type ProofToken struct {
	EventID uuid.UUID `json:"event_id"`
	Secret  string    `json:"secret"`
}

// ProofIssue is the organizer-facing result of issuing a proof token: the
// raw payload plus its QR rendering as a PNG.
type ProofIssue struct {
	Payload string `json:"payload"`
	PNG     []byte `json:"-"`
}

// Verifier validates scanned proof tokens against the event secret and the
// registration ledger, then records attendance facts.
type Verifier struct {
	logger *slog.Logger
	repo   repository.Repository
}

func NewVerifier(logger *slog.Logger, repo repository.Repository) *Verifier {
	return &Verifier{logger: logger, repo: repo}
}

// IssueProof returns the proof token for an event. This is the only path
// that surfaces the event secret, and it is limited to the event's club
// admin and system admins.
func (v *Verifier) IssueProof(ctx context.Context, actor model.User, eventID uuid.UUID) (ProofIssue, error) {
	event, err := v.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return ProofIssue{}, err
	}
	if !actor.ManagesClub(event.ClubID) {
		return ProofIssue{}, ErrForbidden
	}

	payload, err := json.Marshal(ProofToken{EventID: event.ID, Secret: event.Secret})
	if err != nil {
		return ProofIssue{}, fmt.Errorf("encode proof token: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, qrImageSize)
	if err != nil {
		return ProofIssue{}, fmt.Errorf("render proof QR: %w", err)
	}

	return ProofIssue{Payload: string(payload), PNG: png}, nil
}

// Mark records attendance for userID at eventID, given the raw scanned
// payload. Check order: payload shape, event match, event existence, secret
// (constant time), prior registration, then the uniqueness of the mark.
func (v *Verifier) Mark(ctx context.Context, eventID, userID uuid.UUID, rawProof string) (model.Attendance, error) {
	var token ProofToken
	if err := json.Unmarshal([]byte(rawProof), &token); err != nil {
		return model.Attendance{}, ErrMalformedProof
	}
	if token.EventID == uuid.Nil || token.Secret == "" {
		return model.Attendance{}, ErrMalformedProof
	}
	if token.EventID != eventID {
		return model.Attendance{}, ErrProofEventMismatch
	}

	event, err := v.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return model.Attendance{}, err
	}
	if subtle.ConstantTimeCompare([]byte(token.Secret), []byte(event.Secret)) != 1 {
		v.logger.Warn("Attendance claim with bad secret", "event_id", eventID, "user_id", userID)
		return model.Attendance{}, ErrInvalidProof
	}

	att, err := v.repo.CreateAttendance(ctx, eventID, userID)
	if err != nil {
		return model.Attendance{}, err
	}

	v.logger.Info("Attendance marked", "event_id", eventID, "user_id", userID)
	return att, nil
}
