package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEffectSchema is wrapped by every SchemaError.
	ErrInvalidEffectSchema = errors.New("invalid effect schema")
	// ErrIllegalAction is wrapped by every IllegalActionError.
	ErrIllegalAction = errors.New("illegal action")
	// ErrAudit is wrapped by every AuditError.
	ErrAudit = errors.New("game state audit failed")
)

// SchemaError reports a card whose effects do not match the whitelist of its type.
type SchemaError struct {
	CardID string
	Type   CardType
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("card %q (%s): effect key %q: %s", e.CardID, e.Type, e.Key, e.Reason)
	}
	return fmt.Sprintf("card %q (%s): %s", e.CardID, e.Type, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidEffectSchema }

// IllegalActionError is returned when an action is rejected before any mutation.
type IllegalActionError struct {
	Player PlayerID
	CardID string
	Reason string
}

func (e *IllegalActionError) Error() string {
	if e.CardID != "" {
		return fmt.Sprintf("illegal action by %s with card %q: %s", e.Player, e.CardID, e.Reason)
	}
	return fmt.Sprintf("illegal action by %s: %s", e.Player, e.Reason)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

func illegal(player PlayerID, cardID, format string, args ...any) error {
	return &IllegalActionError{Player: player, CardID: cardID, Reason: fmt.Sprintf(format, args...)}
}

// AuditCode identifies the invariant an AuditError reports.
type AuditCode string

const (
	AuditTruthOutOfRange  AuditCode = "truth_out_of_range"
	AuditMissingPressure  AuditCode = "missing_pressure"
	AuditNegativeIP       AuditCode = "negative_ip"
	AuditDoubleOwnership  AuditCode = "double_ownership"
	AuditUnknownTerritory AuditCode = "unknown_territory"
	AuditMissingPlayer    AuditCode = "missing_player"
	AuditNilPlayer        AuditCode = "nil_player"
	AuditCurrentPlayer    AuditCode = "invalid_current_player"
	AuditDefense          AuditCode = "non_positive_defense"
)

// AuditError identifies the first invariant violated by a game state.
type AuditError struct {
	Code   AuditCode
	Detail string
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *AuditError) Unwrap() error { return ErrAudit }
