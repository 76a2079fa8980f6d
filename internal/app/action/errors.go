package action

import (
	"errors"

	"idlarz/internal/domain/realm"
)

var (
	ErrInvalidRequest      = errors.New("invalid action request")
	ErrInvalidActionParams = errors.New("invalid action params")
	ErrActionRejected      = errors.New("action rejected")
)

// RejectedError is a domain refusal. It matches both ErrActionRejected and
// the realm sentinel that caused it.
type RejectedError struct {
	IntentType string
	Reason     error
}

func (e *RejectedError) Error() string {
	return ErrActionRejected.Error() + ": " + e.Reason.Error()
}

func (e *RejectedError) Unwrap() []error {
	return []error{ErrActionRejected, e.Reason}
}

// Code is the stable machine-readable name of the rejection reason.
func (e *RejectedError) Code() string {
	return ReasonCode(e.Reason)
}

var reasonCodes = []struct {
	err  error
	code string
}{
	{realm.ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
	{realm.ErrNotAdjacent, "NOT_ADJACENT"},
	{realm.ErrAlreadyOwned, "ALREADY_OWNED"},
	{realm.ErrUniqueBiomeTaken, "UNIQUE_BIOME_TAKEN"},
	{realm.ErrNoPointsAvailable, "NO_POINTS_AVAILABLE"},
	{realm.ErrMaxLevelReached, "MAX_LEVEL_REACHED"},
	{realm.ErrOutOfBounds, "OUT_OF_BOUNDS"},
	{realm.ErrUnknownBiome, "UNKNOWN_BIOME"},
	{realm.ErrManualBiomeNotAllowed, "MANUAL_BIOME_NOT_ALLOWED"},
	{realm.ErrUnknownStat, "UNKNOWN_STAT"},
	{realm.ErrUnknownAnimal, "UNKNOWN_ANIMAL"},
	{realm.ErrNotSellable, "NOT_SELLABLE"},
	{realm.ErrInvalidAmount, "INVALID_AMOUNT"},
	{realm.ErrInvalidName, "INVALID_NAME"},
	{realm.ErrNotGrounds, "NOT_GROUNDS"},
	{realm.ErrUnknownBuilding, "UNKNOWN_BUILDING"},
	{realm.ErrInvalidPersistedState, "INVALID_PERSISTED_STATE"},
}

func ReasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "REJECTED"
}

func rejected(intentType string, err error) error {
	return &RejectedError{IntentType: intentType, Reason: err}
}
