package realm

import "errors"

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrNotAdjacent           = errors.New("parcel is not adjacent to an owned parcel")
	ErrAlreadyOwned          = errors.New("parcel already owned")
	ErrUniqueBiomeTaken      = errors.New("unique biome already placed")
	ErrNoPointsAvailable     = errors.New("no stat points available")
	ErrMaxLevelReached       = errors.New("castle already at max level")
	ErrInvalidPersistedState = errors.New("invalid persisted state")

	ErrOutOfBounds           = errors.New("parcel out of bounds")
	ErrUnknownBiome          = errors.New("unknown biome")
	ErrManualBiomeNotAllowed = errors.New("manual biome choice not available for this acquisition")
	ErrUnknownStat           = errors.New("unknown stat")
	ErrUnknownAnimal         = errors.New("unknown animal")
	ErrNotSellable           = errors.New("resource cannot be traded")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidName           = errors.New("invalid player name")
	ErrNotGrounds            = errors.New("parcel does not support buildings")
	ErrUnknownBuilding       = errors.New("unknown building")
)
