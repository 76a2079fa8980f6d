package replay

import "idlarz/internal/domain/realm"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// Summary is the latest state as recorded in event payloads.
type Summary struct {
	Resources    realm.Resources `json:"resources"`
	OwnedParcels int             `json:"owned_parcels"`
	Level        int             `json:"level"`
	CastleLevel  int             `json:"castle_level"`
}

type Response struct {
	Events []realm.DomainEvent `json:"events"`
	Latest Summary             `json:"latest"`
}
