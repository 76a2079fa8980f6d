package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"idlarz/internal/adapter/repo/gorm/model"
	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"

	"gorm.io/gorm"
)

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return GameRepo{db: db}
}

func (r GameRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.GameRecord, error) {
	var m model.Game
	if err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.GameRecord{}, ports.ErrNotFound
		}
		return ports.GameRecord{}, err
	}
	// A corrupt blob still yields a record; the loader resets it to a new game.
	snap, err := realm.DecodeSnapshot(m.Snapshot)
	if err != nil {
		slog.Warn("stored snapshot failed to decode", "session_id", m.SessionID, "version", m.Version, "err", err)
	}
	return ports.GameRecord{
		SessionID: m.SessionID,
		Snapshot:  snap,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r GameRepo) SaveWithVersion(ctx context.Context, record ports.GameRecord, expectedVersion int64) error {
	raw, err := realm.EncodeSnapshot(record.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.Game{
			SessionID: record.SessionID,
			Snapshot:  raw,
			Version:   record.Version,
			UpdatedAt: record.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.Game{}).
		Where("session_id = ? AND version = ?", record.SessionID, expectedVersion).
		Updates(map[string]any{
			"snapshot":   raw,
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
