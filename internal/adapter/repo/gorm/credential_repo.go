package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"idlarz/internal/adapter/repo/gorm/model"
	"idlarz/internal/app/ports"

	"gorm.io/gorm"
)

type CredentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepo(db *gorm.DB) CredentialRepo {
	return CredentialRepo{db: db}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.SessionCredentialRecord) error {
	row := model.SessionCredential{
		SessionID: credential.SessionID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CredentialRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.SessionCredentialRecord, error) {
	var row model.SessionCredential
	if err := getDBFromCtx(ctx, r.db).Where(&model.SessionCredential{SessionID: sessionID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SessionCredentialRecord{}, ports.ErrNotFound
		}
		return ports.SessionCredentialRecord{}, err
	}
	return ports.SessionCredentialRecord{
		SessionID: row.SessionID,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
