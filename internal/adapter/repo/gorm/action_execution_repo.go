package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"idlarz/internal/adapter/repo/gorm/model"
	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ActionExecution{SessionID: sessionID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &ports.ActionExecutionRecord{
		SessionID:      m.SessionID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		ElapsedMillis:  m.ElapsedMs,
		Result:         decodeResult(m),
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	viewJSON, _ := json.Marshal(execution.Result.View)
	eventsJSON, _ := json.Marshal(execution.Result.Events)
	outcomeJSON, _ := json.Marshal(execution.Result.Outcome)
	m := model.ActionExecution{
		SessionID:      execution.SessionID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		ElapsedMs:      execution.ElapsedMillis,
		ResultCode:     string(execution.Result.ResultCode),
		View:           viewJSON,
		Events:         eventsJSON,
		Outcome:        outcomeJSON,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func decodeResult(m model.ActionExecution) ports.ActionResult {
	var view realm.View
	var events []realm.DomainEvent
	var outcome map[string]any
	_ = json.Unmarshal(m.View, &view)
	_ = json.Unmarshal(m.Events, &events)
	if len(m.Outcome) > 0 {
		_ = json.Unmarshal(m.Outcome, &outcome)
	}
	return ports.ActionResult{
		View:       view,
		Events:     events,
		ResultCode: realm.ResultCode(m.ResultCode),
		Outcome:    outcome,
	}
}
