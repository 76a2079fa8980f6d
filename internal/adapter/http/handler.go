package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"idlarz/internal/app/action"
	"idlarz/internal/app/catalog"
	"idlarz/internal/app/ports"
	"idlarz/internal/app/replay"
	"idlarz/internal/app/session"
	"idlarz/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const sessionIDHeader = "X-Session-ID"
const sessionKeyHeader = "X-Session-Key"

type Handler struct {
	RegisterUC session.RegisterUseCase
	AuthUC     session.VerifyUseCase
	ActionUC   action.UseCase
	StatusUC   status.UseCase
	ReplayUC   replay.UseCase
	CatalogUC  catalog.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	s.OPTIONS("/*path", func(context.Context, *app.RequestContext) {})

	game := s.Group("/api/game")
	game.POST("/register", h.register)
	game.POST("/status", h.status)
	game.POST("/action", h.action)
	game.GET("/replay", h.replay)

	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type registerRequest struct {
	PlayerName string `json:"player_name"`
}

type actionRequest struct {
	IdempotencyKey string        `json:"idempotency_key"`
	Intent         action.Intent `json:"intent"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, session.RegisterRequest{PlayerName: body.PlayerName})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	sessionID, err := h.requireAuthenticatedSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	sessionID, err := h.requireAuthenticatedSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if hasJSONField(ctx.Request.Body(), "elapsed_ms") {
		writeActionRejected(ctx, consts.StatusBadRequest, "elapsed_managed_by_server", "elapsed time is managed by server", map[string]any{"field": "elapsed_ms"})
		return
	}

	resp, err := h.ActionUC.Execute(c, action.Request{
		SessionID:      sessionID,
		IdempotencyKey: body.IdempotencyKey,
		Intent:         body.Intent,
	})
	if err != nil {
		if writeActionRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	sessionID, err := h.requireAuthenticatedSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    sessionID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	rows, _ := strconv.Atoi(string(ctx.Query("parcel_rows")))
	ctx.JSON(consts.StatusOK, h.CatalogUC.Execute(catalog.Request{ParcelRows: rows}))
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func hasJSONField(body []byte, key string) bool {
	if len(body) == 0 {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}

var ErrMissingSessionIDHeader = errors.New("missing x-session-id header")
var ErrMissingSessionKeyHeader = errors.New("missing x-session-key header")
var ErrMissingSessionCredentials = errors.New("missing session credentials")

func (h Handler) requireAuthenticatedSession(c context.Context, ctx *app.RequestContext) (string, error) {
	sessionID := strings.TrimSpace(string(ctx.GetHeader(sessionIDHeader)))
	sessionKey := strings.TrimSpace(string(ctx.GetHeader(sessionKeyHeader)))
	if sessionID == "" && sessionKey == "" {
		return "", ErrMissingSessionCredentials
	}
	if sessionID == "" {
		return "", ErrMissingSessionIDHeader
	}
	if sessionKey == "" {
		return "", ErrMissingSessionKeyHeader
	}
	if err := h.AuthUC.Execute(c, session.VerifyRequest{
		SessionID:  sessionID,
		SessionKey: sessionKey,
	}); err != nil {
		return "", err
	}
	return sessionID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSessionCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_credentials", err.Error())
	case errors.Is(err, ErrMissingSessionIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, ErrMissingSessionKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_key", err.Error())
	case errors.Is(err, session.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_session_credentials", err.Error())
	case errors.Is(err, action.ErrActionRejected):
		writeErrorBody(ctx, consts.StatusConflict, "action_rejected", err.Error())
	case errors.Is(err, action.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeActionRejectedFromErr(ctx *app.RequestContext, err error) bool {
	var rej *action.RejectedError
	switch {
	case errors.As(err, &rej):
		writeActionRejected(ctx, consts.StatusConflict, rej.Code(), rej.Reason.Error(), map[string]any{
			"intent": rej.IntentType,
		})
		return true
	case errors.Is(err, action.ErrInvalidActionParams):
		writeActionRejected(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error(), nil)
		return true
	case errors.Is(err, action.ErrInvalidRequest):
		writeActionRejected(ctx, consts.StatusBadRequest, "bad_request", err.Error(), nil)
		return true
	default:
		return false
	}
}

func writeActionRejected(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
