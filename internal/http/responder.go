package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/reserva-salas/internal/application"
	"github.com/example/reserva-salas/internal/logging"
)

var (
	errBadRequestBody      = errors.New("Formato de requisição inválido.")
	errMissingDate         = errors.New("Informe a data no formato AAAA-MM-DD.")
	errMissingListFilter   = errors.New("Informe uma data ou uma sala para listar as reservas.")
	errMissingConflictArgs = errors.New("Informe sala, data e horários para verificar conflitos.")
	errMissingSessionToken = errors.New("Informe o token de autenticação.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError translates the application error taxonomy into status
// codes and user-facing Portuguese messages. Internal error text stays
// English; localization happens only at this edge.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Message: "Sessão inválida. Faça login novamente."})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Message: "E-mail ou senha incorretos."})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "Recurso não encontrado."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Este e-mail já está cadastrado."})
	case errors.Is(err, application.ErrConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "RESERVATION_CONFLICT",
			Message:   "Já existe uma reserva neste horário para esta sala.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Verifique os campos destacados.",
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Ocorreu um erro interno. Tente novamente."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requisição inválida."
	case http.StatusUnauthorized:
		return "Autenticação necessária."
	case http.StatusNotFound:
		return "Recurso não encontrado."
	case http.StatusConflict:
		return "A operação conflita com o estado atual."
	case http.StatusUnprocessableEntity:
		return "Verifique os campos destacados."
	default:
		return "Ocorreu um erro interno. Tente novamente."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "name is required":
		return "Nome é obrigatório."
	case "name must be at most 100 characters":
		return "Nome deve ter no máximo 100 caracteres."
	case "capacity must be between 1 and 1000":
		return "Capacidade deve ser um número entre 1 e 1000."
	case "room is required":
		return "Selecione uma sala."
	case "room does not exist":
		return "A sala selecionada não existe."
	case "date is required":
		return "Selecione uma data."
	case "date is invalid":
		return "Data inválida."
	case "date must not be in the past":
		return "Não é possível reservar em datas passadas."
	case "start time is required":
		return "Selecione o horário inicial."
	case "start time is invalid":
		return "Horário inicial inválido."
	case "end time is required":
		return "Selecione o horário final."
	case "end time is invalid":
		return "Horário final inválido."
	case "end time must be after start time":
		return "Horário final deve ser maior que o inicial."
	case "time is invalid":
		return "Horário inválido."
	case "email is required":
		return "E-mail é obrigatório."
	case "email is invalid":
		return "E-mail inválido."
	case "password must be at least 6 characters":
		return "A senha deve ter pelo menos 6 caracteres."
	default:
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
