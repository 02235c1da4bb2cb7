package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/football-clinic/repositories"
	"github.com/Dosada05/football-clinic/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	errorResponseWith(w, r, status, jsonResponse{"error": message})
}

// errorResponseWith writes env as an error body. env must carry "error".
func errorResponseWith(w http.ResponseWriter, r *http.Request, status int, env jsonResponse) {
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, fields map[string]string, notice *services.Notice) {
	errorResponseWith(w, r, http.StatusUnprocessableEntity, jsonResponse{"error": fields, "notice": notice})
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

// statusForServiceError maps service and API errors to an HTTP status.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		return http.StatusUnprocessableEntity

	// Повторная отправка, пока первая ещё выполняется
	case errors.Is(err, services.ErrSubmissionInProgress),
		errors.Is(err, services.ErrPaymentInProgress),
		errors.Is(err, services.ErrFormClosed):
		return http.StatusConflict

	case errors.Is(err, services.ErrCheckoutTokenInvalid),
		errors.Is(err, services.ErrCheckoutTokenExpired):
		return http.StatusUnauthorized

	// Невалидные данные / бизнес-правила
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrRegistrationIDRequired),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrDeleteNotConfirmed),
		errors.Is(err, services.ErrPaymentReferenceMissing),
		errors.Is(err, services.ErrPaymentNotReady),
		errors.Is(err, services.ErrPaymentInvalidState),
		errors.Is(err, errInvalidPage):
		return http.StatusBadRequest

	case errors.Is(err, services.ErrArchiveNotConfigured):
		return http.StatusServiceUnavailable

	// Ошибки внешнего API
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrAPIUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, repositories.ErrAPIRejected):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	serviceErrorResponse(w, r, err, nil)
}

// serviceErrorResponse is mapServiceErrorToHTTP plus the notices the
// service raised, so the page can show them.
func serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error, extra jsonResponse) {
	status := statusForServiceError(err)
	if status == http.StatusInternalServerError {
		serverErrorResponse(w, r, err)
		return
	}

	env := jsonResponse{"error": publicMessage(err, status)}
	for k, v := range extra {
		env[k] = v
	}
	errorResponseWith(w, r, status, env)
}

// publicMessage hides upstream details behind the service-level error.
func publicMessage(err error, status int) string {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusNotFound:
		if msg := repositories.ServerMessage(err); msg != "" {
			return msg
		}
		for _, known := range []error{
			services.ErrSubmissionFailed, services.ErrPaymentInitFailed, services.ErrListFailed,
			services.ErrStatusUpdateFailed, services.ErrDeleteFailed, services.ErrArchiveNotConfigured,
		} {
			if errors.Is(err, known) {
				return known.Error()
			}
		}
		return http.StatusText(status)
	}
	return err.Error()
}
