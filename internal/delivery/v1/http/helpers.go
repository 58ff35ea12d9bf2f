package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const maxJSONBodySize = 1 << 20

type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"` // Ошибки проверки заказа, только для 422
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	var (
		closed     *usecase.ShopClosedError
		validation *usecase.ValidationError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, e.ErrValidationFailed.Error()
	case errors.As(err, &closed):
		if closed.Message != "" {
			return http.StatusConflict, closed.Message
		}
		return http.StatusConflict, e.ErrShopClosed.Error()
	case errors.Is(err, e.ErrShopClosed):
		return http.StatusConflict, e.ErrShopClosed.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrLineNotFound):
		return http.StatusNotFound, e.ErrLineNotFound.Error()
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

// badRequestErrors отдаются клиенту как 400 со своим текстом.
var badRequestErrors = []error{
	e.ErrInvalidJSON,
	e.ErrInvalidQuantity,
	e.ErrInvalidPortion,
	e.ErrHalfPortionUnavailable,
	e.ErrEmptyCart,
	e.ErrNoProducts,
	e.ErrMissingSessionID,
	e.ErrInvalidSetting,
	e.ErrWrappingSchedule,
	e.ErrEmptySchedule,
	e.ErrStatusBadRequest,
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	resp := NewErrorResponse(code, msg)

	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		resp.Errors = validation.Errors
	}

	WriteSuccess(w, code, resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в dst. Неизвестные поля и лишние данные после
// объекта считаются ошибкой.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrInvalidJSON, err))
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}

	return nil
}

// parseIDs разбирает список вида "1,2,3" из query-параметра.
func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, e.Wrap("ids="+raw, e.ErrStatusBadRequest)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// writeUsecaseError логирует ошибку с уровнем по её коду и отвечает клиенту.
func writeUsecaseError(log logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %s", code, r.Method, r.URL.Path, err.Error())
	}

	WriteError(w, err)
}
