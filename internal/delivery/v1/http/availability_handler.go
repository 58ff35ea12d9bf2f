package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUC
	logger              logger.Logger
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUC, logger logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase, logger: logger}
}

// getAvailability
//
//	@Summary		Приём заказов
//	@Description	Сообщает, принимает ли магазин заказы сейчас, и сообщение для покупателя
//	@Tags			availability
//	@Produce		json
//	@Success		200	{object}	AvailabilityResponse
//	@Router			/availability [get]
func (a *AvailabilityHandler) getAvailability(w http.ResponseWriter, r *http.Request) {
	decision := a.availabilityUsecase.Check(r.Context())
	WriteSuccess(w, http.StatusOK, AvailabilityResponse{IsOpen: decision.IsOpen, Message: decision.Message})
}

// getSettings
//
//	@Summary	Настройки магазина
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	ShopSettingsDTO
//	@Failure	401	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/admin/settings [get]
func (a *AvailabilityHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.availabilityUsecase.GetSettings(r.Context())
	if err != nil {
		writeUsecaseError(a.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toShopSettingsDTO(settings))
}

// updateSettings
//
//	@Summary		Изменение настроек магазина
//	@Description	Окно работы не может переходить через границу недели
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			settings	body		ShopSettingsDTO	true	"Полный набор настроек"
//	@Success		200			{object}	ShopSettingsDTO
//	@Failure		400			{object}	ErrorResponse	"Некорректные настройки"
//	@Failure		401			{object}	ErrorResponse
//	@Router			/admin/settings [put]
func (a *AvailabilityHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var body ShopSettingsDTO
	if err := decodeJSON(w, r, &body); err != nil {
		writeUsecaseError(a.logger, w, r, err)
		return
	}

	saved, err := a.availabilityUsecase.UpdateSettings(r.Context(), body.toDomain())
	if err != nil {
		writeUsecaseError(a.logger, w, r, err)
		return
	}

	a.logger.Infof("Shop settings updated: status=%s", saved.Status)
	WriteSuccess(w, http.StatusOK, toShopSettingsDTO(saved))
}

// requireAdminToken пропускает запрос только с заголовком "Authorization: Bearer <token>".
// Пустой token отключает проверку.
func requireAdminToken(token string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeUsecaseError(log, w, r, e.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
