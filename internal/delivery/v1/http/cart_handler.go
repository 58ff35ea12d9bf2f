package http

import (
	"net/http"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartUsecase  usecase.CartUC
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, orderUsecase usecase.OrderUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, orderUsecase: orderUsecase, logger: logger}
}

// getCart
//
//	@Summary		Корзина
//	@Description	Возвращает строки корзины, итог и результат проверки заказа
//	@Tags			carts
//	@Produce		json
//	@Param			sessionID	path		string	true	"Идентификатор сессии"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/carts/{sessionID} [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartUsecase.GetCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}

// addItem
//
//	@Summary		Добавление в корзину
//	@Description	Добавляет продукт. Две половинки одной пиццы склеиваются в целую
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Идентификатор сессии"
//	@Param			item		body		AddCartItemRequest	true	"Продукт и порция"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse	"Некорректная порция или количество"
//	@Failure		404			{object}	ErrorResponse	"Продукт не найден"
//	@Failure		500			{object}	ErrorResponse
//	@Router			/carts/{sessionID}/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var body AddCartItemRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	portion := domain.PortionWhole
	if body.Portion != "" {
		p, err := domain.ParsePortion(body.Portion)
		if err != nil {
			writeUsecaseError(c.logger, w, r, err)
			return
		}
		portion = p
	}

	view, err := c.cartUsecase.AddItem(r.Context(), &usecase.AddCartItemReq{
		SessionID: chi.URLParam(r, "sessionID"),
		ProductID: body.ProductID,
		Portion:   portion,
		Quantity:  body.Quantity,
		Flavors:   body.Flavors,
	})
	if err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}

// setQuantity
//
//	@Summary		Изменение количества
//	@Description	Задаёт количество строки. Ноль удаляет строку
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Идентификатор сессии"
//	@Param			lineID		path		string				true	"Идентификатор строки"
//	@Param			quantity	body		SetQuantityRequest	true	"Новое количество"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse	"Строка не найдена"
//	@Router			/carts/{sessionID}/items/{lineID} [patch]
func (c *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var body SetQuantityRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	view, err := c.cartUsecase.SetQuantity(r.Context(), &usecase.SetCartQuantityReq{
		SessionID: chi.URLParam(r, "sessionID"),
		LineID:    chi.URLParam(r, "lineID"),
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}

// removeItem
//
//	@Summary	Удаление строки
//	@Tags		carts
//	@Produce	json
//	@Param		sessionID	path		string	true	"Идентификатор сессии"
//	@Param		lineID		path		string	true	"Идентификатор строки"
//	@Success	200			{object}	CartResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/carts/{sessionID}/items/{lineID} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartUsecase.RemoveItem(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "lineID"))
	if err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}

// clearCart
//
//	@Summary	Очистка корзины
//	@Tags		carts
//	@Param		sessionID	path	string	true	"Идентификатор сессии"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/carts/{sessionID} [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := c.cartUsecase.ClearCart(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// submitOrder
//
//	@Summary		Отправка заказа
//	@Description	Проверяет корзину и часы работы, сохраняет заказ и возвращает ссылку на WhatsApp
//	@Tags			orders
//	@Produce		json
//	@Param			sessionID	path		string	true	"Идентификатор сессии"
//	@Success		201			{object}	SubmitOrderResponse
//	@Failure		400			{object}	ErrorResponse	"Корзина пуста"
//	@Failure		409			{object}	ErrorResponse	"Магазин не принимает заказы"
//	@Failure		422			{object}	ErrorResponse	"Заказ не прошёл проверку"
//	@Failure		500			{object}	ErrorResponse
//	@Router			/carts/{sessionID}/orders [post]
func (c *CartHandler) submitOrder(w http.ResponseWriter, r *http.Request) {
	res, err := c.orderUsecase.SubmitOrder(r.Context(), &usecase.SubmitOrderReq{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		writeUsecaseError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toSubmitOrderResponse(res))
}
