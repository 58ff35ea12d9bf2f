package http

import (
	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
)

// Все суммы передаются в центах, рядом лежит строка в формате R$.

type ProductResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	WholePrice     int64  `json:"whole_price"`
	WholePriceText string `json:"whole_price_text"`
	HalfPrice      *int64 `json:"half_price,omitempty"`
	StockQuantity  *int64 `json:"stock_quantity,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Products   []ProductResponse  `json:"products"`
}

type AddCartItemRequest struct {
	ProductID int64    `json:"product_id"`
	Portion   string   `json:"portion"`
	Quantity  int      `json:"quantity"`
	Flavors   []string `json:"flavors,omitempty"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	ID          string   `json:"id"`
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Portion     string   `json:"portion"`
	Quantity    int      `json:"quantity"`
	Flavors     []string `json:"flavors,omitempty"`
	UnitPrice   int64    `json:"unit_price"`
	LineTotal   int64    `json:"line_total"`
}

type CartResponse struct {
	SessionID string             `json:"session_id"`
	Lines     []CartLineResponse `json:"lines"`
	Total     int64              `json:"total"`
	TotalText string             `json:"total_text"`
	Valid     bool               `json:"valid"`
	Errors    []string           `json:"errors"`
}

type AvailabilityResponse struct {
	IsOpen  bool   `json:"is_open"`
	Message string `json:"message,omitempty"`
}

type SubmitOrderResponse struct {
	OrderID     int64  `json:"order_id"`
	EventID     string `json:"event_id"`
	Total       int64  `json:"total"`
	TotalText   string `json:"total_text"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// ShopSettingsDTO используется и в запросе, и в ответе админки.
type ShopSettingsDTO struct {
	Status     string `json:"status"`
	OpenDay    int    `json:"open_day"`
	OpenHour   int    `json:"open_hour"`
	CloseDay   int    `json:"close_day"`
	CloseHour  int    `json:"close_hour"`
	OpeningMsg string `json:"opening_msg"`
	ClosingMsg string `json:"closing_msg"`
}

func toProductResponse(v usecase.ProductView) ProductResponse {
	return ProductResponse{
		ID:             v.Product.ID,
		Name:           v.Product.Name,
		Category:       v.Product.Category,
		WholePrice:     v.Product.WholePrice,
		WholePriceText: domain.FormatBRL(v.Product.WholePrice),
		HalfPrice:      v.Product.HalfPrice,
		StockQuantity:  v.Product.StockQuantity,
		PhotoURL:       v.PhotoURL,
	}
}

func toArrProductResponse(views []usecase.ProductView) []ProductResponse {
	res := make([]ProductResponse, len(views))
	for i, v := range views {
		res[i] = toProductResponse(v)
	}

	return res
}

func toArrCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}

	return res
}

func toCartResponse(v *usecase.CartView) CartResponse {
	lines := make([]CartLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = CartLineResponse{
			ID:          l.Line.ID,
			ProductID:   l.Line.Product.ID,
			ProductName: l.Line.Product.Name,
			Portion:     string(l.Line.Portion),
			Quantity:    l.Line.Quantity,
			Flavors:     l.Line.Flavors,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}

	errs := v.Validation.Errors
	if errs == nil {
		errs = []string{}
	}

	return CartResponse{
		SessionID: v.SessionID,
		Lines:     lines,
		Total:     v.Total,
		TotalText: domain.FormatBRL(v.Total),
		Valid:     v.Validation.Valid,
		Errors:    errs,
	}
}

func toSubmitOrderResponse(res *usecase.SubmitOrderRes) SubmitOrderResponse {
	return SubmitOrderResponse{
		OrderID:     res.OrderID,
		EventID:     res.EventID,
		Total:       res.Total,
		TotalText:   domain.FormatBRL(res.Total),
		Message:     res.Message,
		WhatsAppURL: res.WhatsAppURL,
	}
}

func toShopSettingsDTO(s *domain.ShopSettings) ShopSettingsDTO {
	return ShopSettingsDTO{
		Status:     string(s.Status),
		OpenDay:    s.OpenDay,
		OpenHour:   s.OpenHour,
		CloseDay:   s.CloseDay,
		CloseHour:  s.CloseHour,
		OpeningMsg: s.OpeningMsg,
		ClosingMsg: s.ClosingMsg,
	}
}

func (d ShopSettingsDTO) toDomain() domain.ShopSettings {
	return domain.ShopSettings{
		Status:     domain.ShopStatus(d.Status),
		OpenDay:    d.OpenDay,
		OpenHour:   d.OpenHour,
		CloseDay:   d.CloseDay,
		CloseHour:  d.CloseHour,
		OpeningMsg: d.OpeningMsg,
		ClosingMsg: d.ClosingMsg,
	}
}
