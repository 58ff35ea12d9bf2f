package http

import (
	"net/http"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type ProductsByIDsResponse struct {
	Products         []ProductResponse `json:"products"`
	NotFoundProducts []int64           `json:"not_found_products"`
}

// listCatalog
//
//	@Summary		Каталог
//	@Description	Возвращает категории и активные продукты. С параметром ids возвращает только указанные продукты
//	@Tags			products
//	@Produce		json
//	@Param			ids	query		string	false	"Идентификаторы через запятую"
//	@Success		200	{object}	CatalogResponse	"Без ids; с ids ответ имеет вид ProductsByIDsResponse"
//	@Failure		400	{object}	ErrorResponse	"Некорректный список ids"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listCatalog(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("ids"); raw != "" {
		p.productsByIDs(w, r, raw)
		return
	}

	categories, err := p.productUsecase.ListCategories(r.Context())
	if err != nil {
		writeUsecaseError(p.logger, w, r, err)
		return
	}

	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		writeUsecaseError(p.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CatalogResponse{
		Categories: toArrCategoryResponse(categories),
		Products:   toArrProductResponse(products),
	})
}

func (p *ProductHandler) productsByIDs(w http.ResponseWriter, r *http.Request, raw string) {
	ids, err := parseIDs(raw)
	if err != nil {
		writeUsecaseError(p.logger, w, r, err)
		return
	}

	res, err := p.productUsecase.GetProducts(r.Context(), usecase.NewGetProductsReq(ids))
	if err != nil {
		writeUsecaseError(p.logger, w, r, err)
		return
	}

	views := make([]usecase.ProductView, len(res.Products))
	for i, pr := range res.Products {
		views[i] = usecase.ProductView{Product: pr}
	}

	notFound := res.NotFoundProducts
	if notFound == nil {
		notFound = []int64{}
	}

	WriteSuccess(w, http.StatusOK, ProductsByIDsResponse{
		Products:         toArrProductResponse(views),
		NotFoundProducts: notFound,
	})
}
