package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

const cacheWriteTimeout = 500 * time.Millisecond

// ProductUseCase реализует чтение каталога продуктов.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	imagesInfra  ImagesInfra
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		imagesInfra:  imagesInfra,
		logger:       logger,
	}
}

// ListProducts возвращает активные продукты каталога со ссылками на фото.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]ProductView, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.ListActive(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, ProductView{
			Product:  product,
			PhotoURL: p.photoURL(ctx, product),
		})
	}

	return views, nil
}

// ListCategories возвращает категории каталога.
func (p *ProductUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "ProductUseCase.ListCategories"

	categories, err := p.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// GetProducts возвращает информацию о продуктах по их идентификаторам.
// Сначала продукты ищутся в кэше, недостающие догружаются из БД и кэшируются в фоне.
func (p *ProductUseCase) GetProducts(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProducts"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	// Поиск продуктов в кэше
	cacheProductsMap, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		p.logger.Warnf("Failed to read products from cache: %v", e.Wrap(op, err))
		cacheProductsMap = nil
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, productID := range req.IDs {
			if _, ok := cacheProductsMap[productID]; !ok {
				nonCacheable = append(nonCacheable, productID)
			}
		}
	}

	// Получение продуктов из БД
	var productsFromDB []domain.Product
	if len(nonCacheable) > 0 {
		productsFromDB, err = p.productRepo.GetByIDs(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		if len(productsFromDB) > 0 {
			toCache := append([]domain.Product(nil), productsFromDB...)
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
				defer cancel()

				if err := p.cacheRepo.SetProducts(bgCtx, toCache); err != nil {
					p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
				}
			}()
		}
	}

	dbProductsMap := make(map[int64]domain.Product, len(productsFromDB))
	for _, product := range productsFromDB {
		dbProductsMap[product.ID] = product
	}

	// Формирование результата в порядке запроса
	result := make([]domain.Product, 0, len(req.IDs))
	notFoundProducts := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cacheProductsMap[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[id]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, id)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// photoURL возвращает подписанную ссылку на фото. Ошибка хранилища не мешает показать каталог.
func (p *ProductUseCase) photoURL(ctx context.Context, product domain.Product) string {
	if product.PhotoKey == "" {
		return ""
	}

	url, err := p.imagesInfra.PresignedURL(ctx, product.PhotoKey)
	if err != nil {
		p.logger.Warnf("Failed to presign photo for product %d: %v", product.ID, err)
		return ""
	}

	return url
}
