package grpc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProductServiceName — полное имя сервиса каталога для внутренних клиентов.
const ProductServiceName = "pizzeria.v1.ProductService"

// GetProductsInfoMethod — полный путь метода для grpc.ClientConn.Invoke.
const GetProductsInfoMethod = "/" + ProductServiceName + "/GetProductsInfo"

// ProductServiceServer отдаёт снимки продуктов по идентификаторам.
// Запрос: {"ids": [...]}, идентификаторы числами или строками.
// Ответ: {"products": [...], "products_not_found": [...]}, int64 передаются строками.
type ProductServiceServer interface {
	GetProductsInfo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProductsInfo", Handler: getProductsInfoHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pizzeria/v1/product.proto",
}

func getProductsInfoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).GetProductsInfo(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductsInfoMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProductServiceServer).GetProductsInfo(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type ProductService struct {
	prUC   usecase.ProductUC
	logger logger.Logger
}

func NewProductService(prUC usecase.ProductUC, logger logger.Logger) *ProductService {
	return &ProductService{prUC: prUC, logger: logger}
}

func (g *ProductService) GetProductsInfo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetProductsInfo"

	ids, err := idsFromStruct(req)
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := g.prUC.GetProducts(ctx, usecase.NewGetProductsReq(ids))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"products":           toArrGRPCProduct(res.Products),
		"products_not_found": int64Strings(res.NotFoundProducts),
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return out, nil
}

func idsFromStruct(req *structpb.Struct) ([]int64, error) {
	list := req.GetFields()["ids"].GetListValue()
	if list == nil {
		return nil, e.Wrap("ids must be a list", e.ErrStatusBadRequest)
	}

	ids := make([]int64, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			ids = append(ids, int64(kind.NumberValue))
		case *structpb.Value_StringValue:
			id, err := strconv.ParseInt(kind.StringValue, 10, 64)
			if err != nil {
				return nil, e.Wrap(fmt.Sprintf("id %q", kind.StringValue), e.ErrStatusBadRequest)
			}
			ids = append(ids, id)
		default:
			return nil, e.Wrap("id must be a number or a string", e.ErrStatusBadRequest)
		}
	}

	return ids, nil
}

func toGRPCProduct(pr *domain.Product) map[string]interface{} {
	m := map[string]interface{}{
		"id":          strconv.FormatInt(pr.ID, 10),
		"name":        pr.Name,
		"category":    pr.Category,
		"whole_price": strconv.FormatInt(pr.WholePrice, 10),
		"is_active":   pr.IsActive,
	}
	if pr.HalfPrice != nil {
		m["half_price"] = strconv.FormatInt(*pr.HalfPrice, 10)
	}
	if pr.StockQuantity != nil {
		m["stock_quantity"] = strconv.FormatInt(*pr.StockQuantity, 10)
	}

	return m
}

func toArrGRPCProduct(prs []domain.Product) []interface{} {
	res := make([]interface{}, len(prs))
	for i := range prs {
		res[i] = toGRPCProduct(&prs[i])
	}

	return res
}

func int64Strings(values []int64) []interface{} {
	res := make([]interface{}, len(values))
	for i, v := range values {
		res[i] = strconv.FormatInt(v, 10)
	}

	return res
}
