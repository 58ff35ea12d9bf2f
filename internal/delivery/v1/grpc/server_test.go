package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeProductUC struct {
	products map[int64]domain.Product
}

func (f *fakeProductUC) ListProducts(context.Context) ([]usecase.ProductView, error) {
	return nil, nil
}

func (f *fakeProductUC) ListCategories(context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (f *fakeProductUC) GetProducts(_ context.Context, req *usecase.GetProductsReq) (*usecase.GetProductsRes, error) {
	if len(req.IDs) == 0 {
		return nil, e.ErrNoProducts
	}

	var (
		found    []domain.Product
		notFound []int64
	)
	for _, id := range req.IDs {
		if p, ok := f.products[id]; ok {
			found = append(found, p)
		} else {
			notFound = append(notFound, id)
		}
	}
	return usecase.NewGetProductsRes(found, notFound), nil
}

func startServer(t *testing.T) (*GRPCServer, *grpc.ClientConn) {
	t.Helper()

	half := int64(2800)
	uc := &fakeProductUC{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Margherita", Category: domain.CategoryPizza, WholePrice: 5000, HalfPrice: &half, IsActive: true},
	}}

	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, logger.NewNop())
	srv.RegisterServices(uc)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func TestGetProductsInfo(t *testing.T) {
	srv, conn := startServer(t)
	defer srv.Stop(context.Background())

	req, err := structpb.NewStruct(map[string]interface{}{"ids": []interface{}{1, "7"}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, GetProductsInfoMethod, req, res))

	out := res.AsMap()
	products := out["products"].([]interface{})
	require.Len(t, products, 1)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "5000", first["whole_price"])
	assert.Equal(t, "2800", first["half_price"])
	assert.Equal(t, []interface{}{"7"}, out["products_not_found"])
}

func TestGetProductsInfo_InvalidArgument(t *testing.T) {
	srv, conn := startServer(t)
	defer srv.Stop(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, fields := range []map[string]interface{}{
		{},
		{"ids": []interface{}{}},
		{"ids": []interface{}{"abc"}},
	} {
		req, err := structpb.NewStruct(fields)
		require.NoError(t, err)

		err = conn.Invoke(ctx, GetProductsInfoMethod, req, new(structpb.Struct))
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%v", fields)
	}
}

func TestHealth_ServingUntilStop(t *testing.T) {
	srv, conn := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	require.NoError(t, srv.Stop(ctx))

	resp, err = srv.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ProductServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestGRPCErrorResponse(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(GRPCErrorResponse(e.Wrap("op", e.ErrNoProducts))))
	assert.Equal(t, codes.NotFound, status.Code(GRPCErrorResponse(e.ErrProductNotFound)))
	assert.Equal(t, codes.Internal, status.Code(GRPCErrorResponse(assert.AnError)))
}
