package catalogv1

import (
	"context"

	"github.com/ajmonfue/poke-explorer/internal/platform/grpc/jsoncodec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "poke_explorer.catalog.v1.CatalogService"

// Full method names.
const (
	MethodFindAllPokemons       = "/" + ServiceName + "/FindAllPokemons"
	MethodFindPokemonById       = "/" + ServiceName + "/FindPokemonById"
	MethodFindPokemonEvolutions = "/" + ServiceName + "/FindPokemonEvolutions"
	MethodFindGenerations       = "/" + ServiceName + "/FindGenerations"
	MethodFindPokemonTypes      = "/" + ServiceName + "/FindPokemonTypes"
)

// CatalogServiceClient is the client API for CatalogService.
type CatalogServiceClient interface {
	FindAllPokemons(ctx context.Context, in *ListPokemonsRequest, opts ...grpc.CallOption) (*ListPokemonsResponse, error)
	FindPokemonById(ctx context.Context, in *GetPokemonRequest, opts ...grpc.CallOption) (*GetPokemonResponse, error)
	FindPokemonEvolutions(ctx context.Context, in *FindEvolutionsRequest, opts ...grpc.CallOption) (*FindEvolutionsResponse, error)
	FindGenerations(ctx context.Context, in *ListGenerationsRequest, opts ...grpc.CallOption) (*ListGenerationsResponse, error)
	FindPokemonTypes(ctx context.Context, in *ListPokemonTypesRequest, opts ...grpc.CallOption) (*ListPokemonTypesResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient builds a client that encodes calls as JSON.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
}

func (c *catalogServiceClient) FindAllPokemons(ctx context.Context, in *ListPokemonsRequest, opts ...grpc.CallOption) (*ListPokemonsResponse, error) {
	out := new(ListPokemonsResponse)
	if err := c.cc.Invoke(ctx, MethodFindAllPokemons, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) FindPokemonById(ctx context.Context, in *GetPokemonRequest, opts ...grpc.CallOption) (*GetPokemonResponse, error) {
	out := new(GetPokemonResponse)
	if err := c.cc.Invoke(ctx, MethodFindPokemonById, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) FindPokemonEvolutions(ctx context.Context, in *FindEvolutionsRequest, opts ...grpc.CallOption) (*FindEvolutionsResponse, error) {
	out := new(FindEvolutionsResponse)
	if err := c.cc.Invoke(ctx, MethodFindPokemonEvolutions, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) FindGenerations(ctx context.Context, in *ListGenerationsRequest, opts ...grpc.CallOption) (*ListGenerationsResponse, error) {
	out := new(ListGenerationsResponse)
	if err := c.cc.Invoke(ctx, MethodFindGenerations, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) FindPokemonTypes(ctx context.Context, in *ListPokemonTypesRequest, opts ...grpc.CallOption) (*ListPokemonTypesResponse, error) {
	out := new(ListPokemonTypesResponse)
	if err := c.cc.Invoke(ctx, MethodFindPokemonTypes, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// CatalogServiceServer is the server API for CatalogService. Implementations
// must embed UnimplementedCatalogServiceServer.
type CatalogServiceServer interface {
	FindAllPokemons(context.Context, *ListPokemonsRequest) (*ListPokemonsResponse, error)
	FindPokemonById(context.Context, *GetPokemonRequest) (*GetPokemonResponse, error)
	FindPokemonEvolutions(context.Context, *FindEvolutionsRequest) (*FindEvolutionsResponse, error)
	FindGenerations(context.Context, *ListGenerationsRequest) (*ListGenerationsResponse, error)
	FindPokemonTypes(context.Context, *ListPokemonTypesRequest) (*ListPokemonTypesResponse, error)
	mustEmbedUnimplementedCatalogServiceServer()
}

// UnimplementedCatalogServiceServer answers Unimplemented for every method.
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) FindAllPokemons(context.Context, *ListPokemonsRequest) (*ListPokemonsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindAllPokemons not implemented")
}

func (UnimplementedCatalogServiceServer) FindPokemonById(context.Context, *GetPokemonRequest) (*GetPokemonResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindPokemonById not implemented")
}

func (UnimplementedCatalogServiceServer) FindPokemonEvolutions(context.Context, *FindEvolutionsRequest) (*FindEvolutionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindPokemonEvolutions not implemented")
}

func (UnimplementedCatalogServiceServer) FindGenerations(context.Context, *ListGenerationsRequest) (*ListGenerationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindGenerations not implemented")
}

func (UnimplementedCatalogServiceServer) FindPokemonTypes(context.Context, *ListPokemonTypesRequest) (*ListPokemonTypesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindPokemonTypes not implemented")
}

func (UnimplementedCatalogServiceServer) mustEmbedUnimplementedCatalogServiceServer() {}

// RegisterCatalogServiceServer registers srv on s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(CatalogServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogServiceDesc describes CatalogService for grpc.RegisterService.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FindAllPokemons",
			Handler:    unaryHandler(MethodFindAllPokemons, CatalogServiceServer.FindAllPokemons),
		},
		{
			MethodName: "FindPokemonById",
			Handler:    unaryHandler(MethodFindPokemonById, CatalogServiceServer.FindPokemonById),
		},
		{
			MethodName: "FindPokemonEvolutions",
			Handler:    unaryHandler(MethodFindPokemonEvolutions, CatalogServiceServer.FindPokemonEvolutions),
		},
		{
			MethodName: "FindGenerations",
			Handler:    unaryHandler(MethodFindGenerations, CatalogServiceServer.FindGenerations),
		},
		{
			MethodName: "FindPokemonTypes",
			Handler:    unaryHandler(MethodFindPokemonTypes, CatalogServiceServer.FindPokemonTypes),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/catalog/v1",
}
