package remote

import (
	"context"

	"google.golang.org/grpc"

	"github.com/ayurchenko/go-ns-kernel/models"
)

// Wire identifiers of the registry service. The kernel is the gRPC client;
// the registry process serves this description.
const (
	registryServiceName = "nskernel.Registry"
	namespaceDictMethod = "/nskernel.Registry/NamespaceDict"
	serveMethod         = "/nskernel.Registry/Serve"
)

// RegistryService is the server-side contract of the registry: the unary
// namespace snapshot query plus the bidirectional serve stream carrying
// registry-initiated calls to the kernel.
type RegistryService interface {
	// NamespaceDict returns the registry's current namespace snapshot.
	NamespaceDict(ctx context.Context, req *models.NamespaceDictRequest) (*models.NamespaceDictResponse, error)

	// Serve handles one kernel's serve stream until the link drops.
	Serve(stream RegistryServeStream) error
}

// RegistryServeStream is the registry's view of one serve stream: calls go
// out to the kernel, replies come back.
type RegistryServeStream interface {
	Send(call *models.ServeCall) error
	Recv() (*models.ServeReply, error)
	Context() context.Context
}

type registryServeStream struct {
	grpc.ServerStream
}

func (s *registryServeStream) Send(call *models.ServeCall) error {
	return s.SendMsg(call)
}

func (s *registryServeStream) Recv() (*models.ServeReply, error) {
	var reply models.ServeReply
	if err := s.RecvMsg(&reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func namespaceDictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.NamespaceDictRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryService).NamespaceDict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: namespaceDictMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryService).NamespaceDict(ctx, req.(*models.NamespaceDictRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func serveHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RegistryService).Serve(&registryServeStream{stream})
}

// registryServiceDesc is the hand-written service description shared by the
// in-process registry server and the dialing side (which reuses the stream
// descriptor when opening the serve stream).
var registryServiceDesc = grpc.ServiceDesc{
	ServiceName: registryServiceName,
	HandlerType: (*RegistryService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NamespaceDict",
			Handler:    namespaceDictHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Serve",
			Handler:       serveHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "internal/remote/service.go",
}
