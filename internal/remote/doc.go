// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

// Package remote implements the request/response transport between the
// kernel and the remote module registry.
//
// The primary abstraction is [Conn], a single logical link created by [Dial]
// and owned exclusively by the sync client. A Conn carries two channels of
// traffic over one gRPC client connection: a unary namespace snapshot query
// issued through the [Root] accessor, and a bidirectional serve stream on
// which the registry initiates calls into the kernel. The serve stream is
// drained by the kernel's background receiver.
//
// No protoc-generated code is involved: messages are the plain structs in
// the models package, marshalled by a JSON codec registered with gRPC, and
// the service is described by a hand-written grpc.ServiceDesc.
//
// Error values defined in errors.go are mapped from transport failures by
// mapError so that callers can use [errors.Is] to distinguish the two
// expected link-loss conditions ([ErrConnection], [ErrEndOfStream]) from
// protocol errors, which pass through unchanged.
package remote
