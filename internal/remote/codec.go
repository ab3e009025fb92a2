package remote

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype under which the JSON codec is registered
// with gRPC. All calls in this package use it via grpc.CallContentSubtype.
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec marshals wire messages with encoding/json. The wire types in
// the models package are plain structs, so no protoc artifacts are needed.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
