package codec

import (
	"bytes"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ProtoName is the registered name of ProtoCodec
const ProtoName = "proto"

// DefaultProtoMaxSize bounds a single decoded message
const DefaultProtoMaxSize = 4 << 20

// ProtoCodec encodes proto.Message values as varint-delimited protobuf.
// uint32 values are carried as google.protobuf.UInt32Value.
type ProtoCodec struct {
	marshal   protodelim.MarshalOptions
	unmarshal protodelim.UnmarshalOptions
}

// NewProtoCodec creates a protobuf codec with deterministic marshaling
func NewProtoCodec() *ProtoCodec {
	return &ProtoCodec{
		marshal: protodelim.MarshalOptions{
			MarshalOptions: proto.MarshalOptions{Deterministic: true},
		},
		unmarshal: protodelim.UnmarshalOptions{
			MaxSize: DefaultProtoMaxSize,
		},
	}
}

// Name returns "proto"
func (c *ProtoCodec) Name() string {
	return ProtoName
}

// Encode serializes a proto.Message or uint32
func (c *ProtoCodec) Encode(v any) ([]byte, error) {
	var msg proto.Message
	switch src := v.(type) {
	case uint32:
		msg = wrapperspb.UInt32(src)
	case proto.Message:
		msg = src
	default:
		return nil, fmt.Errorf("proto: cannot encode %T", v)
	}

	var buf bytes.Buffer
	if _, err := c.marshal.MarshalTo(&buf, msg); err != nil {
		return nil, fmt.Errorf("proto: cannot encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Decode reads one delimited message from r. v may be a *uint32, a
// proto.Message, or a pointer to a message pointer, which is allocated
// when nil.
func (c *ProtoCodec) Decode(r Stream, v any) error {
	if err := checkStart(r); err != nil {
		return err
	}

	if dst, ok := v.(*uint32); ok {
		var w wrapperspb.UInt32Value
		if err := c.unmarshal.UnmarshalFrom(r, &w); err != nil {
			return classify(ProtoName, err)
		}
		*dst = w.GetValue()
		return nil
	}

	msg, err := messageTarget(v)
	if err != nil {
		return err
	}
	if err := c.unmarshal.UnmarshalFrom(r, msg); err != nil {
		return classify(ProtoName, err)
	}
	return nil
}

func messageTarget(v any) (proto.Message, error) {
	if msg, ok := v.(proto.Message); ok {
		return msg, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("proto: cannot decode into %T", v)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("proto: cannot decode into %T", v)
	}
	if elem.IsNil() {
		elem.Set(reflect.New(elem.Type().Elem()))
	}
	msg, ok := elem.Interface().(proto.Message)
	if !ok {
		return nil, fmt.Errorf("proto: cannot decode into %T", v)
	}
	return msg, nil
}
