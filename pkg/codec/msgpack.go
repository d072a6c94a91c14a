package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackName is the registered name of MsgpackCodec
const MsgpackName = "msgpack"

// MsgpackCodec encodes values as MessagePack
type MsgpackCodec struct{}

// NewMsgpackCodec creates a new MessagePack codec
func NewMsgpackCodec() *MsgpackCodec {
	return &MsgpackCodec{}
}

// Name returns "msgpack"
func (c *MsgpackCodec) Name() string {
	return MsgpackName
}

// Encode serializes v with sorted map keys and compact integers
func (c *MsgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	// Reset clears encoder flags, so options go after it
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack: cannot encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Decode reads one MessagePack value from r into v. Struct targets reject
// map keys that match none of their fields.
func (c *MsgpackCodec) Decode(r Stream, v any) error {
	if err := checkStart(r); err != nil {
		return err
	}

	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(r)
	// Unknown struct keys are damage, not extensions
	dec.DisallowUnknownFields(true)

	if err := dec.Decode(v); err != nil {
		return classify(MsgpackName, err)
	}
	return nil
}
