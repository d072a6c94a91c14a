// Package codec provides the value encodings and the integrity checksum used
// by objlog's binary and textual logs.
//
// A Codec turns one Go value into a self-delimiting byte payload and reads
// exactly one value back from a stream. Nothing in the payload says how long
// it is from the outside: the decoder knows where a value ends from the
// encoding itself, so frames in a log file can be written back to back with
// no length prefix and no separator.
//
// # Codecs
//
// Two codecs are provided:
//
//   - MsgpackCodec: MessagePack via github.com/vmihailenco/msgpack/v5.
//     Map keys are sorted and integers use their most compact form, so
//     encoding a decoded value reproduces the bytes the writer produced.
//   - ProtoCodec: varint-delimited protobuf via
//     google.golang.org/protobuf/encoding/protodelim. Values must be
//     proto.Message; marshaling is deterministic.
//
// # Checksum
//
// Checksum computes a CRC32 (IEEE) over a payload. The log stores the
// checksum by passing the uint32 through the same Codec as the payload, so
// the reader decodes it with the same primitive:
//
//	[Encode(record)][Encode(Checksum(Encode(record)))]
//
// # Errors
//
// Decode distinguishes three failure modes, all usable with errors.Is:
//
//   - ErrEndOfData: the stream had no bytes left when Decode was called.
//   - ErrTruncated: some bytes were consumed, then the stream ended.
//   - ErrMalformed: bytes were present but are not a valid encoded value.
//
// Encode only fails for values the codec cannot represent, which is a
// programming error on the caller's side.
//
// # Usage
//
//	c := codec.NewMsgpackCodec()
//
//	payload, err := c.Encode(record)
//	if err != nil {
//	    return err
//	}
//	sum := codec.Checksum(payload)
//
//	var out Record
//	if err := c.Decode(bufio.NewReader(f), &out); err != nil {
//	    if errors.Is(err, codec.ErrEndOfData) {
//	        // clean end of stream
//	    }
//	    return err
//	}
//
// # Thread Safety
//
// Codec instances hold no per-call state and are safe for concurrent use.
// A Stream must not be shared between goroutines.
package codec
