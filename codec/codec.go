/*
Package codec implements the protobuf wire format for the persisted models
and messages.

Models encode themselves field by field with a Writer and decode with a
Reader. The produced bytes are compatible with the proto3 encoding of the
equivalent message definition: zero values are omitted, unknown fields are
skipped when decoding.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multidist/errors"
)

// Marshaler is implemented by any value that can be embedded as a nested
// message.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is implemented by any value that can be decoded from a nested
// message.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Writer accumulates encoded fields. The zero value is ready to use.
type Writer struct {
	buf []byte
	err error
}

func (w *Writer) tag(field int, wire int) {
	w.buf = append(w.buf, proto.EncodeVarint(uint64(field)<<3|uint64(wire))...)
}

// Uint64 writes a varint field. Zero is not written.
func (w *Writer) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	w.tag(field, proto.WireVarint)
	w.buf = append(w.buf, proto.EncodeVarint(v)...)
}

// Int64 writes a varint field using two's complement, as proto3 int64 does.
func (w *Writer) Int64(field int, v int64) {
	w.Uint64(field, uint64(v))
}

// Bool writes a varint field. False is not written.
func (w *Writer) Bool(field int, v bool) {
	if v {
		w.Uint64(field, 1)
	}
}

// Bytes writes a length delimited field. Empty values are not written.
func (w *Writer) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	w.tag(field, proto.WireBytes)
	w.buf = append(w.buf, proto.EncodeVarint(uint64(len(b)))...)
	w.buf = append(w.buf, b...)
}

// RepeatedBytes writes every element as a separate field, including empty
// ones, so that the number of elements is kept.
func (w *Writer) RepeatedBytes(field int, list [][]byte) {
	for _, b := range list {
		w.tag(field, proto.WireBytes)
		w.buf = append(w.buf, proto.EncodeVarint(uint64(len(b)))...)
		w.buf = append(w.buf, b...)
	}
}

// String writes a length delimited field. Empty values are not written.
func (w *Writer) String(field int, s string) {
	w.Bytes(field, []byte(s))
}

// Message writes a nested message. A nil message is not written.
func (w *Writer) Message(field int, m Marshaler) {
	if m == nil || w.err != nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		w.err = err
		return
	}
	w.tag(field, proto.WireBytes)
	w.buf = append(w.buf, proto.EncodeVarint(uint64(len(raw)))...)
	w.buf = append(w.buf, raw...)
}

// Result returns the encoded bytes or the first error that a nested
// message failed with.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// Reader iterates over the fields of an encoded message.
//
//	r := codec.NewReader(raw)
//	for r.Next() {
//		switch r.Field() {
//		case 1:
//			m.Amount, err = r.Uint64()
//		default:
//			err = r.Skip()
//		}
//	}
//	return r.Err()
type Reader struct {
	buf   []byte
	field int
	wire  int
	err   error
}

// NewReader returns a reader over given encoded message.
func NewReader(raw []byte) *Reader {
	return &Reader{buf: raw}
}

// Next advances to the next field. It returns false when the input is
// consumed or malformed.
func (r *Reader) Next() bool {
	if r.err != nil || len(r.buf) == 0 {
		return false
	}
	key, n := proto.DecodeVarint(r.buf)
	if n == 0 {
		r.err = errors.Wrap(errors.ErrInput, "malformed field tag")
		return false
	}
	r.buf = r.buf[n:]
	r.field = int(key >> 3)
	r.wire = int(key & 7)
	if r.field <= 0 {
		r.err = errors.Wrapf(errors.ErrInput, "invalid field number %d", r.field)
		return false
	}
	return true
}

// Field returns the number of the current field.
func (r *Reader) Field() int {
	return r.field
}

// Err returns the first decoding error.
func (r *Reader) Err() error {
	return r.err
}

// Fail records an error raised while handling the current field and stops
// the iteration. The same error is returned.
func (r *Reader) Fail(err error) error {
	if r.err == nil && err != nil {
		r.err = err
	}
	return err
}

// Uint64 reads the current field as a varint.
func (r *Reader) Uint64() (uint64, error) {
	if r.wire != proto.WireVarint {
		return 0, r.Fail(errors.Wrapf(errors.ErrInput, "field %d: want varint, got wire type %d", r.field, r.wire))
	}
	v, n := proto.DecodeVarint(r.buf)
	if n == 0 {
		return 0, r.Fail(errors.Wrapf(errors.ErrInput, "field %d: malformed varint", r.field))
	}
	r.buf = r.buf[n:]
	return v, nil
}

// Int64 reads the current field as a varint encoded signed integer.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Bool reads the current field as a varint encoded boolean.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint64()
	return v != 0, err
}

// Bytes reads the current field as length delimited bytes. Returned slice
// is a copy.
func (r *Reader) Bytes() ([]byte, error) {
	raw, err := r.raw()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// String reads the current field as a length delimited string.
func (r *Reader) String() (string, error) {
	raw, err := r.raw()
	return string(raw), err
}

// Message decodes the current field into given message.
func (r *Reader) Message(m Unmarshaler) error {
	raw, err := r.raw()
	if err != nil {
		return err
	}
	return r.Fail(m.Unmarshal(raw))
}

func (r *Reader) raw() ([]byte, error) {
	if r.wire != proto.WireBytes {
		return nil, r.Fail(errors.Wrapf(errors.ErrInput, "field %d: want bytes, got wire type %d", r.field, r.wire))
	}
	size, n := proto.DecodeVarint(r.buf)
	if n == 0 || size > uint64(len(r.buf)-n) {
		return nil, r.Fail(errors.Wrapf(errors.ErrInput, "field %d: truncated", r.field))
	}
	raw := r.buf[n : n+int(size)]
	r.buf = r.buf[n+int(size):]
	return raw, nil
}

// Skip consumes the current field without decoding it.
func (r *Reader) Skip() error {
	switch r.wire {
	case proto.WireVarint:
		_, err := r.Uint64()
		return err
	case proto.WireBytes:
		_, err := r.raw()
		return err
	case proto.WireFixed64:
		return r.skipN(8)
	case proto.WireFixed32:
		return r.skipN(4)
	default:
		return r.Fail(errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", r.field, r.wire))
	}
}

func (r *Reader) skipN(n int) error {
	if len(r.buf) < n {
		return r.Fail(errors.Wrapf(errors.ErrInput, "field %d: truncated", r.field))
	}
	r.buf = r.buf[n:]
	return nil
}
