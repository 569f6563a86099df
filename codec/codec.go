// Package codec holds the two encodings used by the launcher: MessagePack
// for host-local state and exchange files, and single-line JSON for
// manifests and the stream transport.
package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ugorji/go/codec"
)

var msgpackHandle = newMsgpackHandle()

func newMsgpackHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	h.RawToString = true
	h.Canonical = true
	return h
}

// EncodeBinary encodes v as MessagePack.
func EncodeBinary(v interface{}) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return out, nil
}

// DecodeBinary decodes MessagePack data into v, which must be a pointer.
func DecodeBinary(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("msgpack decode: empty input")
	}
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}

// WriteBinary encodes v as MessagePack to w.
func WriteBinary(w io.Writer, v interface{}) error {
	if err := codec.NewEncoder(w, msgpackHandle).Encode(v); err != nil {
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return nil
}

// ReadBinary decodes one MessagePack value from r into v.
func ReadBinary(r io.Reader, v interface{}) error {
	if err := codec.NewDecoder(r, msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}

// EncodeLine encodes v as one line of JSON terminated by a newline.
func EncodeLine(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeLine decodes a single JSON line into v. Surrounding whitespace is
// ignored; more than one value is an error.
func DecodeLine(line []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return fmt.Errorf("json decode: empty input")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("json decode: unexpected data after the first value")
	}
	return nil
}

// LastObjectLine returns the last line of output that holds a JSON object,
// or nil. Extensions print the response immediately before exiting; other
// lines they write to stdout are ignored.
func LastObjectLine(output []byte) []byte {
	var last []byte
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := bytes.TrimSpace(scanner.Bytes()); len(line) > 0 && line[0] == '{' {
			last = append(last[:0], line...)
		}
	}
	return last
}
