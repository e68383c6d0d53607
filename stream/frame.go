// Package stream implements the machine-readable progress stream: export
// progress and result frames encoded as length-prefixed msgpack. The CLI
// writes the stream to stdout for supervising processes; the same codec
// reads it back.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/flightdeck-io/flightdeck/types"
)

// Frame size constants.
const (
	// MaxFrameSize is the maximum frame size (1 MiB), including length
	// prefix. Progress and result frames are small; anything larger is a
	// corrupt stream.
	MaxFrameSize = 1 * 1024 * 1024
	// MaxPayloadSize is the maximum payload size.
	MaxPayloadSize = MaxFrameSize - LengthPrefixSize
	// LengthPrefixSize is the size of the length prefix in bytes.
	LengthPrefixSize = 4
)

// Frame type discriminants.
const (
	// ProgressType marks incremental progress frames.
	ProgressType = "progress"
	// ResultType marks the terminal result frame, always the last frame
	// of a stream.
	ResultType = "result"
)

// ProgressFrame is one incremental progress update.
type ProgressFrame struct {
	Type      string `msgpack:"type"`
	ExportID  string `msgpack:"export_id"`
	Completed int    `msgpack:"completed"`
	Total     int    `msgpack:"total"`
	Tier      string `msgpack:"tier"`
}

// ResultFrame is the terminal frame of a stream.
type ResultFrame struct {
	Type       string `msgpack:"type"`
	ExportID   string `msgpack:"export_id"`
	Status     string `msgpack:"status"`
	Message    string `msgpack:"message,omitempty"`
	SizeBytes  int64  `msgpack:"size_bytes"`
	FrameCount int    `msgpack:"frame_count"`
	DurationMs int64  `msgpack:"duration_ms"`
	Version    string `msgpack:"version"`
}

// FrameErrorKind classifies frame decoding errors.
type FrameErrorKind int

const (
	// FrameErrorPartial indicates a truncated or incomplete frame.
	FrameErrorPartial FrameErrorKind = iota
	// FrameErrorTooLarge indicates a frame exceeding MaxFrameSize.
	FrameErrorTooLarge
	// FrameErrorDecode indicates a msgpack decoding error.
	FrameErrorDecode
)

// FrameError represents a frame decoding error.
type FrameError struct {
	Kind FrameErrorKind
	Msg  string
	Err  error
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if this error is fatal (abandon the stream).
// Partial and oversized frames are fatal; a single undecodable payload is
// not, since framing is still aligned.
func (e *FrameError) IsFatal() bool {
	return e.Kind == FrameErrorPartial || e.Kind == FrameErrorTooLarge
}

// IsFatalFrameError returns true if the error is a fatal frame error.
func IsFatalFrameError(err error) bool {
	var frameErr *FrameError
	if errors.As(err, &frameErr) {
		return frameErr.IsFatal()
	}
	return false
}

// Encoder writes length-prefixed msgpack frames.
type Encoder struct {
	writer io.Writer
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// WriteProgress writes one progress frame from a pipeline event.
func (e *Encoder) WriteProgress(ev types.ProgressEvent) error {
	return e.write(&ProgressFrame{
		Type:      ProgressType,
		ExportID:  ev.ExportID,
		Completed: ev.Completed,
		Total:     ev.Total,
		Tier:      string(ev.Tier),
	})
}

// WriteResult writes the terminal result frame.
func (e *Encoder) WriteResult(frame *ResultFrame) error {
	frame.Type = ResultType
	if frame.Version == "" {
		frame.Version = types.Version
	}
	return e.write(frame)
}

func (e *Encoder) write(v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("encode frame: payload %d exceeds maximum %d", len(payload), MaxPayloadSize)
	}

	var lengthBuf [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(payload)))
	if _, err := e.writer.Write(lengthBuf[:]); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if _, err := e.writer.Write(payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Decoder reads length-prefixed msgpack frames from a stream.
type Decoder struct {
	reader io.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: r}
}

// ReadFrame reads a single raw payload from the stream.
//
// Errors:
//   - io.EOF: stream ended cleanly (no more frames)
//   - *FrameError with Kind=FrameErrorPartial: incomplete frame (fatal)
//   - *FrameError with Kind=FrameErrorTooLarge: frame exceeds limit (fatal)
func (d *Decoder) ReadFrame() ([]byte, error) {
	var lengthBuf [LengthPrefixSize]byte
	_, err := io.ReadFull(d.reader, lengthBuf[:])
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read length prefix",
			Err:  err,
		}
	}

	payloadSize := binary.BigEndian.Uint32(lengthBuf[:])
	if payloadSize > MaxPayloadSize {
		return nil, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", payloadSize, MaxPayloadSize),
		}
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(d.reader, payload); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read payload",
			Err:  err,
		}
	}
	return payload, nil
}

// frameTypeProbe peeks at the type field without full decode.
type frameTypeProbe struct {
	Type string `msgpack:"type"`
}

// DecodeFrame decodes a payload into a *ProgressFrame or *ResultFrame.
func DecodeFrame(payload []byte) (any, error) {
	var probe frameTypeProbe
	if err := msgpack.Unmarshal(payload, &probe); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode frame type",
			Err:  err,
		}
	}

	switch probe.Type {
	case ProgressType:
		var frame ProgressFrame
		if err := msgpack.Unmarshal(payload, &frame); err != nil {
			return nil, &FrameError{
				Kind: FrameErrorDecode,
				Msg:  "failed to decode progress frame",
				Err:  err,
			}
		}
		return &frame, nil
	case ResultType:
		var frame ResultFrame
		if err := msgpack.Unmarshal(payload, &frame); err != nil {
			return nil, &FrameError{
				Kind: FrameErrorDecode,
				Msg:  "failed to decode result frame",
				Err:  err,
			}
		}
		return &frame, nil
	default:
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  fmt.Sprintf("unknown frame type %q", probe.Type),
		}
	}
}
