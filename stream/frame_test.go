package stream

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/flightdeck-io/flightdeck/types"
)

func TestRoundTrip_ProgressAndResult(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	events := []types.ProgressEvent{
		{ExportID: "e1", Completed: 1, Total: 7, Tier: types.TierFastest},
		{ExportID: "e1", Completed: 2, Total: 7, Tier: types.TierFastest},
	}
	for _, ev := range events {
		if err := enc.WriteProgress(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.WriteResult(&ResultFrame{
		ExportID:   "e1",
		Status:     "completed",
		SizeBytes:  1234,
		FrameCount: 7,
		DurationMs: 250,
	}); err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder(&buf)
	for i, want := range events {
		payload, err := dec.ReadFrame()
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := DecodeFrame(payload)
		if err != nil {
			t.Fatal(err)
		}
		frame, ok := decoded.(*ProgressFrame)
		if !ok {
			t.Fatalf("frame %d: got %T", i, decoded)
		}
		if frame.Completed != want.Completed || frame.Total != 7 || frame.Tier != "fastest" {
			t.Errorf("frame %d = %+v", i, frame)
		}
	}

	payload, err := dec.ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeFrame(payload)
	if err != nil {
		t.Fatal(err)
	}
	result, ok := decoded.(*ResultFrame)
	if !ok {
		t.Fatalf("got %T, want *ResultFrame", decoded)
	}
	if result.Status != "completed" || result.FrameCount != 7 {
		t.Errorf("result = %+v", result)
	}
	if result.Version != types.Version {
		t.Errorf("version = %q, want %q", result.Version, types.Version)
	}

	if _, err := dec.ReadFrame(); err != io.EOF {
		t.Errorf("expected clean EOF, got %v", err)
	}
}

func TestDecoder_TruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	var lengthBuf [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBuf[:], 100)
	buf.Write(lengthBuf[:])
	buf.WriteString("short")

	_, err := NewDecoder(&buf).ReadFrame()
	if !IsFatalFrameError(err) {
		t.Errorf("truncated payload should be fatal, got %v", err)
	}
}

func TestDecoder_OversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	var lengthBuf [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBuf[:], MaxPayloadSize+1)
	buf.Write(lengthBuf[:])

	_, err := NewDecoder(&buf).ReadFrame()
	if !IsFatalFrameError(err) {
		t.Errorf("oversized frame should be fatal, got %v", err)
	}
}

func TestDecodeFrame_UnknownType(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.write(map[string]string{"type": "mystery"}); err != nil {
		t.Fatal(err)
	}

	payload, err := NewDecoder(&buf).ReadFrame()
	if err != nil {
		t.Fatal(err)
	}

	_, err = DecodeFrame(payload)
	if err == nil {
		t.Fatal("expected error for unknown frame type")
	}
	if IsFatalFrameError(err) {
		t.Error("decode errors on aligned frames are not fatal")
	}
}
