package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/flightdeck-io/flightdeck/types"
)

func testArtifact() *types.AnimatedArtifact {
	data := []byte("GIF89a-test-bytes")
	return &types.AnimatedArtifact{
		Data:       data,
		SizeBytes:  int64(len(data)),
		FrameCount: 3,
		Format:     types.FormatGIF,
		Tier:       types.TierFastest,
	}
}

func TestFSStore_Put(t *testing.T) {
	root := t.TempDir()
	s, err := NewFSStore(root)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	path, err := s.Put(context.Background(), "flight-a/export-1.gif", testArtifact())
	if err != nil {
		t.Fatal(err)
	}

	if path != filepath.Join(root, "flight-a", "export-1.gif") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "GIF89a-test-bytes" {
		t.Errorf("written data = %q", data)
	}
}

func TestFSStore_EmptyRoot(t *testing.T) {
	if _, err := NewFSStore(""); err == nil {
		t.Error("expected error for empty root")
	}
}

func TestFSStore_CancelledContext(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Put(ctx, "x.gif", testArtifact()); err == nil {
		t.Error("expected context error")
	}
}

func TestArtifactKey(t *testing.T) {
	meta := &types.ExportMeta{ExportID: "abc", Tier: types.TierHigh, Dataset: "flight-7"}
	if key := ArtifactKey(meta, types.FormatGIF); key != filepath.Join("flight-7", "abc.gif") {
		t.Errorf("key = %q", key)
	}

	meta.Dataset = ""
	if key := ArtifactKey(meta, types.FormatGIF); key != "abc.gif" {
		t.Errorf("key = %q", key)
	}
}

// fakeS3 records PutObject calls.
type fakeS3 struct {
	bucket string
	key    string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = *params.Bucket
	f.key = *params.Key
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	s, err := NewS3StoreWithClient(fake, S3Config{Bucket: "exports", Prefix: "charts"})
	if err != nil {
		t.Fatal(err)
	}

	path, err := s.Put(context.Background(), "flight/abc.gif", testArtifact())
	if err != nil {
		t.Fatal(err)
	}

	if fake.bucket != "exports" || fake.key != "charts/flight/abc.gif" {
		t.Errorf("put to %s/%s", fake.bucket, fake.key)
	}
	if path != "s3://exports/charts/flight/abc.gif" {
		t.Errorf("path = %q", path)
	}
}

func TestS3Store_RequiresBucket(t *testing.T) {
	if _, err := NewS3StoreWithClient(&fakeS3{}, S3Config{}); err == nil {
		t.Error("expected error for missing bucket")
	}
}

func TestS3Store_WriteErrorClassified(t *testing.T) {
	fake := &fakeS3{err: fmt.Errorf("api error AccessDenied: Forbidden")}
	s, err := NewS3StoreWithClient(fake, S3Config{Bucket: "exports"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Put(context.Background(), "x.gif", testArtifact())
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestParseS3Path(t *testing.T) {
	bucket, prefix := ParseS3Path("exports/charts/daily")
	if bucket != "exports" || prefix != "charts/daily" {
		t.Errorf("got %q / %q", bucket, prefix)
	}

	bucket, prefix = ParseS3Path("exports")
	if bucket != "exports" || prefix != "" {
		t.Errorf("got %q / %q", bucket, prefix)
	}
}

func TestClassifyError(t *testing.T) {
	for _, tc := range []struct {
		msg  string
		want error
	}{
		{"open /x: no such file or directory", ErrNotFound},
		{"write /x: no space left on device", ErrDiskFull},
		{"operation error S3: PutObject, SlowDown", ErrThrottled},
		{"dial tcp 10.0.0.1:443: connection refused", ErrNetwork},
		{"NoCredentialProviders: no valid providers", ErrAuth},
	} {
		got := WrapWriteError(errors.New(tc.msg), "p")
		if !errors.Is(got, tc.want) {
			t.Errorf("classify(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}
