package types

// ArtifactFormat identifies the encoded animation container.
type ArtifactFormat string

// FormatGIF is the only format currently produced: every browser renders
// animated GIFs without extra tooling.
const FormatGIF ArtifactFormat = "gif"

// AnimatedArtifact is the final encoded animation.
// Immutable once produced; ownership transfers to the caller.
type AnimatedArtifact struct {
	// Data is the encoded byte sequence.
	Data []byte `json:"-"`
	// SizeBytes is len(Data), kept separately for display and events.
	SizeBytes int64 `json:"size_bytes"`
	// FrameCount is the number of frames assembled into the artifact.
	FrameCount int `json:"frame_count"`
	// Format is the container format.
	Format ArtifactFormat `json:"format"`
	// Tier is the quality tier the artifact was produced under.
	Tier QualityTier `json:"tier"`
}
