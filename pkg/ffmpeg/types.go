package ffmpeg

// VideoMetadata represents metadata extracted from a video file
type VideoMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	Size       int64   `json:"size"`        // File size in bytes
	Bitrate    int     `json:"bitrate"`     // Bitrate in bits per second
	Format     string  `json:"format"`      // Container format (mov,mp4,...)
	VideoCodec string  `json:"video_codec"` // First video stream codec
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameRate  float64 `json:"frame_rate"`
	AudioCodec string  `json:"audio_codec"` // First audio stream codec
	SampleRate int     `json:"sample_rate"` // Sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
}

// HasVideo reports whether a video stream was found
func (m *VideoMetadata) HasVideo() bool {
	return m.VideoCodec != ""
}

// HasAudio reports whether an audio stream was found
func (m *VideoMetadata) HasAudio() bool {
	return m.AudioCodec != ""
}

// EncodeOptions controls how cut fragments are re-encoded
type EncodeOptions struct {
	VideoCodec string `json:"video_codec"`
	AudioCodec string `json:"audio_codec"`
	Preset     string `json:"preset"`
	CRF        int    `json:"crf"` // 0 leaves the encoder default
}

// DefaultEncodeOptions returns the encoder settings used for fragments
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		VideoCodec: "libx264",
		AudioCodec: "aac",
		Preset:     "veryfast",
		CRF:        23,
	}
}

// CutOptions describes a single segment extraction
type CutOptions struct {
	Input    string  // Source video
	Output   string  // Destination file, overwritten if present
	Start    float64 // Seek offset in seconds
	Duration float64 // Segment length in seconds
	Encode   EncodeOptions
}

// CaptureOptions describes a live capture from local devices
type CaptureOptions struct {
	Format      string // Input format: avfoundation, dshow, v4l2
	Input       string // Device selector passed to -i
	AudioFormat string // Optional second input format (alsa on linux)
	AudioInput  string
	VideoSize   string // WIDTHxHEIGHT
	FrameRate   int
	VideoCodec  string
	AudioCodec  string
	Output      string
}
