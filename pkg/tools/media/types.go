package media

type ImageInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

type CompressionOptions struct {
	Quality   int   `json:"quality"`
	MaxWidth  int   `json:"max_width"`
	MaxHeight int   `json:"max_height"`
	Threshold int64 `json:"threshold"`
}

// DefaultCompressionOptions keeps uploads under Discord's 8 MiB default file limit.
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		Quality:   80,
		MaxWidth:  640,
		MaxHeight: 640,
		Threshold: 8 * 1024 * 1024,
	}
}
