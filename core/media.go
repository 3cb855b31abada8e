package core

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoding for DecodeConfig
	_ "image/jpeg" // Register JPEG decoding for DecodeConfig
	_ "image/png"  // Register PNG decoding for DecodeConfig

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// ImageProber extracts pixel dimensions from image entries. Audio and
// video types are accepted but yield no attributes, keeping the prober
// total over all media MIME types.
type ImageProber struct{}

// Compile-time check.
var _ contract.MediaProber = &ImageProber{}

// NewImageProber returns a prober backed by the registered stdlib decoders.
func NewImageProber() *ImageProber {
	return &ImageProber{}
}

// Probe decodes the image header and returns width, height and format.
func (p *ImageProber) Probe(content []byte, mimeType string) (map[string]any, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s header: %w", mimeType, err)
	}
	return map[string]any{
		"width":  cfg.Width,
		"height": cfg.Height,
		"format": format,
	}, nil
}
