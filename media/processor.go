package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"math"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"

	// register the decoders image.DecodeConfig relies on
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	ThumbnailJpegQuality   = 90
	ThumbnailFileExtension = ".jpg"
)

// Processor handles media transformations like thumbnailing and probing
// uploaded images. It relies on a Store implementation for persistence.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// ProbeImage reads pixel dimensions and, when present, the EXIF capture
// timestamp from raw image bytes. EXIF failures are not errors; many
// uploads carry no metadata.
func (p *Processor) ProbeImage(data []byte) (Probe, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Probe{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	probe := Probe{Width: cfg.Width, Height: cfg.Height}

	if exifData, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if takenAt, err := exifData.DateTime(); err == nil {
			unix := takenAt.Unix()
			probe.TakenAt = &unix
		}
	}
	return probe, nil
}

// GenerateThumbnail creates a thumbnail where the longest side matches
// maxSize and saves it through the Store under a UUID name. Returns the
// relative path of the saved thumbnail.
func (p *Processor) GenerateThumbnail(data []byte, originalRelPath string, maxSize int) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image for thumbnailing: %w", err)
	}

	bounds := img.Bounds()
	origWidth, origHeight := bounds.Dx(), bounds.Dy()
	if origWidth <= 0 || origHeight <= 0 {
		return "", fmt.Errorf("invalid original image dimensions: %dx%d", origWidth, origHeight)
	}

	newWidth, newHeight := origWidth, origHeight
	if origWidth >= origHeight && origWidth > maxSize {
		newWidth = maxSize
		newHeight = int(math.Round(float64(origHeight) * (float64(maxSize) / float64(origWidth))))
	} else if origHeight > origWidth && origHeight > maxSize {
		newHeight = maxSize
		newWidth = int(math.Round(float64(origWidth) * (float64(maxSize) / float64(origHeight))))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	thumb := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	reader, writer := io.Pipe()
	go func() {
		err := imaging.Encode(writer, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailJpegQuality))
		if err != nil {
			log.Printf("processor: Failed to encode thumbnail: %v", err)
			writer.CloseWithError(fmt.Errorf("thumbnail encoding failed: %w", err))
			return
		}
		writer.Close()
	}()

	targetFilename := uuid.NewString() + ThumbnailFileExtension
	savedRelPath, err := p.store.Save(AssetTypeThumbnail, targetFilename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to save thumbnail via store: %w", err)
	}

	log.Printf("processor: Generated and saved thumbnail for %s at %s", originalRelPath, savedRelPath)
	return savedRelPath, nil
}
