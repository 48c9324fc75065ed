package utils

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

// Uploads above this many pixels are refused before decoding
const maxSourcePixels = 50_000_000

var ErrImageTooLarge = errors.New("image is too large")

// PostImage describes a normalized post image
type PostImage struct {
	Format       string // format of the upload: jpeg, png or gif
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
	Bytes        int64
}

// NormalizePostImage writes the upload as a JPEG that fits into maxSide x maxSide.
// Smaller images keep their size
func NormalizePostImage(maxSide uint, reader io.Reader, writer io.Writer) (result PostImage, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return result, err
	}
	header, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return result, err
	}
	if header.Width*header.Height > maxSourcePixels {
		return result, ErrImageTooLarge
	}
	source, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return result, err
	}
	scaled := resize.Thumbnail(maxSide, maxSide, source, resize.Lanczos3)

	var out bytes.Buffer
	if err = jpeg.Encode(&out, scaled, &jpeg.Options{Quality: 90}); err != nil {
		return result, err
	}
	size := scaled.Bounds().Size()
	result = PostImage{
		Format:       format,
		Width:        size.X,
		Height:       size.Y,
		SourceWidth:  header.Width,
		SourceHeight: header.Height,
	}
	result.Bytes, err = io.Copy(writer, &out)
	return
}
