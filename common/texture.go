package common

import (
	"bytes"
	"image"
	"image/draw"

	// Registered decoders for embedded texture assets.
	_ "image/jpeg"
	_ "image/png"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds decoded RGBA pixel data ready for upload to a GPU texture.
type TextureStagingData struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// SamplerStagingData describes sampler configuration for a texture binding.
// Zero values fall back to the renderer's defaults.
type SamplerStagingData struct {
	AddressModeU  wgpu.AddressMode
	AddressModeV  wgpu.AddressMode
	AddressModeW  wgpu.AddressMode
	MagFilter     wgpu.FilterMode
	MinFilter     wgpu.FilterMode
	MipmapFilter  wgpu.MipmapFilterMode
	LodMinClamp   float32
	LodMaxClamp   float32
	MaxAnisotropy uint16
	Compare       wgpu.CompareFunction
}

// EmbeddedTexture is a compressed image asset bundled into the binary.
type EmbeddedTexture struct {
	Name string
	Data []byte
}

// Decode decodes the embedded image into tightly packed RGBA pixels.
//
// Returns:
//   - TextureStagingData: the decoded pixels with dimensions
//   - error: a decode failure, annotated with the asset name
func (t *EmbeddedTexture) Decode() (TextureStagingData, error) {
	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return TextureStagingData{}, errors.Wrapf(err, "decoding texture %q", t.Name)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
