// Package jabcode implements the JABCode core codec: an adaptive mode encoder, an LDPC error
// correction layer, a color module-matrix builder and mask selector, and an image detector and
// sampler that recovers a payload from a photographed symbol.
package jabcode

import "github.com/jabcode/jabcode/jabcode/colorspace"

// Bitmap is a row-major, top-left-origin RGBA pixel buffer. It is the sole contract between the
// core codec and external pixel I/O (PNG/TIFF decoding, camera capture) which owns the buffer.
//
// Aliased from colorspace so the matrix builder, rasterizer, and detector -- which must not
// import this package, on pain of an import cycle through encode.go/decode.go -- can define and
// hand back the same concrete type.
type Bitmap = colorspace.Bitmap

// BitsPerPixel is the fixed pixel depth of a Bitmap.
const BitsPerPixel = colorspace.BitsPerPixel

// BitsPerChannel is the fixed per-channel depth of a Bitmap.
const BitsPerChannel = colorspace.BitsPerChannel

// ChannelCount is the fixed channel count (R, G, B, A) of a Bitmap.
const ChannelCount = colorspace.ChannelCount

// NewBitmap allocates a Bitmap with alpha pre-filled to 255 (opaque).
func NewBitmap(width, height int) *Bitmap { return colorspace.NewBitmap(width, height) }

// Channel is a single 8-bit-per-pixel plane extracted from a Bitmap.
type Channel = colorspace.Channel

// ChannelIndex selects a color channel of a Bitmap.
type ChannelIndex = colorspace.ChannelIndex

const (
	ChannelRed   = colorspace.ChannelRed
	ChannelGreen = colorspace.ChannelGreen
	ChannelBlue  = colorspace.ChannelBlue
)

// SplitChannels builds three fresh single-channel bitmaps from a Bitmap, one per RGB channel.
func SplitChannels(b *Bitmap) [3]*Channel { return colorspace.SplitChannels(b) }
