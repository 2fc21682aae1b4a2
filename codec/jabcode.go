package codec

import (
	"github.com/jabcode/jabcode/jabcode"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

var _ Codec = (*JABCodeCodec)(nil)

// JABCodeCodec implements the Codec interface for the JABCode polychrome matrix symbology.
type JABCodeCodec struct{}

// NewJABCodeCodec creates a new JABCode codec.
func NewJABCodeCodec() *JABCodeCodec {
	return &JABCodeCodec{}
}

// UID returns the unique identifier of the symbology.
func (c *JABCodeCodec) UID() string {
	return "org.jabcode"
}

// Name returns a human-readable name.
func (c *JABCodeCodec) Name() string {
	return "JABCode"
}

// JABCodeOptions carries the encoder's enumerated configuration fields.
type JABCodeOptions struct {
	ColorNumber        int
	SymbolNumber       int
	ModuleSize         int
	MasterSymbolWidth  int
	MasterSymbolHeight int
	SymbolPositions    []int
	SymbolVersions     []symbol.Version
	SymbolECCLevels    []int
}

// Validate checks that the options describe a representable configuration.
func (o *JABCodeOptions) Validate() error {
	if o.ColorNumber != 0 {
		switch o.ColorNumber {
		case 4, 8, 16, 32, 64, 128, 256:
		default:
			return ErrInvalidParameter
		}
	}
	if len(o.SymbolPositions) > 0 && o.SymbolPositions[0] != 0 {
		return ErrInvalidParameter
	}
	return nil
}

func (o *JABCodeOptions) toConfig() jabcode.EncodeConfig {
	if o == nil {
		return jabcode.EncodeConfig{}
	}
	return jabcode.EncodeConfig{
		ColorNumber:        o.ColorNumber,
		SymbolNumber:       o.SymbolNumber,
		ModuleSize:         o.ModuleSize,
		MasterSymbolWidth:  o.MasterSymbolWidth,
		MasterSymbolHeight: o.MasterSymbolHeight,
		SymbolPositions:    o.SymbolPositions,
		SymbolVersions:     o.SymbolVersions,
		SymbolECCLevels:    o.SymbolECCLevels,
	}
}

// Encode renders params.Data into a JABCode bitmap.
func (c *JABCodeCodec) Encode(params EncodeParams) (*jabcode.Bitmap, error) {
	if len(params.Data) == 0 {
		return nil, ErrNoData
	}
	opts, _ := params.Options.(*JABCodeOptions)
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
	}
	return jabcode.Encode(params.Data, opts.toConfig())
}

// Decode recovers a payload from a captured JABCode bitmap. CompatibleDecode mode is not
// meaningful for this symbology's single-pass LDPC data layer, so it behaves like NormalDecode.
func (c *JABCodeCodec) Decode(bitmap *jabcode.Bitmap, opts DecodeOptions) (*DecodeResult, error) {
	data, err := jabcode.Decode(bitmap)
	if err != nil {
		if _, ok := err.(*jabcode.DetectError); ok {
			return &DecodeResult{Status: NotDetectable}, err
		}
		return &DecodeResult{Status: NotDecodable}, err
	}
	return &DecodeResult{Data: data, Status: FullyDecoded}, nil
}

func init() {
	Register(NewJABCodeCodec())
}
