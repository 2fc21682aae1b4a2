package classify

import (
	"github.com/pkg/errors"

	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/detect"
	"github.com/jabcode/jabcode/jabcode/interleave"
	"github.com/jabcode/jabcode/jabcode/ldpc"
	"github.com/jabcode/jabcode/jabcode/mask"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/metadata"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// ErrMetadata signals the master's Part I LDPC block failed to decode to a plausible Nc value.
var ErrMetadata = errors.New("classify: could not recover master metadata")

// ReadMasterMetadata walks the master's metadata snake directly against bmp (not an already
// classified module matrix): Part I is sampled and classified against the fixed 8-color reference
// palette regardless of the symbol's actual color_number, since color_number itself is only known
// once Part I decodes (spec.md §9 Open Question; decodeModuleNc enforces value in {0,3,6}). Once
// Nc is known, the palette region is skipped (cursor-advanced only, never read -- this port
// trusts the canonical reconstructed palette over re-reading placed swatches, see DESIGN.md) and
// Part II is sampled against the real color_number palette, per
// getMetadata/readColorPaletteInMaster in decoder.c.
func ReadMasterMetadata(bmp *colorspace.Bitmap, frame detect.Frame) (colorNumber int, partII metadata.PartII, err error) {
	x, y := matrixbuilder.MasterMetadataX, matrixbuilder.MasterMetadataY
	moduleCount := 0
	advance := func() {
		moduleCount++
		matrixbuilder.NextMetadataModuleInMaster(frame.HeightModules, frame.WidthModules, moduleCount, &x, &y)
	}
	sampleAt := func(palette []colorspace.RGB) int {
		px, py := frame.ModuleCenter(x, y)
		r, g, b, _ := bmp.At(clampToBitmap(int(px+0.5), bmp.Width), clampToBitmap(int(py+0.5), bmp.Height))
		return NearestColor(r, g, b, palette)
	}

	codeword := make([]byte, 0, symbol.MasterMetadataPart1Length)
	for i := 0; i < 2; i++ {
		c1 := sampleAt(colorspace.DefaultPalette8[:])
		advance()
		c2 := sampleAt(colorspace.DefaultPalette8[:])
		advance()
		val, ok := matchNc(c1, c2)
		if !ok {
			return 0, metadata.PartII{}, ErrMetadata
		}
		codeword = append(codeword, byte(val>>2&1), byte(val>>1&1), byte(val&1))
	}

	msg, err := ldpc.DecodeHard(codeword, metadata.Wc(metadata.PartILength), 0, ldpc.MetadataSeed)
	if err != nil {
		return 0, metadata.PartII{}, errors.Wrap(ErrMetadata, err.Error())
	}
	nc := metadata.DecodePartI(msg)
	bpm := nc + 1
	colorNumber = 1 << uint(bpm)
	palette := colorspace.NewPalette(colorNumber).Colors

	upper := colorNumber
	if upper > 64 {
		upper = 64
	}
	for i := 2; i < upper; i++ {
		for corner := 0; corner < symbol.ColorPaletteNumber; corner++ {
			advance()
		}
	}

	partIIcodeword := make([]byte, 0, symbol.MasterMetadataPart2Length)
	for len(partIIcodeword) < symbol.MasterMetadataPart2Length {
		v := sampleAt(palette)
		for j := bpm - 1; j >= 0 && len(partIIcodeword) < symbol.MasterMetadataPart2Length; j-- {
			partIIcodeword = append(partIIcodeword, byte((v>>uint(j))&1))
		}
		advance()
	}
	msg2, err := ldpc.DecodeHard(partIIcodeword, metadata.Wc(metadata.PartIILength), 0, ldpc.MetadataSeed)
	if err != nil {
		return colorNumber, metadata.PartII{}, errors.Wrap(ErrMetadata, err.Error())
	}
	return colorNumber, metadata.DecodePartII(msg2), nil
}

func clampToBitmap(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

// matchNc finds the NcColorEncodeTable row whose two canonical colors equal (c1, c2).
func matchNc(c1, c2 int) (int, bool) {
	for val, pair := range symbol.NcColorEncodeTable {
		if pair[0] == c1 && pair[1] == c2 {
			return val, true
		}
	}
	return 0, false
}

// DecodeSymbolData reverses mask, interleave, and LDPC protection for sym's already-sampled and
// classified module matrix, returning the recovered message bits (payload share plus footer),
// per demaskSymbol/decodeSymbol in decoder.c.
func DecodeSymbolData(sym *symbol.Symbol, colorNumber, maskType int) ([]byte, error) {
	raw := GatherDataModules(sym.ModuleMatrix, sym.DataMap)
	mask.Demask(raw, sym.DataMap, maskType, colorNumber)
	bits := ExpandBits(raw, colorNumber)
	deinterleaved := interleave.Deinterleave(bits)
	return ldpc.DecodeHard(deinterleaved, sym.WcWr[0], sym.WcWr[1], ldpc.MessageSeed)
}

// FooterFlagAndDocking reads a master's decoded message from its start: bits[0] must be the 1-bit
// flag, and the 4 bits after it are the docking field, per the "Metadata footer" parse in spec.md
// §4.9. Returns the docking bitmap and the position immediately after it.
func FooterFlagAndDocking(bits []byte) (dockedPosition int, pos int, err error) {
	if len(bits) < 5 {
		return 0, 0, errors.New("classify: message too short for master footer")
	}
	if bits[0] != 1 {
		return 0, 0, errors.New("classify: missing master footer flag")
	}
	pos = 1
	for i := 0; i < 4; i++ {
		dockedPosition = dockedPosition<<1 | int(bits[pos+i])
	}
	return dockedPosition, pos + 4, nil
}

// SlaveFooterFields reads a slave's decoded message from its start: bits[0] must be the 1-bit flag,
// followed by the SS/SE/V/E footer. It returns the parsed footer and the position immediately after it.
func SlaveFooterFields(bits []byte) (metadata.SlaveFooter, int, error) {
	if len(bits) < 3 || bits[0] != 1 {
		return metadata.SlaveFooter{}, 0, errors.New("classify: missing slave footer flag")
	}
	f, pos, ok := metadata.DecodeSlaveFooter(bits, 1)
	if !ok {
		return metadata.SlaveFooter{}, 0, errors.New("classify: truncated slave footer")
	}
	return f, pos, nil
}
