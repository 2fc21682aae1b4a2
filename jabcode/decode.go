package jabcode

import (
	"github.com/pkg/errors"

	"github.com/jabcode/jabcode/jabcode/classify"
	"github.com/jabcode/jabcode/jabcode/detect"
	"github.com/jabcode/jabcode/jabcode/mask"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/mode"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// defaultModeColorNumber, defaultModeWcWr are the values a decoder must assume when the master's
// metadata cannot be decoded, per spec.md §4.2's "default mode" contract: color_number=8,
// mask=DEFAULT(0), ecl=DefaultECCLevel.
const defaultModeColorNumber = 8

var defaultModeWcWr = symbol.ECCLevelWcWr[symbol.DefaultECCLevel]

// dockingDirections is the canonical N,S,W,E order symbol.CanonicalOrder's encode-side walk
// uses: a decoder must reassemble docked slaves' payload shares in this same order, since it is
// the only ordering a decoder can derive purely from the image (the master's detected docking
// bitmap), independent of the caller's original SymbolPositions argument order.
var dockingDirections = [4]int{symbol.DockNorth, symbol.DockSouth, symbol.DockWest, symbol.DockEast}

// Decode recovers the original payload from a rasterized Bitmap produced by Encode, per
// spec.md §2's decoder pipeline: detect, classify, demask/deinterleave/LDPC-decode, then adaptive
// mode decode. Docked slaves (spec.md §8 scenario 3) are located and decoded in the same
// master-then-N,S,W,E canonical order Encode used to split the payload across symbols.
func Decode(bmp *Bitmap) ([]byte, error) {
	if err := bmp.Validate(); err != nil {
		return nil, NewFatalError(err)
	}

	frame, err := detect.LocateFrame(bmp)
	if err != nil {
		return nil, NewDetectError(err)
	}

	version, err := resolveVersion(frame)
	if err != nil {
		return nil, NewDetectError(err)
	}

	colorNumber, partII, metaErr := classify.ReadMasterMetadata(bmp, frame)
	isDefault := metaErr != nil
	var maskType, wc, wr int
	if isDefault {
		colorNumber = defaultModeColorNumber
		maskType = mask.DefaultMaskingReference
		wc, wr = defaultModeWcWr[0], defaultModeWcWr[1]
	} else {
		maskType = partII.MaskType
		wc, wr = partII.Wc, partII.Wr
	}

	dataMap := matrixbuilder.ReservedMap(0, version, colorNumber, isDefault)

	palette := NewPalette(colorNumber).Colors
	grid := detect.Sample(bmp, frame, func(r, g, b byte) int {
		return classify.NearestColor(r, g, b, palette)
	})

	sym := symbol.NewSymbol(0, version)
	sym.ModuleMatrix = grid.Values
	sym.DataMap = dataMap
	sym.WcWr = [2]int{wc, wr}

	msg, err := classify.DecodeSymbolData(sym, colorNumber, maskType)
	if err != nil {
		return nil, NewDataError(err)
	}

	dockedPosition, pos, err := classify.FooterFlagAndDocking(msg)
	if err != nil {
		return nil, NewMetadataError(err)
	}

	payloadBits := append([]byte(nil), msg[pos:]...)
	for _, dir := range dockingDirections {
		if dockedPosition&dir == 0 {
			continue
		}
		slaveBits, err := decodeDockedSlave(bmp, frame, colorNumber, [2]int{wc, wr}, maskType, dir)
		if err != nil {
			return nil, NewDetectError(err)
		}
		payloadBits = append(payloadBits, slaveBits...)
	}

	return mode.Decode(payloadBits), nil
}

// decodeDockedSlave locates, samples, and decodes the slave docked in the given direction,
// returning its payload share with its own footer already stripped off.
//
// A slave's LDPC (wc,wr) is whatever Encode assigned it via FitPayload, which need not match the
// host's -- but that pair is only recoverable by decoding the slave's own message, and decoding
// needs (wc,wr) first. This decoder breaks that circularity by assuming SameECC: it decodes with
// the host's (wc,wr), matching Encode's common case of one ECC level shared by every symbol in a
// docked set. metadata.SlaveFooter's own SameECC/Wc/Wr fields remain available for a caller that
// already knows a mismatched configuration and wants to verify it, but are not consulted here.
// The mask type is not assumed this way: mask.SelectAndApplyAll always applies one chosen mask
// across every symbol in a docked set (a slave's footer carries no mask field of its own), so the
// host's actual maskType is exact, not a guess.
func decodeDockedSlave(bmp *Bitmap, host detect.Frame, hostColorNumber int, hostWcWr [2]int, maskType int, direction int) ([]byte, error) {
	slaveFrame, err := detect.DetectSlave(bmp, host.Bounds, host.ModuleSize, direction)
	if err != nil {
		return nil, err
	}
	version, err := resolveVersion(slaveFrame)
	if err != nil {
		return nil, err
	}

	// index=1 only needs to be nonzero: ReservedMap's isDefaultMode argument is consulted solely
	// on the index==0 (master) branch, so its value here is irrelevant to a slave's reserved map.
	dataMap := matrixbuilder.ReservedMap(1, version, hostColorNumber, true)
	palette := NewPalette(hostColorNumber).Colors
	grid := detect.Sample(bmp, slaveFrame, func(r, g, b byte) int {
		return classify.NearestColor(r, g, b, palette)
	})

	sym := symbol.NewSymbol(1, version)
	sym.ModuleMatrix = grid.Values
	sym.DataMap = dataMap
	sym.WcWr = hostWcWr

	msg, err := classify.DecodeSymbolData(sym, hostColorNumber, maskType)
	if err != nil {
		return nil, errors.Wrap(err, "decode docked slave")
	}

	_, pos, err := classify.SlaveFooterFields(msg)
	if err != nil {
		return nil, err
	}
	return msg[pos:], nil
}

// resolveVersion infers the master's per-axis side version from the sampled module grid
// dimensions, inverting SideSize (sx = 4v+17).
func resolveVersion(frame detect.Frame) (symbol.Version, error) {
	vx, okx := inferVersion(frame.WidthModules)
	vy, oky := inferVersion(frame.HeightModules)
	if !okx || !oky {
		return symbol.Version{}, errors.Errorf("sampled grid %dx%d does not match any valid symbol version", frame.WidthModules, frame.HeightModules)
	}
	return symbol.Version{X: vx, Y: vy}, nil
}

func inferVersion(sideModules int) (int, bool) {
	v := (sideModules - 17) / 4
	if v < 1 || v > 32 || symbol.SideSize(v) != sideModules {
		return 0, false
	}
	return v, true
}
