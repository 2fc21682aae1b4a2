package jabcode

import (
	"github.com/pkg/errors"

	"github.com/jabcode/jabcode/jabcode/interleave"
	"github.com/jabcode/jabcode/jabcode/ldpc"
	"github.com/jabcode/jabcode/jabcode/mask"
	"github.com/jabcode/jabcode/jabcode/matrixbuilder"
	"github.com/jabcode/jabcode/jabcode/metadata"
	"github.com/jabcode/jabcode/jabcode/mode"
	"github.com/jabcode/jabcode/jabcode/raster"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// EncodeConfig carries the encoder's enumerated configuration fields, per spec.md §6.
type EncodeConfig struct {
	ColorNumber          int // {4,8,16,32,64,128,256}; default 8
	SymbolNumber         int // 1..61; default 1
	ModuleSize           int // pixels per module; default 12
	MasterSymbolWidth    int // pixels; overrides ModuleSize when set
	MasterSymbolHeight   int
	SymbolPositions      []int           // position[0] must be 0
	SymbolVersions       []symbol.Version
	SymbolECCLevels      []int // 0 = inherit/default
}

func (c *EncodeConfig) applyDefaults() {
	if c.ColorNumber == 0 {
		c.ColorNumber = 8
	}
	if c.SymbolNumber == 0 {
		c.SymbolNumber = 1
	}
	if c.ModuleSize == 0 {
		c.ModuleSize = 12
	}
	if len(c.SymbolPositions) == 0 {
		c.SymbolPositions = []int{0}
	}
	if len(c.SymbolECCLevels) < len(c.SymbolPositions) {
		levels := make([]int, len(c.SymbolPositions))
		copy(levels, c.SymbolECCLevels)
		c.SymbolECCLevels = levels
	}
}

// Encode renders payload into a rasterized color-module Bitmap, per spec.md §2's encoder
// pipeline.
func Encode(payload []byte, cfg EncodeConfig) (*Bitmap, error) {
	cfg.applyDefaults()
	if len(payload) == 0 {
		return nil, NewEncodeError(errors.New("no input data"))
	}
	if cfg.SymbolPositions[0] != 0 {
		return nil, NewEncodeError(errors.New("symbol_positions[0] must be 0"))
	}

	steps := mode.Plan(payload)
	payloadBits := mode.Encode(steps)

	n := len(cfg.SymbolPositions)
	var dockPlan *symbol.DockPlan
	versions := make([]symbol.Version, n)
	eccLevels := append([]int(nil), cfg.SymbolECCLevels...)

	if n == 1 {
		dockPlan = &symbol.DockPlan{Positions: []int{0}, Host: []int{0}, Slaves: [][4]int{{0, 0, 0, 0}}}
		ver, wcwr, level, err := symbol.SetMasterVersion(cfg.ColorNumber, eccLevels[0], len(payloadBits))
		if err != nil {
			return nil, NewEncodeError(err)
		}
		_ = wcwr
		versions[0] = ver
		eccLevels[0] = level
	} else {
		plan, err := symbol.PlanDocking(cfg.SymbolPositions)
		if err != nil {
			return nil, NewEncodeError(err)
		}
		dockPlan = plan
		if len(cfg.SymbolVersions) != n {
			return nil, NewEncodeError(errors.New("symbol_versions must have one entry per symbol"))
		}
		versions = append([]symbol.Version(nil), cfg.SymbolVersions...)

		// A slave's footer (metadata.SlaveFooter) carries no docked_position field of its own,
		// so only the master can signal docked neighbors -- the wire format has no way to
		// represent a slave docked to another slave. Reject such plans here rather than render
		// a bitmap no decoder could ever fully recover.
		for i := 1; i < n; i++ {
			if dockPlan.Host[i] != 0 {
				return nil, NewEncodeError(errors.New("symbol: only direct docking to the master is supported (a slave cannot host further slaves)"))
			}
		}
	}

	// FitPayload's share lengths depend on the full ordered set (proportional to total net
	// capacity, remainder absorbed by the last slot), so it is called over the canonical
	// master-then-N,S,W,E order rather than the caller's raw SymbolPositions order: a decoder
	// detects the same N,S,W,E docking directions from the rendered master and must arrive at
	// identical share boundaries to reassemble the payload bitstream.
	order := symbol.CanonicalOrder(dockPlan)
	orderedVersions := make([]symbol.Version, n)
	orderedECC := make([]int, n)
	orderedHost := make([]int, n)
	localIndex := make(map[int]int, n)
	for k, i := range order {
		localIndex[i] = k
	}
	for k, i := range order {
		orderedVersions[k] = versions[i]
		orderedECC[k] = eccLevels[i]
		orderedHost[k] = localIndex[dockPlan.Host[i]]
	}
	orderedShares, orderedWcWr, err := symbol.FitPayload(cfg.ColorNumber, orderedVersions, orderedECC, orderedHost, len(payloadBits))
	if err != nil {
		return nil, NewEncodeError(err)
	}
	shares := make([]int, n)
	wcwrs := make([][2]int, n)
	for k, i := range order {
		shares[i] = orderedShares[k]
		wcwrs[i] = orderedWcWr[k]
	}

	syms := make([]*symbol.Symbol, n)
	for i := range syms {
		sym := symbol.NewSymbol(i, versions[i])
		sym.HostIndex = dockPlan.Host[i]
		sym.SlaveIndices = dockPlan.Slaves[i]
		sym.WcWr = wcwrs[i]
		if eccLevels[i] == 0 {
			eccLevels[i] = symbol.DefaultECCLevel
		}
		syms[i] = sym
	}

	isDefault := symbol.IsDefaultMode(cfg.ColorNumber, eccLevels[0])

	offset := 0
	for _, i := range order {
		sym := syms[i]
		share := payloadBits[offset : offset+shares[i]]
		offset += shares[i]

		var footer []byte
		if i == 0 {
			footer = append([]byte{1}, dockedPositionBits(dockedBitmap(dockPlan, 0))...)
		} else {
			host := dockPlan.Host[i]
			f := metadata.SlaveFooter{
				SameVersion: versions[i] == versions[host],
				SameECC:     wcwrs[i] == wcwrs[host],
				Version:     versions[i].X,
				Wc:          wcwrs[i][0],
				Wr:          wcwrs[i][1],
			}
			footer = append([]byte{1}, f.Encode()...)
		}

		// Footer precedes the payload share so the decoder can parse it at a known offset
		// (0) before it knows where the share ends -- mode.Decode has no length prefix of
		// its own and simply consumes whatever bits remain.
		msg := make([]byte, 0, len(footer)+len(share))
		msg = append(msg, footer...)
		msg = append(msg, share...)

		ldpcEncoded, err := ldpc.Encode(msg, sym.WcWr[0], sym.WcWr[1], ldpc.MessageSeed)
		if err != nil {
			return nil, NewEncodeError(err)
		}
		sym.Payload = msg
		sym.Data = interleave.Interleave(ldpcEncoded)
	}

	palettes := make([]*Palette, n)
	for i := range syms {
		palettes[i] = NewPalette(cfg.ColorNumber)
	}

	master := syms[0]
	nc := symbol.BitsPerModule(cfg.ColorNumber) - 1
	var partI, partII []byte
	buildMetadata := func(maskType int) {
		partIbits := metadata.EncodePartI(nc)
		partI, _ = ldpc.Encode(partIbits, metadata.Wc(len(partIbits)), 0, ldpc.MetadataSeed)
		partIIraw := metadata.EncodePartII(metadata.PartII{
			MaskType:       maskType,
			DockedPosition: dockedBitmap(dockPlan, 0),
			Wc:             master.WcWr[0],
			Wr:             master.WcWr[1],
		})
		partII, _ = ldpc.Encode(partIIraw, metadata.Wc(len(partIIraw)), 0, ldpc.MetadataSeed)
	}
	if !isDefault {
		buildMetadata(mask.DefaultMaskingReference)
	}

	for _, sym := range syms {
		if sym.IsMaster() {
			matrixbuilder.Build(sym, cfg.ColorNumber, partI, partII, isDefault, sym.Data)
		} else {
			matrixbuilder.Build(sym, cfg.ColorNumber, nil, nil, isDefault, sym.Data)
		}
	}

	chosenMask := mask.SelectAndApplyAll(syms, cfg.ColorNumber)

	if !isDefault && chosenMask != mask.DefaultMaskingReference {
		buildMetadata(chosenMask)
		// Rewrites only the metadata/palette modules the snake cursor visits; data modules
		// (already masked above) are untouched since they are never data_map==false.
		matrixbuilder.PlaceMasterMetadataAndPalette(master, cfg.ColorNumber, partI, partII, false)
	}

	layout := raster.PlaceSymbols(syms, dockPlan)
	moduleSize := resolveModuleSize(cfg, layout)
	bmp := raster.Render(syms, palettes, moduleSize, layout)
	return bmp, nil
}

func resolveModuleSize(cfg EncodeConfig, layout raster.Layout) int {
	widthModules := layout.WidthModules + 2*raster.QuietZoneModules
	heightModules := layout.HeightModules + 2*raster.QuietZoneModules
	if cfg.MasterSymbolWidth > 0 || cfg.MasterSymbolHeight > 0 {
		best := 0
		if cfg.MasterSymbolWidth > 0 {
			if s := cfg.MasterSymbolWidth / widthModules; s > best {
				best = s
			}
		}
		if cfg.MasterSymbolHeight > 0 {
			if s := cfg.MasterSymbolHeight / heightModules; s > best {
				best = s
			}
		}
		if best > 0 {
			return best
		}
	}
	return cfg.ModuleSize
}

func dockedBitmap(plan *symbol.DockPlan, index int) int {
	bits := 0
	for dir, bit := range []int{symbol.DockNorth, symbol.DockSouth, symbol.DockWest, symbol.DockEast} {
		if plan.Slaves[index][dir] != 0 {
			bits |= bit
		}
	}
	return bits
}

func dockedPositionBits(bitmap int) []byte {
	out := make([]byte, 4)
	for i := 0; i < 4; i++ {
		out[i] = byte((bitmap >> (3 - i)) & 1)
	}
	return out
}
