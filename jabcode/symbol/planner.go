package symbol

import (
	"fmt"
	"math"
)

// BitsPerModule returns log2(colorNumber), the number of payload bits one module carries.
func BitsPerModule(colorNumber int) int {
	return int(math.Round(math.Log2(float64(colorNumber))))
}

// IsDefaultMode reports whether the master symbol qualifies for the distinguished
// "default mode" in which its metadata is omitted entirely (spec.md §4.2/§9 glossary).
func IsDefaultMode(colorNumber, masterECCLevel int) bool {
	return colorNumber == 8 && (masterECCLevel == 0 || masterECCLevel == DefaultECCLevel)
}

// MetadataLength returns the (encoded, for the master; net, for a slave) metadata bit length
// for symbol `index`, per getMetadataLength in encoder.c.
func MetadataLength(index int, colorNumber, masterECCLevel int, version, hostVersion Version, eccLevel, hostECCLevel int) int {
	if index == 0 {
		if IsDefaultMode(colorNumber, masterECCLevel) {
			return 0
		}
		return MasterMetadataPart1Length + MasterMetadataPart2Length
	}
	length := 2 // Part I: SS, SE
	if version.X != hostVersion.X || version.Y != hostVersion.Y {
		length += 5 // V
	}
	if eccLevel != hostECCLevel {
		length += 6 // E
	}
	return length
}

// Capacity returns the raw module capacity (in bits) of a symbol of the given version and
// metadata length, per getSymbolCapacity in encoder.c.
func Capacity(colorNumber int, version Version, index int, metadataBits int) int {
	var fpModules int
	if index == 0 {
		fpModules = 4 * 17
	} else {
		fpModules = 4 * 7
	}
	paletteModules := colorNumber - 2
	if colorNumber > 64 {
		paletteModules = 64 - 2
	}
	paletteModules *= ColorPaletteNumber

	apNumX := APNum(version.X)
	apNumY := APNum(version.Y)
	apModules := (apNumX*apNumY - 4) * 7

	bpm := BitsPerModule(colorNumber)
	metadataModules := 0
	if index == 0 && metadataBits > 0 {
		metadataModules = (metadataBits - MasterMetadataPart1Length) / bpm
		if (metadataBits-MasterMetadataPart1Length)%bpm != 0 {
			metadataModules++
		}
		metadataModules += MasterMetadataPart1ModuleNumber
	}

	sx, sy := version.SideSize()
	return (sx*sy - fpModules - apModules - paletteModules - metadataModules) * bpm
}

// NetCapacity returns the usable payload capacity after subtracting LDPC parity overhead for
// the given (wc,wr), per the (capacity/wr)*wr - (capacity/wr)*wc arithmetic used throughout
// encoder.c (net capacity = max gross payload bits the LDPC code can carry at this rate).
func NetCapacity(capacity, wc, wr int) int {
	blocks := capacity / wr
	return blocks*wr - blocks*wc
}

// SetMasterVersion finds the smallest square master version (and, if needed, a lower ECC level)
// whose net capacity fits payloadBits+5 (flag + 4-bit docking field), mirroring
// setMasterSymbolVersion in encoder.c.
func SetMasterVersion(colorNumber, eccLevel, payloadBits int) (version Version, wcwr [2]int, finalECCLevel int, err error) {
	if eccLevel == 0 {
		eccLevel = DefaultECCLevel
	}
	need := payloadBits + 5
	wc, wr := ECCLevelWcWr[eccLevel][0], ECCLevelWcWr[eccLevel][1]

	for v := 1; v <= 32; v++ {
		ver := Version{X: v, Y: v}
		metaBits := 0
		if !IsDefaultMode(colorNumber, eccLevel) {
			metaBits = MasterMetadataPart1Length + MasterMetadataPart2Length
		}
		capacity := Capacity(colorNumber, ver, 0, metaBits)
		if NetCapacity(capacity, wc, wr) >= need {
			return ver, [2]int{wc, wr}, eccLevel, nil
		}
		if v == 32 {
			// try progressively lower ECC levels at the largest version
			for level := eccLevel - 1; level > 0; level-- {
				lwc, lwr := ECCLevelWcWr[level][0], ECCLevelWcWr[level][1]
				if NetCapacity(capacity, lwc, lwr) >= need {
					return ver, [2]int{lwc, lwr}, level, nil
				}
			}
			return Version{}, [2]int{}, 0, fmt.Errorf("symbol: payload does not fit into one symbol at any ECC level")
		}
	}
	return Version{}, [2]int{}, 0, fmt.Errorf("symbol: payload does not fit into one symbol")
}

// DockPlan is the resolved docking topology of a multi-symbol code: for each placed symbol,
// its host (0 for the master) and the four slave indices in N,S,W,E order.
type DockPlan struct {
	Positions []int // placement-grid index per symbol (position 0 is always the master)
	Host      []int // per symbol, its host's symbol index (self for the master)
	Slaves    [][4]int
}

// PlanDocking walks the placed symbols in N,S,W,E directions recording host/slave adjacency,
// mirroring the encoder's post-docking pass (spec.md §4.2). positions[0] must be 0 (master).
func PlanDocking(positions []int) (*DockPlan, error) {
	n := len(positions)
	if n == 0 || positions[0] != 0 {
		return nil, fmt.Errorf("symbol: position 0 must be the master")
	}
	coordToIndex := make(map[Position]int, n)
	for i, p := range positions {
		if p < 0 || p >= MaxSymbolNumber {
			return nil, fmt.Errorf("symbol: position %d out of range", p)
		}
		coordToIndex[SymbolPos[p]] = i
	}

	plan := &DockPlan{Positions: positions, Host: make([]int, n), Slaves: make([][4]int, n)}
	for i := range plan.Host {
		plan.Host[i] = -1
	}
	plan.Host[0] = 0

	docked := map[int]bool{0: true}
	// process in placement order; a symbol can only dock once one of its neighbors is docked.
	progressed := true
	for progressed {
		progressed = false
		for i := 0; i < n; i++ {
			if docked[i] {
				continue
			}
			c := SymbolPos[positions[i]]
			neighbors := [4]struct {
				delta Position
				dir   int
			}{
				{Position{c.X, c.Y - 1}, 1}, // host to the N: this symbol is its S slave
				{Position{c.X, c.Y + 1}, 0}, // host to the S: this symbol is its N slave
				{Position{c.X - 1, c.Y}, 3}, // host to the W: this symbol is its E slave
				{Position{c.X + 1, c.Y}, 2}, // host to the E: this symbol is its W slave
			}
			for _, nb := range neighbors {
				hostIdx, ok := coordToIndex[nb.delta]
				if !ok || !docked[hostIdx] {
					continue
				}
				plan.Host[i] = hostIdx
				plan.Slaves[hostIdx][nb.dir] = i
				docked[i] = true
				progressed = true
				break
			}
		}
	}
	for i := 0; i < n; i++ {
		if !docked[i] {
			return nil, fmt.Errorf("symbol: symbol at position %d is not docked to any host", positions[i])
		}
	}
	return plan, nil
}

// CanonicalOrder returns the symbol indices in master-then-N,S,W,E traversal order: index 0
// (the master) first, followed by its direct slaves in docking-direction order. Only direct
// slaves of the master are covered, since SlaveFooter carries no docked_position field of its
// own -- a slave cannot signal further docked slaves, so the wire format only ever represents
// this one-level star topology (spec.md §4.2's docked_position field belongs to the master
// only).
//
// Payload splitting (FitPayload) and bitstream reassembly must walk symbols in this order
// rather than plan.Positions' raw index order: FitPayload's share length depends on the full
// ordered set (proportional to total net capacity, with the last slot absorbing the rounding
// remainder), so encode and decode must agree on a single canonical order that a decoder can
// reconstruct from the image alone -- the N,S,W,E docking directions detected at the master,
// not an index into the caller's original argument slice.
func CanonicalOrder(plan *DockPlan) []int {
	order := []int{0}
	for dir := 0; dir < 4; dir++ {
		if idx := plan.Slaves[0][dir]; idx != 0 {
			order = append(order, idx)
		}
	}
	return order
}

// symbolPlan carries per-symbol fields computed before payload assignment.
type symbolPlan struct {
	version   Version
	eccLevel  int
	wcwr      [2]int
	capacity  int
	netCap    int
	metaBits  int
}

// FitPayload assigns payloadBits proportionally across symbols by net capacity, residue to the
// last symbol, mirroring fitDataIntoSymbols in encoder.c. Returns each symbol's share length in
// bits. Slave ECC levels may be promoted (richer wc/wr) when capacity remains, signalled to the
// caller via the returned updated eccLevels/wcwr slices (the SE flag mutation in slave metadata
// Part I is the caller's responsibility once payload bits are finalized, per addE2SlaveMetadata).
func FitPayload(colorNumber int, versions []Version, eccLevels []int, hostOf []int, payloadBits int) (shares []int, wcwr [][2]int, err error) {
	n := len(versions)
	plans := make([]symbolPlan, n)
	totalNet := 0
	for i := 0; i < n; i++ {
		level := eccLevels[i]
		if level == 0 {
			level = DefaultECCLevel
		}
		wc, wr := ECCLevelWcWr[level][0], ECCLevelWcWr[level][1]
		metaBits := MetadataLength(i, colorNumber, eccLevels[0], versions[i], versions[hostOf[i]], level, eccLevelOf(eccLevels, hostOf[i]))
		cap := Capacity(colorNumber, versions[i], i, metaBits)
		net := NetCapacity(cap, wc, wr)
		plans[i] = symbolPlan{version: versions[i], eccLevel: level, wcwr: [2]int{wc, wr}, capacity: cap, netCap: net, metaBits: metaBits}
		totalNet += net
	}

	shares = make([]int, n)
	assigned := 0
	for i := 0; i < n; i++ {
		var share int
		if i == n-1 {
			share = payloadBits - assigned
		} else {
			prop := float64(plans[i].netCap) / float64(totalNet)
			share = int(prop * float64(payloadBits))
		}
		assigned += share
		shares[i] = share
	}

	wcwr = make([][2]int, n)
	for i := range plans {
		wcwr[i] = plans[i].wcwr
	}

	for i := 0; i < n; i++ {
		full := shares[i] + 1 // flag bit
		if i == 0 {
			full += 4
		} else {
			full += 3
		}
		if full > plans[i].netCap {
			return nil, nil, fmt.Errorf("symbol: payload does not fit into symbol %d at its assigned ECC level", i)
		}
	}
	return shares, wcwr, nil
}

func eccLevelOf(levels []int, i int) int {
	l := levels[i]
	if l == 0 {
		return DefaultECCLevel
	}
	return l
}
