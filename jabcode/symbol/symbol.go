package symbol

// Version is a per-axis side version pair, 1..32 on each axis.
type Version struct{ X, Y int }

// SideSize returns the module dimensions (sx,sy) for v.
func (v Version) SideSize() (sx, sy int) { return SideSize(v.X), SideSize(v.Y) }

// Docking positions, 4-bit bitmap per spec.md Metadata.docked_position.
const (
	DockNorth = 1 << iota
	DockSouth
	DockWest
	DockEast
)

// Metadata is the per-symbol side-channel record carried alongside a symbol's data: the
// bits-per-module count, chosen mask, which sides carry docked slaves, this symbol's side
// version, and its LDPC parameters.
type Metadata struct {
	Nc             int // bits per module - 1
	MaskType       int // 0..7
	DockedPosition int // 4-bit bitmap: DockNorth|DockSouth|DockWest|DockEast
	SideVersion    Version
	WcWr           [2]int
}

// Symbol is one JABCode symbol: the master, or a slave docked to it.
type Symbol struct {
	Index       int
	Version     Version
	ModuleMatrix [][]int // sx x sy color indices, row-major (row = y, col = x)
	DataMap      [][]bool
	Metadata     Metadata
	HostIndex    int    // 0 for the master; the hosting symbol's index for a slave
	SlaveIndices [4]int // by docking direction N,S,W,E; 0 means "none" (index 0 is always the master)
	WcWr         [2]int
	Data         []byte // packed payload bits (one bit per byte, matching ldpc/mode convention), post LDPC
	Payload      []byte // this symbol's share of the encoded message bits, pre LDPC
}

// NewSymbol allocates a Symbol with its module matrix and data map sized for its version.
func NewSymbol(index int, version Version) *Symbol {
	sx, sy := version.SideSize()
	matrix := make([][]int, sy)
	dataMap := make([][]bool, sy)
	for y := range matrix {
		matrix[y] = make([]int, sx)
		dataMap[y] = make([]bool, sx)
		for x := range dataMap[y] {
			dataMap[y][x] = true
		}
	}
	return &Symbol{
		Index:        index,
		Version:      version,
		ModuleMatrix: matrix,
		DataMap:      dataMap,
		HostIndex:    index,
		SlaveIndices: [4]int{0, 0, 0, 0},
	}
}

// IsMaster reports whether s is the code's master symbol.
func (s *Symbol) IsMaster() bool { return s.Index == 0 }
