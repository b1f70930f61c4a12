package rope

import (
	"math"
	"slices"

	"github.com/akmonengine/rope/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey is the integer coordinate of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the colliders overlapping it
type Cell struct {
	indices []int
}

// SpatialGrid is a uniform hashed grid over collider bounds.
// Distinct cells may share a bucket, so query results are candidates only.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
	// upper bound of cells a single insert or query may visit before the
	// grid gives up on locality for that box
	maxSpan int
	// indices too large to hash, returned by every query
	oversized []int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a grid of numCells buckets (rounded up to a power of two)
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
		maxSpan:  numCells * 4,
	}
}

// nextPowerOfTwo rounds n up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert registers index in every cell covered by aabb
func (sg *SpatialGrid) Insert(index int, aabb actor.AABB) {
	minCell, maxCell, ok := sg.cellRange(aabb)
	if !ok {
		sg.oversized = append(sg.oversized, index)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].indices = append(sg.cells[cellIdx].indices, index)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].indices = sg.cells[i].indices[:0]
	}
	sg.oversized = sg.oversized[:0]
}

// Query appends to dst the indices registered in the cells covered by aabb,
// sorted and without duplicates.
func (sg *SpatialGrid) Query(aabb actor.AABB, dst []int) []int {
	start := len(dst)
	dst = append(dst, sg.oversized...)

	minCell, maxCell, ok := sg.cellRange(aabb)
	if !ok {
		// Query box too large for locality: every bucket is a candidate
		for i := range sg.cells {
			dst = append(dst, sg.cells[i].indices...)
		}
	} else {
		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					dst = append(dst, sg.cells[sg.hashCell(CellKey{x, y, z})].indices...)
				}
			}
		}
	}

	found := dst[start:]
	slices.Sort(found)
	found = slices.Compact(found)

	return dst[:start+len(found)]
}

// cellRange returns the cells covered by aabb, or false when the box spans
// more cells than maxSpan
func (sg *SpatialGrid) cellRange(aabb actor.AABB) (CellKey, CellKey, bool) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	span := 1.0
	for _, extent := range [3]int{maxCell.X - minCell.X, maxCell.Y - minCell.Y, maxCell.Z - minCell.Z} {
		span *= float64(extent + 1)
	}
	if span > float64(sg.maxSpan) {
		return minCell, maxCell, false
	}

	return minCell, maxCell, true
}

// worldToCell converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell to its bucket
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
