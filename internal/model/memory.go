package model

import (
	"math"
	"math/bits"
)

// PageSize is the fixed page size used to convert page counts to bytes.
const PageSize uint64 = 4096

// bytesPerGiB is 1024^3.
const bytesPerGiB = 1024 * 1024 * 1024

// MemoryInfo is the memory section of a Snapshot.
type MemoryInfo struct {
	// TotalBytes is the physical memory size. Zero when it could not be read.
	TotalBytes uint64 `json:"total_bytes"`

	// ActivePages, WiredPages and CompressedPages are the raw page counters.
	ActivePages     uint64 `json:"active_pages"`
	WiredPages      uint64 `json:"wired_pages"`
	CompressedPages uint64 `json:"compressed_pages"`

	// Present is true when the page statistics command ran.
	Present bool `json:"present"`
}

// PagesToBytes converts a page count to bytes.
func PagesToBytes(pages uint64) uint64 {
	return pages * PageSize
}

// ActiveBytes returns the active pages in bytes.
func (m MemoryInfo) ActiveBytes() uint64 { return PagesToBytes(m.ActivePages) }

// WiredBytes returns the wired pages in bytes.
func (m MemoryInfo) WiredBytes() uint64 { return PagesToBytes(m.WiredPages) }

// CompressedBytes returns the compressor pages in bytes.
func (m MemoryInfo) CompressedBytes() uint64 { return PagesToBytes(m.CompressedPages) }

// UsedBytes is active + wired + compressed.
func (m MemoryInfo) UsedBytes() uint64 {
	return m.ActiveBytes() + m.WiredBytes() + m.CompressedBytes()
}

// FreeBytes is the part of TotalBytes not counted as used, floored at zero.
func (m MemoryInfo) FreeBytes() uint64 {
	used := m.UsedBytes()
	if used >= m.TotalBytes {
		return 0
	}
	return m.TotalBytes - used
}

// Percent returns UsagePercent(UsedBytes(), TotalBytes).
func (m MemoryInfo) Percent() uint64 {
	return UsagePercent(m.UsedBytes(), m.TotalBytes)
}

// UsedGiB returns UsedBytes in gibibytes.
func (m MemoryInfo) UsedGiB() float64 { return ToGiB(m.UsedBytes()) }

// TotalGiB returns TotalBytes in gibibytes.
func (m MemoryInfo) TotalGiB() float64 { return ToGiB(m.TotalBytes) }

// UsagePercent returns used/total*100 truncated to an integer.
// It returns 0 when total is 0. The product is computed in 128 bits, and a
// quotient that does not fit in 64 bits saturates at math.MaxUint64.
func UsagePercent(used, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	hi, lo := bits.Mul64(used, 100)
	if hi >= total {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, total)
	return q
}

// ToGiB converts bytes to gibibytes.
func ToGiB(b uint64) float64 {
	return float64(b) / bytesPerGiB
}
