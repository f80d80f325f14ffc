package files

import (
	"fmt"
	"strings"
)

const (
	serialPrefix  = "E9"
	serialLength  = 6
	unknownSerial = "E9XXXX"
)

// ParseFileSize renders a byte count with a decimal gb, mb, kb or b suffix
func ParseFileSize(size int64) string {
	switch {
	case size > 1_000_000_000:
		return fmt.Sprintf("%.2fgb", float64(size)/1e9)
	case size > 1_000_000:
		return fmt.Sprintf("%.1fmb", float64(size)/1e6)
	case size > 1_000:
		return fmt.Sprintf("%.1fkb", float64(size)/1e3)
	default:
		return fmt.Sprintf("%db", size)
	}
}

// Compression reports the relative size reduction between two file sizes
// as a percentage string. Argument order does not matter.
func Compression(a, b int64) string {
	large, small := max(a, b), min(a, b)
	if large <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", (1-float64(small)/float64(large))*100)
}

// ExtractSerial returns the vehicle serial embedded in a path or file name:
// "E9" and the four characters after it. Paths without one yield "E9XXXX".
func ExtractSerial(path string) string {
	idx := strings.Index(path, serialPrefix)
	if idx < 0 {
		return unknownSerial
	}
	end := min(idx+serialLength, len(path))
	return path[idx:end]
}
