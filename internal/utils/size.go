package utils

import (
	"fmt"
	"strings"
)

// fileSizeUnits lists the lower-case unit suffixes from bytes to petabytes.
var fileSizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	scaledValue := float64(byteCount)
	unitIndex := 0
	for scaledValue >= 1024 && unitIndex < len(fileSizeUnits)-1 {
		scaledValue /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if scaledValue < 10 {
		formattedValue := fmt.Sprintf("%.1f", scaledValue)
		formattedValue = strings.TrimSuffix(formattedValue, ".0")
		return formattedValue + fileSizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, fileSizeUnits[unitIndex])
}
