package utils

import (
	"io"
	"os"
)

// SampleSniffLimit defines the maximum number of bytes inspected when detecting binary content.
const SampleSniffLimit = 8192

// binaryFractionThreshold is the share of disallowed bytes above which a sample counts as binary.
const binaryFractionThreshold = 0.30

// allowedTextBytes marks byte values that ordinary text files may contain:
// horizontal tab, line feed, form feed, carriage return, escape, and 0x20-0xFF.
var allowedTextBytes = buildAllowedTextBytes()

func buildAllowedTextBytes() [256]bool {
	var allowed [256]bool
	for _, controlByte := range []byte{'\t', '\n', '\f', '\r', 0x1B} {
		allowed[controlByte] = true
	}
	for byteValue := 0x20; byteValue <= 0xFF; byteValue++ {
		allowed[byteValue] = true
	}
	return allowed
}

// IsBinarySample reports whether the provided sample appears to contain binary data.
// A sample is binary when it holds a null byte or when the fraction of bytes
// outside the text allow-list strictly exceeds the detection threshold.
// An empty sample is treated as text.
func IsBinarySample(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	disallowedCount := 0
	for _, byteValue := range sample {
		if byteValue == 0 {
			return true
		}
		if !allowedTextBytes[byteValue] {
			disallowedCount++
		}
	}
	return float64(disallowedCount) > float64(len(sample))*binaryFractionThreshold
}

// IsFileBinary reads up to SampleSniffLimit bytes from the file at path and
// reports whether the content appears to be binary. Unreadable files count as text.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	sampleBuffer := make([]byte, SampleSniffLimit)
	bytesRead, readError := io.ReadFull(fileHandle, sampleBuffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return false
	}
	return IsBinarySample(sampleBuffer[:bytesRead])
}
