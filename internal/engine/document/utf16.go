package document

import "unicode/utf16"

// ColToByteOffset converts a UTF-16 column on a line to a byte offset into
// the line's string. Columns past the end of the line clamp to len(line).
// A column landing inside a surrogate pair resolves to the rune's start.
func ColToByteOffset(line string, col uint32) int {
	var units uint32
	for i, r := range line {
		if units >= col {
			return i
		}
		units += uint32(utf16.RuneLen(r))
	}
	return len(line)
}

// ByteOffsetToCol converts a byte offset into a line's string to a UTF-16
// column. Offsets past the end of the line clamp to the line's UTF-16 length.
func ByteOffsetToCol(line string, offset int) uint32 {
	var units uint32
	for i, r := range line {
		if i >= offset {
			return units
		}
		units += uint32(utf16.RuneLen(r))
	}
	return units
}
