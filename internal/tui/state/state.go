package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// CycleFocus moves a focus index by delta over size actions, wrapping at both
// ends. A negative current index means nothing is focused yet.
func CycleFocus(current, size, delta int) int {
	if size <= 0 {
		return -1
	}
	if current < 0 {
		if delta < 0 {
			return size - 1
		}
		return 0
	}
	next := (current + delta) % size
	if next < 0 {
		next += size
	}
	return next
}

// ScrollToLine returns the smallest change to offset that keeps line inside
// a window of height rows.
func ScrollToLine(offset, line, height int) int {
	if height <= 0 || line < 0 {
		return offset
	}
	if line < offset {
		return line
	}
	if line >= offset+height {
		return line - height + 1
	}
	return offset
}

// CenteredWindow returns the [start, end) rows of a height-row window over
// totalRows that keeps cursor as close to the middle as the edges allow.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// NextTip rotates through n tips.
func NextTip(current, n int) int {
	if n <= 0 {
		return 0
	}
	return (current + 1) % n
}
