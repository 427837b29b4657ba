package buffer

// SearchForward scans for the first occurrence of pattern starting at or
// after from, crossing piece boundaries without materialising the text.
// Returns the match's byte offset and whether one was found.
func (b *Buffer) SearchForward(pattern []byte, from int) (int, bool) {
	if len(pattern) == 0 {
		return 0, false
	}
	if from < 0 {
		from = 0
	}
	it := NewIterator(b)
	it.Seek(from)
	start := it.Pos()
	j := 0
	for {
		c, ok := it.Next()
		if !ok {
			return 0, false
		}
		if c == pattern[j] {
			j++
			if j == len(pattern) {
				return start, true
			}
			continue
		}
		// Mismatch after a partial match: rewind to one past the
		// attempted start and try again.
		start++
		it.Seek(start)
		j = 0
	}
}

// SearchBackward scans for the last occurrence of pattern beginning at or
// before from. Candidate positions are probed from the high end downward,
// each compared with a temporary iterator seeded at the candidate.
func (b *Buffer) SearchBackward(pattern []byte, from int) (int, bool) {
	if len(pattern) == 0 {
		return 0, false
	}
	high := min(from, b.totalLen-len(pattern))
	for cand := high; cand >= 0; cand-- {
		if b.matchAt(pattern, cand) {
			return cand, true
		}
	}
	return 0, false
}

// SearchForwardWrap is SearchForward with wraparound: if nothing matches
// between from and EOF, the scan restarts at the top of the buffer and
// accepts only matches that do not re-cross the origin (the whole match
// must lie before from).
func (b *Buffer) SearchForwardWrap(pattern []byte, from int) (int, bool) {
	if pos, ok := b.SearchForward(pattern, from); ok {
		return pos, true
	}
	pos, ok := b.SearchForward(pattern, 0)
	if !ok || pos+len(pattern) > from {
		return 0, false
	}
	return pos, true
}

// SearchBackwardWrap is SearchBackward with wraparound: if nothing matches
// at or before from, the scan restarts at the end of the buffer and
// accepts only matches strictly after the origin.
func (b *Buffer) SearchBackwardWrap(pattern []byte, from int) (int, bool) {
	if pos, ok := b.SearchBackward(pattern, from); ok {
		return pos, true
	}
	pos, ok := b.SearchBackward(pattern, b.totalLen)
	if !ok || pos <= from {
		return 0, false
	}
	return pos, true
}

// matchAt reports whether pattern occurs at exactly pos.
func (b *Buffer) matchAt(pattern []byte, pos int) bool {
	if pos < 0 || pos+len(pattern) > b.totalLen {
		return false
	}
	it := NewIterator(b)
	it.Seek(pos)
	for _, want := range pattern {
		c, ok := it.Next()
		if !ok || c != want {
			return false
		}
	}
	return true
}
