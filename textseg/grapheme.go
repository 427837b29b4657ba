package textseg

// ClusterState tracks an in-progress grapheme cluster. StartCluster seeds it
// with the base codepoint; Extend reports whether the next codepoint belongs
// to the same cluster and advances the state when it does.
//
// The state is deliberately small: the previous codepoint, whether an
// unpaired regional indicator is open (GB12/GB13), and whether the cluster
// currently ends in a pictographic sequence or a pictographic sequence plus
// ZWJ (GB11).
type ClusterState struct {
	prev     rune
	riOpen   bool
	emojiSeq bool
	zwjOpen  bool
}

// StartCluster begins a new cluster at base.
func StartCluster(base rune) ClusterState {
	return ClusterState{
		prev:     base,
		riOpen:   isRegionalIndicator(base),
		emojiSeq: isExtendedPictographic(base),
	}
}

// Extend reports whether r continues the cluster. When it returns true the
// state advances past r; when it returns false the state is unchanged and r
// begins the next cluster.
func (s *ClusterState) Extend(r rune) bool {
	prev := s.prev
	joined := false

	switch {
	case prev == '\r' && r == '\n':
		// GB3: CRLF is one cluster.
		joined = true
	case prev == '\r' || prev == '\n' || isControl(prev):
		// GB4: break after controls.
	case r == '\r' || r == '\n' || isControl(r):
		// GB5: break before controls.
	case isHangulL(prev) && (isHangulL(r) || isHangulV(r) || isHangulLV(r) || isHangulLVT(r)):
		// GB6
		joined = true
	case (isHangulLV(prev) || isHangulV(prev)) && (isHangulV(r) || isHangulT(r)):
		// GB7
		joined = true
	case (isHangulLVT(prev) || isHangulT(prev)) && isHangulT(r):
		// GB8
		joined = true
	case isExtend(r) || r == runeZWJ:
		// GB9
		joined = true
	case isSpacingMark(r):
		// GB9a
		joined = true
	case isPrepend(prev):
		// GB9b
		joined = true
	case s.zwjOpen && isExtendedPictographic(r):
		// GB11: pictographic sequence + ZWJ joins a pictograph.
		joined = true
	case s.riOpen && isRegionalIndicator(r):
		// GB12/GB13: pair exactly two regional indicators.
		joined = true
	default:
		// GB999
	}

	if !joined {
		return false
	}

	if s.riOpen && isRegionalIndicator(r) {
		s.riOpen = false
	}
	switch {
	case r == runeZWJ:
		s.zwjOpen = s.emojiSeq
	case isExtend(r):
		// Extends keep a pictographic sequence alive (GB11 allows
		// Extend* between the pictograph and the ZWJ).
		s.zwjOpen = false
	default:
		s.emojiSeq = isExtendedPictographic(r)
		s.zwjOpen = false
	}
	s.prev = r
	return true
}
