package grid

// HasCollision reports whether w, placed at candidate with its own size,
// overlaps any widget in all. Widgets whose ID equals w.ID or excludeID are
// ignored; an empty excludeID ignores nothing extra.
func HasCollision(w Widget, candidate Position, all []Widget, excludeID string) bool {
	for _, other := range all {
		if other.ID == w.ID || (excludeID != "" && other.ID == excludeID) {
			continue
		}
		if overlaps(candidate, w.Size, other.Position, other.Size) {
			return true
		}
	}
	return false
}
