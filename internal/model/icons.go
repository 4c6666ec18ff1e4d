package model

// Icons shown next to each entry in the list views.
// Using simple single-width characters for consistent terminal rendering
const (
	IconFirst     = "¹" // Highest priority entry
	IconLast      = "¶" // Lowest priority entry
	IconDuplicate = "≈" // Almost equal (duplicate)
	IconMissing   = "✗" // Thin X (missing)
	IconEmpty     = "∅" // Empty row (interior empty token)
	IconOK        = " " // Space (OK - no icon to reduce noise)
	IconGrabbed   = "↕" // Entry picked up for a move
)
