// package annotation owns the viewer's point-of-interest records and the
// interaction session state around them: placement arming, drag tracking, and
// the click routing that decides which handler consumes a pointer event.
package annotation

import "github.com/google/uuid"

// DefaultTitle is the title assigned to a freshly placed annotation.
const DefaultTitle = "New Annotation"

// Annotation is a user-created point of interest anchored to a world-space
// coordinate. The ID is assigned at creation, never reused, and never
// changes; Position always reflects the last committed location — a drag in
// progress does not touch it until commit.
type Annotation struct {
	// ID is the opaque unique identifier for this annotation.
	ID string

	// Position is the committed world-space anchor point.
	Position [3]float32

	// Title is the free-text label. Mutable via Edit.
	Title string

	// Description is the free-text body. Mutable via Edit.
	Description string
}

// Displayed is an annotation as the scene engine should draw it: the
// committed record with the live drag preview substituted in while this
// annotation is the one being dragged.
type Displayed struct {
	Annotation

	// Dragging is true while this annotation is the active drag target.
	// The scene engine uses it for visual emphasis (scale/emissive boost).
	Dragging bool
}

// newID mints a fresh opaque identifier.
func newID() string {
	return uuid.NewString()
}
