package annotation

import (
	"sync"

	"github.com/rs/zerolog"
)

// controllerImpl is the implementation of the Controller interface.
type controllerImpl struct {
	mu *sync.Mutex

	store Store
	log   zerolog.Logger

	// placementArmed is true after the user requests placement and until the
	// next qualifying world click consumes it.
	placementArmed bool

	// draggingID is the annotation currently mid-drag, or "" when idle.
	// At most one annotation may be mid-drag at a time.
	draggingID string

	// dragPreview is the live uncommitted position while dragging. Nil until
	// the first drag update arrives; discarded on release or cancel.
	dragPreview *[3]float32
}

// Controller owns the interaction session state around the annotation store:
// the placement-armed flag, the single drag in progress, and the routing that
// gives each world-space pointer event exactly one consumer. All transitions
// are synchronous and cannot fail under normal use; operations on unknown IDs
// are silent no-ops.
type Controller interface {
	// Store returns the underlying annotation store.
	//
	// Returns:
	//   - Store: the store holding the annotation records
	Store() Store

	// ArmPlacement marks the next qualifying world click as an annotation
	// placement. Arming is idempotent and never times out — it stays armed
	// until consumed or explicitly disarmed.
	ArmPlacement()

	// DisarmPlacement cancels a pending placement without consuming it.
	DisarmPlacement()

	// PlacementArmed reports whether a placement is pending.
	//
	// Returns:
	//   - bool: true if the next world click will place an annotation
	PlacementArmed() bool

	// ConsumePlacementAt creates a new annotation at the given point if
	// placement is armed, consuming the armed flag. A no-op when not armed.
	//
	// Parameters:
	//   - point: world-space point from the scene engine's ray intersection
	//
	// Returns:
	//   - Annotation: a copy of the new record (zero value if not armed)
	//   - bool: true if an annotation was created
	ConsumePlacementAt(point [3]float32) (Annotation, bool)

	// Edit updates the title and/or description of an annotation. Nil fields
	// are left untouched. A silent no-op for unknown IDs.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//   - title: new title, or nil to keep the current one
	//   - description: new description, or nil to keep the current one
	//
	// Returns:
	//   - bool: true if the annotation existed
	Edit(id string, title, description *string) bool

	// Delete removes an annotation. If that annotation is mid-drag the drag
	// state is cleared as well, so no dangling drag target survives.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//
	// Returns:
	//   - bool: true if the annotation existed
	Delete(id string) bool

	// BeginDrag starts dragging an annotation. Rejected (no-op) if the ID is
	// unknown or another drag is already in progress — stray multi-touch
	// events must not silently switch targets.
	//
	// Parameters:
	//   - id: the annotation to drag
	//
	// Returns:
	//   - bool: true if the drag was started
	BeginDrag(id string) bool

	// UpdateDrag records a new live preview position for the drag in
	// progress. A no-op when nothing is being dragged. The committed record
	// is not touched.
	//
	// Parameters:
	//   - point: candidate world-space position
	UpdateDrag(point [3]float32)

	// CommitDrag ends the drag in progress, committing the preview position
	// to the record if one was ever set. With no prior UpdateDrag the
	// committed position is left unchanged.
	CommitDrag()

	// CancelDrag ends the drag in progress without committing, discarding
	// any preview position.
	CancelDrag()

	// DraggingID reports the annotation currently mid-drag.
	//
	// Returns:
	//   - string: the dragging annotation's ID ("" when idle)
	//   - bool: true if a drag is in progress
	DraggingID() (string, bool)

	// Displayed returns the annotation list as the scene engine should draw
	// it: insertion order, with the live drag preview substituted for the
	// dragging annotation and its emphasis flag set.
	//
	// Returns:
	//   - []Displayed: the render-ready annotation list
	Displayed() []Displayed

	// HandlePointerDown routes a world-space pointer-down event. A down on
	// an existing marker begins its drag and consumes the event, suppressing
	// placement and camera handling.
	//
	// Parameters:
	//   - point: world-space intersection point
	//   - targetID: the marker the ray hit, or "" for none
	//
	// Returns:
	//   - bool: true if this controller consumed the event
	HandlePointerDown(point [3]float32, targetID string) bool

	// HandlePointerMove routes a world-space pointer-move event. Consumed as
	// a drag update while a drag is in progress.
	//
	// Parameters:
	//   - point: world-space intersection point
	//
	// Returns:
	//   - bool: true if this controller consumed the event
	HandlePointerMove(point [3]float32) bool

	// HandlePointerUp routes a pointer-release event, committing any drag in
	// progress.
	//
	// Returns:
	//   - bool: true if this controller consumed the event
	HandlePointerUp() bool

	// HandleClick routes a world-space click. Consumed as a placement when
	// armed; otherwise ignored so the caller can forward it to camera
	// controls.
	//
	// Parameters:
	//   - point: world-space intersection point
	//
	// Returns:
	//   - bool: true if this controller consumed the event
	HandleClick(point [3]float32) bool
}

var _ Controller = &controllerImpl{}

// NewController creates an interaction controller with the provided options.
// A fresh empty store is created unless one is supplied via WithStore.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:  &sync.Mutex{},
		log: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.store == nil {
		c.store = NewStore()
	}
	return c
}

func (c *controllerImpl) Store() Store {
	return c.store
}

func (c *controllerImpl) ArmPlacement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.placementArmed = true
	c.log.Debug().Msg("placement armed")
}

func (c *controllerImpl) DisarmPlacement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.placementArmed = false
}

func (c *controllerImpl) PlacementArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placementArmed
}

func (c *controllerImpl) ConsumePlacementAt(point [3]float32) (Annotation, bool) {
	c.mu.Lock()
	if !c.placementArmed {
		c.mu.Unlock()
		return Annotation{}, false
	}
	c.placementArmed = false
	c.mu.Unlock()

	a := c.store.Add(point)
	c.log.Debug().Str("id", a.ID).
		Floats32("position", point[:]).
		Msg("annotation placed")
	return a, true
}

func (c *controllerImpl) Edit(id string, title, description *string) bool {
	return c.store.Edit(id, title, description)
}

func (c *controllerImpl) Delete(id string) bool {
	existed := c.store.Delete(id)

	c.mu.Lock()
	if c.draggingID == id {
		c.draggingID = ""
		c.dragPreview = nil
	}
	c.mu.Unlock()

	if existed {
		c.log.Debug().Str("id", id).Msg("annotation deleted")
	}
	return existed
}

func (c *controllerImpl) BeginDrag(id string) bool {
	if _, ok := c.store.Get(id); !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draggingID != "" {
		// Another drag is open; reject rather than switch targets.
		return false
	}
	c.draggingID = id
	c.dragPreview = nil
	c.log.Debug().Str("id", id).Msg("drag started")
	return true
}

func (c *controllerImpl) UpdateDrag(point [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draggingID == "" {
		return
	}
	p := point
	c.dragPreview = &p
}

func (c *controllerImpl) CommitDrag() {
	c.mu.Lock()
	id := c.draggingID
	preview := c.dragPreview
	c.draggingID = ""
	c.dragPreview = nil
	c.mu.Unlock()

	if id == "" {
		return
	}
	if preview != nil {
		c.store.SetPosition(id, *preview)
		c.log.Debug().Str("id", id).Floats32("position", preview[:]).Msg("drag committed")
	}
}

func (c *controllerImpl) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draggingID == "" {
		return
	}
	c.log.Debug().Str("id", c.draggingID).Msg("drag cancelled")
	c.draggingID = ""
	c.dragPreview = nil
}

func (c *controllerImpl) DraggingID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draggingID, c.draggingID != ""
}

func (c *controllerImpl) Displayed() []Displayed {
	all := c.store.All()

	c.mu.Lock()
	draggingID := c.draggingID
	preview := c.dragPreview
	c.mu.Unlock()

	out := make([]Displayed, 0, len(all))
	for _, a := range all {
		d := Displayed{Annotation: a}
		if a.ID == draggingID {
			d.Dragging = true
			if preview != nil {
				d.Position = *preview
			}
		}
		out = append(out, d)
	}
	return out
}

func (c *controllerImpl) HandlePointerDown(point [3]float32, targetID string) bool {
	if targetID == "" {
		return false
	}
	if _, ok := c.store.Get(targetID); !ok {
		return false
	}
	// Even if a drag is already open (and this one is rejected), the event
	// landed on a marker: exactly one handler consumes it, and it is not the
	// camera's.
	c.BeginDrag(targetID)
	return true
}

func (c *controllerImpl) HandlePointerMove(point [3]float32) bool {
	c.mu.Lock()
	dragging := c.draggingID != ""
	c.mu.Unlock()
	if !dragging {
		return false
	}
	c.UpdateDrag(point)
	return true
}

func (c *controllerImpl) HandlePointerUp() bool {
	c.mu.Lock()
	dragging := c.draggingID != ""
	c.mu.Unlock()
	if !dragging {
		return false
	}
	c.CommitDrag()
	return true
}

func (c *controllerImpl) HandleClick(point [3]float32) bool {
	_, placed := c.ConsumePlacementAt(point)
	return placed
}
