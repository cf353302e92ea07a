package projection

// Viewer holds the rotation state of one molecule view. It is not safe for
// concurrent use.
type Viewer struct {
	shape    Shape
	rotation Rotation
	dragging bool
	step     float64
}

func NewViewer(s Shape) *Viewer {
	return &Viewer{shape: s, step: AutoRotateStep}
}

func (v *Viewer) Shape() Shape { return v.shape }

// SetShape swaps the geometry while keeping the current rotation.
func (v *Viewer) SetShape(s Shape) { v.shape = s }

func (v *Viewer) Rotation() Rotation { return v.rotation }

func (v *Viewer) SetRotation(r Rotation) { v.rotation = r.Normalize() }

func (v *Viewer) Dragging() bool { return v.dragging }

func (v *Viewer) SetDragging(d bool) { v.dragging = d }

// Drag maps a pointer delta onto rotation: vertical motion pitches, horizontal
// motion yaws.
func (v *Viewer) Drag(dx, dy float64) {
	v.rotation = v.rotation.Add(dy*DragGain, dx*DragGain)
}

// Tick autorotates unless a drag is in progress.
func (v *Viewer) Tick() {
	if v.dragging {
		return
	}
	v.rotation = v.rotation.Add(0, v.step)
}

func (v *Viewer) Reset() {
	v.rotation = Rotation{}
	v.dragging = false
}

func (v *Viewer) Atoms() []Projected { return Project(v.shape.Atoms, v.rotation) }

func (v *Viewer) Bonds() []Bond { return Connect(v.shape, v.rotation) }
