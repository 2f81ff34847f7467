package gravity

// Trail is a fixed-capacity ring of past positions. Push is O(1) with no
// reallocation, so long runs never churn the allocator.
type Trail struct {
	points []Vec2
	head   int
	count  int
}

func NewTrail(capacity int) *Trail {
	return &Trail{points: make([]Vec2, capacity)}
}

func (t *Trail) Len() int { return t.count }

func (t *Trail) Push(p Vec2) {
	if len(t.points) == 0 {
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % len(t.points)
	if t.count < len(t.points) {
		t.count++
	}
}

// At returns the i-th stored position, 0 being the oldest.
func (t *Trail) At(i int) Vec2 {
	start := t.head - t.count
	if start < 0 {
		start += len(t.points)
	}
	return t.points[(start+i)%len(t.points)]
}

func (t *Trail) Reset() {
	t.head = 0
	t.count = 0
}

// Body is the physical state record for the sun, a planet or a comet.
type Body struct {
	Name   string
	Mass   float64
	Radius float64
	Pos    Vec2
	Vel    Vec2
	Color  string
	Fixed  bool
	Comet  bool
	Life   float64
	Trail  *Trail
}
