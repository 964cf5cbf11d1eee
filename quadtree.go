package gameloop

const (
	// DefaultQuadCapacity is how many entries a quadtree cell holds before
	// it splits.
	DefaultQuadCapacity = 5
	// DefaultQuadMaxDepth bounds subdivision so clusters of tiny or
	// coincident entries degrade to a linear scan instead of recursing.
	DefaultQuadMaxDepth = 8
)

// Quadrant indices, in split order.
const (
	quadNW = iota
	quadNE
	quadSW
	quadSE
	quadNone = -1
)

type quadEntry struct {
	id     NodeID
	bounds Rect
}

// Quadtree is a broad-phase spatial index over node handles. It never owns
// nodes and is meant to be cleared and refilled every tick.
//
// An entry lives at the deepest cell whose quadrant fully contains its
// bounds; entries straddling a split line stay at the cell that owns the
// line.
type Quadtree struct {
	bounds   Rect
	capacity int
	maxDepth int
	depth    int
	entries  []quadEntry
	children *[4]Quadtree
}

// NewQuadtree creates an empty index covering bounds.
func NewQuadtree(bounds Rect, capacity int) *Quadtree {
	if capacity < 1 {
		capacity = DefaultQuadCapacity
	}
	return &Quadtree{bounds: bounds, capacity: capacity, maxDepth: DefaultQuadMaxDepth}
}

// SetMaxDepth sets the deepest level a cell may split to. Takes effect for
// subsequent splits.
func (q *Quadtree) SetMaxDepth(d int) {
	if d < 0 {
		d = 0
	}
	q.maxDepth = d
}

// SetBounds resizes the root cell and clears the index.
func (q *Quadtree) SetBounds(bounds Rect) {
	q.bounds = bounds
	q.Clear()
}

// Bounds returns the area covered by this cell.
func (q *Quadtree) Bounds() Rect {
	return q.bounds
}

// Clear drops every entry and child cell. The entry buffer is kept for reuse.
func (q *Quadtree) Clear() {
	for i := range q.entries {
		q.entries[i] = quadEntry{}
	}
	q.entries = q.entries[:0]
	q.children = nil
}

// index returns the quadrant that fully contains r, or quadNone when r
// touches or crosses a midpoint line.
func (q *Quadtree) index(r Rect) int {
	vmid := q.bounds.X + q.bounds.Width/2
	hmid := q.bounds.Y + q.bounds.Height/2

	top := r.Y+r.Height < hmid
	bottom := r.Y > hmid
	left := r.X+r.Width < vmid
	right := r.X > vmid

	switch {
	case top && left:
		return quadNW
	case top && right:
		return quadNE
	case bottom && left:
		return quadSW
	case bottom && right:
		return quadSE
	}
	return quadNone
}

func (q *Quadtree) split() {
	w := q.bounds.Width / 2
	h := q.bounds.Height / 2
	x, y := q.bounds.X, q.bounds.Y
	rects := [4]Rect{
		quadNW: {x, y, w, h},
		quadNE: {x + w, y, w, h},
		quadSW: {x, y + h, w, h},
		quadSE: {x + w, y + h, w, h},
	}
	q.children = new([4]Quadtree)
	for i := range q.children {
		q.children[i] = Quadtree{
			bounds:   rects[i],
			capacity: q.capacity,
			maxDepth: q.maxDepth,
			depth:    q.depth + 1,
		}
	}
}

// Insert adds id with the given bounds.
func (q *Quadtree) Insert(id NodeID, bounds Rect) {
	q.insert(quadEntry{id: id, bounds: bounds})
}

func (q *Quadtree) insert(e quadEntry) {
	if q.children != nil {
		if i := q.index(e.bounds); i != quadNone {
			q.children[i].insert(e)
			return
		}
	}

	q.entries = append(q.entries, e)

	if len(q.entries) <= q.capacity || q.children != nil || q.depth >= q.maxDepth {
		return
	}
	q.split()

	// Push down everything that fits one quadrant; straddlers stay here.
	kept := q.entries[:0]
	for _, held := range q.entries {
		if i := q.index(held.bounds); i != quadNone {
			q.children[i].insert(held)
			continue
		}
		kept = append(kept, held)
	}
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = quadEntry{}
	}
	q.entries = kept
}

// Retrieve returns the handles of entries whose cells may overlap query.
// The result is a superset of the true overlaps; callers run their own
// narrow-phase test.
func (q *Quadtree) Retrieve(query Rect) []NodeID {
	return q.retrieve(query, nil)
}

// RetrieveInto is Retrieve appending into buf, for callers that reuse a
// buffer across queries.
func (q *Quadtree) RetrieveInto(query Rect, buf []NodeID) []NodeID {
	return q.retrieve(query, buf)
}

func (q *Quadtree) retrieve(query Rect, out []NodeID) []NodeID {
	if q.children != nil {
		if i := q.index(query); i != quadNone {
			out = q.children[i].retrieve(query, out)
		} else {
			for i := range q.children {
				if q.children[i].bounds.Intersects(query) {
					out = q.children[i].retrieve(query, out)
				}
			}
		}
	}
	for _, e := range q.entries {
		if e.bounds.Intersects(query) {
			out = append(out, e.id)
		}
	}
	return out
}

// Len returns the number of entries in this cell and all its descendants.
func (q *Quadtree) Len() int {
	n := len(q.entries)
	if q.children != nil {
		for i := range q.children {
			n += q.children[i].Len()
		}
	}
	return n
}

// Depth returns the number of levels below this cell; 0 for a leaf.
func (q *Quadtree) Depth() int {
	if q.children == nil {
		return 0
	}
	d := 0
	for i := range q.children {
		d = max(d, q.children[i].Depth())
	}
	return d + 1
}

// Walk calls fn for this cell and every descendant, pre-order. held is the
// number of entries stored at that cell itself.
func (q *Quadtree) Walk(fn func(bounds Rect, depth, held int)) {
	fn(q.bounds, q.depth, len(q.entries))
	if q.children != nil {
		for i := range q.children {
			q.children[i].Walk(fn)
		}
	}
}
