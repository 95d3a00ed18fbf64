package shapes

// PointBuffer is a flat sequence of (x, y, z) triples.
type PointBuffer []float32

// NewPointBuffer allocates a zeroed buffer for count points.
func NewPointBuffer(count int) PointBuffer {
	return make(PointBuffer, count*3)
}

// Count returns the number of points in the buffer.
func (b PointBuffer) Count() int {
	return len(b) / 3
}

// At returns the i-th point.
func (b PointBuffer) At(i int) (x, y, z float32) {
	i3 := i * 3
	return b[i3], b[i3+1], b[i3+2]
}

// Set stores the i-th point.
func (b PointBuffer) Set(i int, x, y, z float32) {
	i3 := i * 3
	b[i3] = x
	b[i3+1] = y
	b[i3+2] = z
}

// Bounds returns the axis-aligned extent of the buffer.
func (b PointBuffer) Bounds() (min, max [3]float32) {
	if len(b) < 3 {
		return min, max
	}
	copy(min[:], b[:3])
	copy(max[:], b[:3])
	for i := 3; i+2 < len(b); i += 3 {
		for a := 0; a < 3; a++ {
			v := b[i+a]
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max
}
