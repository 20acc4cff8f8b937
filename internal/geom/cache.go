package geom

// Cache memoizes the geometry of the last draw.
//
// The cached picture is reused while the frame size is unchanged and
// Clear has not been called. A Cache belongs to a single widget and is
// not safe for concurrent use.
type Cache struct {
	geometry Geometry
	valid    bool
	draws    int
}

// Draw returns the cached geometry if it is valid for size, otherwise it
// records a new frame with fn and caches the result.
func (c *Cache) Draw(size Size, fn func(*Frame)) Geometry {
	if c.valid && c.geometry.Size == size {
		return c.geometry
	}

	frame := NewFrame(size)
	fn(frame)

	c.geometry = frame.Geometry()
	c.valid = true
	c.draws++
	return c.geometry
}

// Clear invalidates the cached geometry.
func (c *Cache) Clear() {
	c.valid = false
}

// Valid reports whether the next Draw at the cached size would reuse the
// cached geometry.
func (c *Cache) Valid() bool { return c.valid }

// Draws returns how many times the cache has re-recorded a frame.
func (c *Cache) Draws() int { return c.draws }
