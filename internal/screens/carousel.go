package screens

// Carousel pages through one vehicle's photos.
type Carousel struct {
	Photos []string
	Index  int
}

// Select moves to page i, clamped into range.
func (c *Carousel) Select(i int) {
	switch {
	case len(c.Photos) == 0 || i < 0:
		c.Index = 0
	case i >= len(c.Photos):
		c.Index = len(c.Photos) - 1
	default:
		c.Index = i
	}
}

func (c *Carousel) Next() { c.Select(c.Index + 1) }

func (c *Carousel) Prev() { c.Select(c.Index - 1) }

// Current returns the shown photo URL, or "" when there are none.
func (c *Carousel) Current() string {
	if len(c.Photos) == 0 {
		return ""
	}
	return c.Photos[c.Index]
}

// Dots reports, per photo, whether it is the shown one.
func (c *Carousel) Dots() []bool {
	dots := make([]bool, len(c.Photos))
	if len(dots) > 0 {
		dots[c.Index] = true
	}
	return dots
}
