package layout

// Default geometry, in world units. These match the proportions the tree
// viewer has always used: a 25-unit node circle, 80 units between depth
// levels, and a 60-unit horizontal slot per leaf.
const (
	DefaultNodeRadius   = 25.0
	DefaultLevelHeight  = 80.0
	DefaultMinSlotWidth = 60.0
	DefaultTopMargin    = 60.0
	DefaultSideMargin   = 50.0
)

// Config holds the geometric constants for a layout pass. The zero value
// is usable: any field left at zero (or set negative) falls back to its
// default, so callers can override a single knob without spelling out the
// rest.
type Config struct {
	// NodeRadius is the radius of a node circle. It does not influence
	// positions, only the bounding box padding renderers rely on.
	NodeRadius float64

	// LevelHeight is the vertical distance between consecutive depths.
	LevelHeight float64

	// MinSlotWidth is the horizontal footprint of a single leaf. Every
	// subtree is at least this wide, which keeps siblings from
	// overlapping however skewed the tree is.
	MinSlotWidth float64

	// TopMargin offsets the root below the top edge of the drawing.
	TopMargin float64

	// SideMargin pads the bounding box on the left and right.
	SideMargin float64
}

// DefaultConfig returns the standard tree geometry.
func DefaultConfig() Config {
	return Config{
		NodeRadius:   DefaultNodeRadius,
		LevelHeight:  DefaultLevelHeight,
		MinSlotWidth: DefaultMinSlotWidth,
		TopMargin:    DefaultTopMargin,
		SideMargin:   DefaultSideMargin,
	}
}

// withDefaults returns a copy of c with non-positive fields replaced by
// their defaults. Compute calls this on entry, so a partially filled
// Config always yields a sane layout.
func (c Config) withDefaults() Config {
	if c.NodeRadius <= 0 {
		c.NodeRadius = DefaultNodeRadius
	}
	if c.LevelHeight <= 0 {
		c.LevelHeight = DefaultLevelHeight
	}
	if c.MinSlotWidth <= 0 {
		c.MinSlotWidth = DefaultMinSlotWidth
	}
	if c.TopMargin <= 0 {
		c.TopMargin = DefaultTopMargin
	}
	if c.SideMargin <= 0 {
		c.SideMargin = DefaultSideMargin
	}
	return c
}
