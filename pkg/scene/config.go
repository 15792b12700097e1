package scene

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/finnvoss/glowgraph/pkg/errors"
)

// =============================================================================
// Config - Numeric And Color Tuning
// =============================================================================

// Config carries all numeric and color tuning for the engine. Values are
// content decisions, not correctness ones; the choreography contracts hold for
// any positive tuning.
type Config struct {
	Forces  ForcesConfig        `toml:"forces"`
	Look    LookConfig          `toml:"look"`
	Colors  ColorsConfig        `toml:"colors"`
	Phases  PhasesConfig        `toml:"phases"`
	Bloom   BloomConfig         `toml:"bloom"`
	Palette map[Category]string `toml:"palette"`
}

// ForcesConfig tunes the physics solver.
type ForcesConfig struct {
	Width   float64 `toml:"width"` // bounding rectangle
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`

	Repulsion      float64 `toml:"repulsion"`       // pairwise push strength
	SpringLength   float64 `toml:"spring_length"`   // edge rest distance
	SpringStrength float64 `toml:"spring_strength"` // pull per unit displacement
	Centering      float64 `toml:"centering"`       // pull toward focal point
	CollideRadius  float64 `toml:"collide_radius"`  // minimum node separation

	AlphaStart float64 `toml:"alpha_start"` // initial solver energy
	AlphaDecay float64 `toml:"alpha_decay"` // per-tick decay factor
	AlphaMin   float64 `toml:"alpha_min"`   // below this the solver idles
	DragAlpha  float64 `toml:"drag_alpha"`  // energy held while dragging
	Damping    float64 `toml:"damping"`     // velocity damping per tick

	PointerRadius   float64 `toml:"pointer_radius"`   // attraction reach
	PointerStrength float64 `toml:"pointer_strength"` // velocity nudge scale
}

// LookConfig tunes resting element geometry.
type LookConfig struct {
	DotRadius    float64 `toml:"dot_radius"`
	RingRadius   float64 `toml:"ring_radius"`
	RingOpacity  float64 `toml:"ring_opacity"`
	EdgeWidth    float64 `toml:"edge_width"`
	EdgeOpacity  float64 `toml:"edge_opacity"`
	MarkerRadius float64 `toml:"marker_radius"`
}

// ColorsConfig names the non-category colors.
type ColorsConfig struct {
	Success  string `toml:"success"`
	Broken   string `toml:"broken"`
	Flash    string `toml:"flash"`
	Dimmed   string `toml:"dimmed"`
	EdgeRest string `toml:"edge_rest"`
	Marker   string `toml:"marker"`
}

// PhasesConfig tunes the per-phase choreography. Durations and offsets are
// seconds on the timeline clock.
type PhasesConfig struct {
	BreathePeriod      float64 `toml:"breathe_period"`       // half-period of the ambient loop
	BreatheScale       float64 `toml:"breathe_scale"`        // ring radius swell factor
	BreatheBrightScale float64 `toml:"breathe_bright_scale"` // swell factor after solidify

	BounceDuration float64 `toml:"bounce_duration"` // overshoot-then-settle
	FlashDuration  float64 `toml:"flash_duration"`
	DimDuration    float64 `toml:"dim_duration"`
	DimOpacity     float64 `toml:"dim_opacity"`
	MarchPeriod    float64 `toml:"march_period"` // dash-offset loop
	PulsePeriod    float64 `toml:"pulse_period"` // diagnostic ring pulse

	RepairStart    float64 `toml:"repair_start"`    // marker travel offset
	RepairDuration float64 `toml:"repair_duration"` // marker travel duration
	BurstDuration  float64 `toml:"burst_duration"`  // arrival ring burst

	RippleStep     float64 `toml:"ripple_step"`     // per-node solidify delay increment
	RippleDuration float64 `toml:"ripple_duration"` // per-node flash-then-settle
}

// BloomConfig tunes the procedural bloom layout.
type BloomConfig struct {
	Petals          int     `toml:"petals"`
	PetalRadius     float64 `toml:"petal_radius"`     // radial reach of a petal
	Jitter          float64 `toml:"jitter"`           // deterministic perturbation scale
	RevealSpan      float64 `toml:"reveal_span"`      // seconds across the full reveal
	RevealCurve     float64 `toml:"reveal_curve"`     // power applied to sort position
	BreatheFraction float64 `toml:"breathe_fraction"` // share of elements that keep breathing
}

// =============================================================================
// Defaults
// =============================================================================

// DefaultConfig returns the compiled-in tuning.
func DefaultConfig() *Config {
	return &Config{
		Forces: ForcesConfig{
			Width:           800,
			Height:          520,
			Padding:         40,
			Repulsion:       1800,
			SpringLength:    110,
			SpringStrength:  0.08,
			Centering:       0.012,
			CollideRadius:   34,
			AlphaStart:      0.6,
			AlphaDecay:      0.02,
			AlphaMin:        0.005,
			DragAlpha:       0.35,
			Damping:         0.85,
			PointerRadius:   140,
			PointerStrength: 0.18,
		},
		Look: LookConfig{
			DotRadius:    7,
			RingRadius:   12,
			RingOpacity:  0.35,
			EdgeWidth:    1.6,
			EdgeOpacity:  0.8,
			MarkerRadius: 5,
		},
		Colors: ColorsConfig{
			Success:  "#34d399",
			Broken:   "#f87171",
			Flash:    "#fbbf24",
			Dimmed:   "#475569",
			EdgeRest: "#64748b",
			Marker:   "#fbbf24",
		},
		Phases: PhasesConfig{
			BreathePeriod:      1.6,
			BreatheScale:       1.25,
			BreatheBrightScale: 1.45,
			BounceDuration:     0.6,
			FlashDuration:      0.25,
			DimDuration:        0.5,
			DimOpacity:         0.25,
			MarchPeriod:        0.8,
			PulsePeriod:        1.1,
			RepairStart:        0.35,
			RepairDuration:     1.5,
			BurstDuration:      0.7,
			RippleStep:         0.07,
			RippleDuration:     0.5,
		},
		Bloom: BloomConfig{
			Petals:          8,
			PetalRadius:     180,
			Jitter:          14,
			RevealSpan:      2.4,
			RevealCurve:     1.6,
			BreatheFraction: 0.4,
		},
		Palette: map[Category]string{
			CategoryConcept:  "#60a5fa",
			CategorySkill:    "#a78bfa",
			CategoryTool:     "#f472b6",
			CategoryPractice: "#2dd4bf",
		},
	}
}

// =============================================================================
// Loading And Validation
// =============================================================================

// Load reads a TOML tuning file over the defaults, so a file only needs the
// values it changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that durations are positive and colors parse.
func (c *Config) Validate() error {
	positives := map[string]float64{
		"forces.width":           c.Forces.Width,
		"forces.height":          c.Forces.Height,
		"forces.spring_length":   c.Forces.SpringLength,
		"forces.damping":         c.Forces.Damping,
		"phases.breathe_period":  c.Phases.BreathePeriod,
		"phases.bounce_duration": c.Phases.BounceDuration,
		"phases.repair_duration": c.Phases.RepairDuration,
		"phases.march_period":    c.Phases.MarchPeriod,
		"bloom.reveal_span":      c.Bloom.RevealSpan,
		"bloom.reveal_curve":     c.Bloom.RevealCurve,
	}
	for name, v := range positives {
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
		}
	}

	if c.Bloom.Petals < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "bloom.petals must be at least 1, got %d", c.Bloom.Petals)
	}
	if c.Bloom.BreatheFraction < 0 || c.Bloom.BreatheFraction > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"bloom.breathe_fraction must be in [0,1], got %g", c.Bloom.BreatheFraction)
	}

	colors := map[string]string{
		"colors.success":   c.Colors.Success,
		"colors.broken":    c.Colors.Broken,
		"colors.flash":     c.Colors.Flash,
		"colors.dimmed":    c.Colors.Dimmed,
		"colors.edge_rest": c.Colors.EdgeRest,
		"colors.marker":    c.Colors.Marker,
	}
	for name, hex := range colors {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: %q", name, hex)
		}
	}
	for cat, hex := range c.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.%s: %q", cat, hex)
		}
	}
	return nil
}

// CategoryColor returns the palette color for a category, falling back to the
// resting edge color for categories the palette does not name.
func (c *Config) CategoryColor(cat Category) string {
	if hex, ok := c.Palette[cat]; ok {
		return hex
	}
	return c.Colors.EdgeRest
}
