package filter

// Mode is the strategy a Config selects.
type Mode string

const (
	// ModeAll keeps every entry.
	ModeAll Mode = "all"
	// ModeInclude keeps only entries matching the include rules.
	ModeInclude Mode = "include"
	// ModeIgnore drops entries matching the ignore rules.
	ModeIgnore Mode = "ignore"
)

// Config is a filter configuration. It is never modified by the engine.
type Config struct {
	Include *RuleSet `yaml:"include,omitempty" json:"include,omitempty"`
	Ignore  *RuleSet `yaml:"ignore,omitempty" json:"ignore,omitempty"`
}

// Mode returns the strategy the engine will apply. A populated include set
// wins over any ignore rules.
func (c *Config) Mode() Mode {
	switch {
	case c == nil:
		return ModeAll
	case !c.Include.IsEmpty():
		return ModeInclude
	case !c.Ignore.IsEmpty():
		return ModeIgnore
	default:
		return ModeAll
	}
}

// HasRules reports whether any include or ignore pattern is configured.
func (c *Config) HasRules() bool {
	return c.Mode() != ModeAll
}

// Validate compiles both rule sets, including the ignore set that include
// mode never evaluates, and returns the first *PatternError.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if _, err := c.Include.Compile(); err != nil {
		return err
	}
	_, err := c.Ignore.Compile()
	return err
}
