package config

import (
	"fmt"
	"time"

	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/storage"
	"github.com/kbukum/groupchain/validation"
)

// Step operations understood by the CLI.
const (
	OpSubtract            = "subtract"
	OpAdd                 = "add"
	OpMultiply            = "multiply"
	OpDivide              = "divide"
	OpResetStartingValues = "reset_starting_values"
	OpResetIndex          = "reset_index"
)

// Naming modes for exported column labels.
const (
	NamingJoin = "join"
	NamingNone = "none"
)

// AppConfig is the full configuration of a groupchain run.
type AppConfig struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging logger.Config  `yaml:"logging" mapstructure:"logging"`
	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
	Input   InputConfig    `yaml:"input" mapstructure:"input"`
	Group   GroupConfig    `yaml:"group" mapstructure:"group"`
	Steps   []StepConfig   `yaml:"steps" mapstructure:"steps" validate:"dive"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
	Tracing TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
}

// InputConfig locates and parses the input CSV.
type InputConfig struct {
	Path        string `yaml:"path" mapstructure:"path" validate:"required"`
	IndexColumn string `yaml:"index_column" mapstructure:"index_column"`
	IndexType   string `yaml:"index_type" mapstructure:"index_type" validate:"oneof=string number datetime"`
	Delimiter   string `yaml:"delimiter" mapstructure:"delimiter" validate:"max=1"`
}

// GroupConfig selects the grouping column.
type GroupConfig struct {
	Column    string `yaml:"column" mapstructure:"column" validate:"required"`
	KeepOrder bool   `yaml:"keep_order" mapstructure:"keep_order"`
}

// StepConfig describes one pipeline step. Index and Column are labels;
// Position and ColumnPosition are 0-based positions. A label and a position
// for the same axis are mutually exclusive.
type StepConfig struct {
	Op             string   `yaml:"op" mapstructure:"op" validate:"required,oneof=subtract add multiply divide reset_starting_values reset_index"`
	Index          string   `yaml:"index" mapstructure:"index"`
	Position       *int     `yaml:"position" mapstructure:"position" validate:"omitempty,gte=0"`
	Column         string   `yaml:"column" mapstructure:"column"`
	ColumnPosition *int     `yaml:"column_position" mapstructure:"column_position" validate:"omitempty,gte=0"`
	OnlyGroups     []string `yaml:"only_groups" mapstructure:"only_groups"`
	IgnoreGroups   []string `yaml:"ignore_groups" mapstructure:"ignore_groups"`
	HandleFuture   *bool    `yaml:"handle_future" mapstructure:"handle_future"`
	ResetPosition  int      `yaml:"reset_position" mapstructure:"reset_position" validate:"gte=0"`
}

// IsArithmetic reports whether the step is one of the four arithmetic ops.
func (s *StepConfig) IsArithmetic() bool {
	switch s.Op {
	case OpSubtract, OpAdd, OpMultiply, OpDivide:
		return true
	}
	return false
}

func (s *StepConfig) validate(v *validation.Validator, field string) {
	v.Check(s.Index == "" || s.Position == nil, field+".index", "index and position are mutually exclusive")
	v.Check(s.Column == "" || s.ColumnPosition == nil, field+".column", "column and column_position are mutually exclusive")
	hasTarget := s.Index != "" || s.Position != nil || s.Column != "" || s.ColumnPosition != nil
	v.Check(s.IsArithmetic() || !hasTarget, field, s.Op+" takes no index or column")
	v.Check(s.Op == OpResetIndex || (s.HandleFuture == nil && s.ResetPosition == 0),
		field, "handle_future and reset_position only apply to reset_index")
}

// OutputConfig controls the exported JSON document.
type OutputConfig struct {
	Path      string `yaml:"path" mapstructure:"path" validate:"required"`
	IDField   string `yaml:"id_field" mapstructure:"id_field"`
	Naming    string `yaml:"naming" mapstructure:"naming" validate:"oneof=join none"`
	Separator string `yaml:"separator" mapstructure:"separator"`
	Axis      string `yaml:"axis" mapstructure:"axis" validate:"oneof=index rows columns"`
}

// TracingConfig enables OpenTelemetry export.
type TracingConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Metrics         bool          `yaml:"metrics" mapstructure:"metrics"`
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`
}

// Defaults returns the default value of every configuration key. Passing it
// to LoadConfig through WithDefaults also lets environment variables
// override keys that the config file omits.
func Defaults() map[string]any {
	return map[string]any{
		"name":        "groupchain",
		"environment": EnvDevelopment,
		"version":     "",
		"debug":       false,

		"logging.level":     "info",
		"logging.format":    "console",
		"logging.output":    "stderr",
		"logging.no_color":  false,
		"logging.timestamp": true,
		"logging.caller":    false,

		"storage.provider":         storage.DefaultProvider,
		"storage.base_path":        storage.DefaultBasePath,
		"storage.bucket":           "",
		"storage.region":           "",
		"storage.endpoint":         "",
		"storage.access_key":       "",
		"storage.secret_key":       "",
		"storage.force_path_style": false,
		"storage.max_attempts":     3,
		"storage.retry_backoff":    "200ms",

		"input.path":         "",
		"input.index_column": "",
		"input.index_type":   "string",
		"input.delimiter":    "",

		"group.column":     "",
		"group.keep_order": false,

		"output.path":      "",
		"output.id_field":  "idx_",
		"output.naming":    NamingJoin,
		"output.separator": "|",
		"output.axis":      "columns",

		"tracing.enabled":          false,
		"tracing.endpoint":         "localhost:4318",
		"tracing.insecure":         true,
		"tracing.sample_rate":      1.0,
		"tracing.metrics":          false,
		"tracing.metrics_interval": "15s",
	}
}

// ApplyDefaults fills zero values the loader could not supply.
func (c *AppConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Storage.ApplyDefaults()
	if c.Input.IndexType == "" {
		c.Input.IndexType = "string"
	}
	if c.Output.IDField == "" {
		c.Output.IDField = "idx_"
	}
	if c.Output.Naming == "" {
		c.Output.Naming = NamingJoin
	}
	if c.Output.Naming == NamingJoin && c.Output.Separator == "" {
		c.Output.Separator = "|"
	}
	if c.Output.Axis == "" {
		c.Output.Axis = "columns"
	}
	if c.Tracing.MetricsInterval <= 0 {
		c.Tracing.MetricsInterval = 15 * time.Second
	}
}

// Validate checks every section and collects all problems into one error.
func (c *AppConfig) Validate() error {
	v := validation.New()
	v.Merge("", validation.Struct(c))
	v.Check(!c.Tracing.Enabled || c.Tracing.Endpoint != "", "tracing.endpoint", "is required when tracing is enabled")
	for i := range c.Steps {
		c.Steps[i].validate(v, fmt.Sprintf("steps[%d]", i))
	}
	return v.Err()
}
