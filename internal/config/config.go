// Package config defines birdplot configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults; Load layers a file and
//     environment variables on top of it.
//   - Keys mirror config.toml: top-level log settings plus [chart], [paths],
//     [colors] and [output] tables.
//   - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Data is the path of the CSV score table.
	Data string `koanf:"data" validate:"required"`

	// GraphType selects which charts are produced: scatter, radar or all.
	GraphType string `koanf:"graph_type" validate:"oneof=scatter radar all"`

	Chart  ChartConfig  `koanf:"chart"`
	Paths  PathsConfig  `koanf:"paths"`
	Colors ColorsConfig `koanf:"colors"`
	Output OutputConfig `koanf:"output"`
}

// ChartConfig holds the geometry shared by every chart.
type ChartConfig struct {
	// FigureSize is the canvas size in inches (width, height).
	FigureSize []float64 `koanf:"figure_size" validate:"len=2,dive,gt=0"`

	// DPI converts FigureSize to pixels.
	DPI int `koanf:"dpi" validate:"gte=10,lte=600"`

	// MaxValue is the half-width of the plotted square and the scaling bound
	// of the biplot projection.
	MaxValue float64 `koanf:"max_value" validate:"gt=0"`

	// GridStep is the radius step between radar grid circles.
	GridStep float64 `koanf:"grid_step" validate:"gt=0"`

	// Samples is the Monte Carlo sample count of the overlap estimate.
	Samples int `koanf:"samples" validate:"gt=0"`

	// Seed makes overlap estimates reproducible. Zero means unseeded.
	Seed int64 `koanf:"seed"`

	// IconZoom scales the corner bird icons relative to their file size.
	IconZoom float64 `koanf:"icon_zoom" validate:"gte=0,lte=4"`
}

// PathsConfig locates input assets and output files.
type PathsConfig struct {
	BirdsDir  string `koanf:"birds_dir"`
	OutputDir string `koanf:"output_dir" validate:"required"`
}

// ColorsConfig holds quadrant and series colours as CSS names or #rrggbb.
type ColorsConfig struct {
	TopRight       string  `koanf:"top_right" validate:"required,hexcolor|colorname"`
	BottomRight    string  `koanf:"bottom_right" validate:"required,hexcolor|colorname"`
	TopLeft        string  `koanf:"top_left" validate:"required,hexcolor|colorname"`
	BottomLeft     string  `koanf:"bottom_left" validate:"required,hexcolor|colorname"`
	Alpha          float64 `koanf:"alpha" validate:"gte=0,lte=1"`
	Polygon        string  `koanf:"polygon" validate:"required,hexcolor|colorname"`
	PolygonCompare string  `koanf:"polygon_compare" validate:"required,hexcolor|colorname"`
	NameBox        string  `koanf:"name_box" validate:"required,hexcolor|colorname"`
}

// OutputConfig enables the optional run artefacts.
type OutputConfig struct {
	// Report is the path of the JSON run report; empty disables it.
	Report string `koanf:"report"`

	// MetricsTextfile is the path of the Prometheus textfile; empty disables it.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Data:      "data.csv",
		GraphType: "scatter",
		Chart: ChartConfig{
			FigureSize: []float64{10, 10},
			DPI:        100,
			MaxValue:   25,
			GridStep:   5,
			Samples:    10_000,
			Seed:       0,
			IconZoom:   0.2,
		},
		Paths: PathsConfig{
			BirdsDir:  "birds",
			OutputDir: "output",
		},
		Colors: ColorsConfig{
			TopRight:       "lightgreen",
			BottomRight:    "lightblue",
			TopLeft:        "lightyellow",
			BottomLeft:     "lightcoral",
			Alpha:          0.3,
			Polygon:        "steelblue",
			PolygonCompare: "darkorange",
			NameBox:        "lightblue",
		},
	}
}

// CanvasSize returns the pixel size derived from FigureSize and DPI.
func (c ChartConfig) CanvasSize() (width, height int) {
	if len(c.FigureSize) != 2 {
		return 0, 0
	}
	return int(c.FigureSize[0] * float64(c.DPI)), int(c.FigureSize[1] * float64(c.DPI))
}
