package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/birdplot/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Chart.MaxValue, convey.ShouldEqual, 25)
				convey.So(cfg.Chart.DPI, convey.ShouldEqual, 100)
				convey.So(cfg.Colors.Alpha, convey.ShouldEqual, 0.3)
				convey.So(cfg.Paths.BirdsDir, convey.ShouldEqual, "birds")
			})
		})

		convey.Convey("When loading config with a TOML file", func() {
			tomlContent := `
log_level = "debug"
graph_type = "radar"

[chart]
figure_size = [8, 6]
max_value = 30
grid_step = 10
seed = 7

[paths]
birds_dir = "assets/birds"
output_dir = "charts"

[colors]
top_right = "#ffeeaa"
alpha = 0.5
`
			path := createTempConfigFile(t, "config.toml", tomlContent)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then file values override defaults and the rest is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.GraphType, convey.ShouldEqual, "radar")
				convey.So(cfg.Chart.FigureSize, convey.ShouldResemble, []float64{8, 6})
				convey.So(cfg.Chart.MaxValue, convey.ShouldEqual, 30)
				convey.So(cfg.Chart.GridStep, convey.ShouldEqual, 10)
				convey.So(cfg.Chart.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.Chart.Samples, convey.ShouldEqual, 10_000)
				convey.So(cfg.Paths.BirdsDir, convey.ShouldEqual, "assets/birds")
				convey.So(cfg.Paths.OutputDir, convey.ShouldEqual, "charts")
				convey.So(cfg.Colors.TopRight, convey.ShouldEqual, "#ffeeaa")
				convey.So(cfg.Colors.BottomLeft, convey.ShouldEqual, "lightcoral")
				convey.So(cfg.Colors.Alpha, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
chart:
  max_value: 40
  samples: 500
output:
  report: run.json
`
			path := createTempConfigFile(t, "config.yaml", yamlContent)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should load from YAML", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Chart.MaxValue, convey.ShouldEqual, 40)
				convey.So(cfg.Chart.Samples, convey.ShouldEqual, 500)
				convey.So(cfg.Output.Report, convey.ShouldEqual, "run.json")
			})
		})

		convey.Convey("When the file path comes from the environment", func() {
			path := createTempConfigFile(t, "env.toml", "[chart]\nmax_value = 12\n")
			_ = os.Setenv(config.EnvConfigPath, path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Chart.MaxValue, convey.ShouldEqual, 12)
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, "config.toml", "[chart]\nmax_value = 30\ngrid_step = 10\n")
			_ = os.Setenv("BIRDPLOT_CHART__MAX_VALUE", "35")
			_ = os.Setenv("BIRDPLOT_LOG_LEVEL", "warn")
			_ = os.Setenv("BIRDPLOT_PATHS__OUTPUT_DIR", "out")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Chart.MaxValue, convey.ShouldEqual, 35)
				convey.So(cfg.Chart.GridStep, convey.ShouldEqual, 10)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.Paths.OutputDir, convey.ShouldEqual, "out")
			})
		})

		convey.Convey("When loading config with an invalid TOML file", func() {
			path := createTempConfigFile(t, "broken.toml", "[chart\nmax_value = ")

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			cfg, err := config.Load(ctx, "/non/existent/config.toml")

			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the file has an unsupported extension", func() {
			path := createTempConfigFile(t, "config.ini", "max_value=1")

			_, err := config.Load(ctx, path)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, ".ini")
		})

		convey.Convey("When values break validation rules", func() {
			path := createTempConfigFile(t, "bad.toml", `
graph_type = "pie"
[chart]
max_value = 0
samples = -1
[colors]
alpha = 2
top_left = "no-such-colour"
`)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then every failure is reported", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "graph_type")
				convey.So(err.Error(), convey.ShouldContainSubstring, "chart.max_value")
				convey.So(err.Error(), convey.ShouldContainSubstring, "chart.samples")
				convey.So(err.Error(), convey.ShouldContainSubstring, "colors.alpha")
				convey.So(err.Error(), convey.ShouldContainSubstring, "colors.top_left")
			})
		})

		convey.Convey("When an environment value is not numeric", func() {
			_ = os.Setenv("BIRDPLOT_CHART__MAX_VALUE", "big")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.So(cfg, convey.ShouldBeNil)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"BIRDPLOT_CONFIG",
		"BIRDPLOT_LOG_LEVEL",
		"BIRDPLOT_CHART__MAX_VALUE",
		"BIRDPLOT_PATHS__OUTPUT_DIR",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
