package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/birdplot/internal/adapters/report"
	"github.com/okian/birdplot/internal/config"
)

const sampleCSV = `Name,Note,Dove,Owl,Peacock,Eagle
Ann,coach,10,5,3,2
Bob,,2,3,10,7
Cy,NaN,4,9,1,6
`

func TestParseFlags(t *testing.T) {
	convey.Convey("Given command line flags", t, func() {
		var stderr bytes.Buffer

		convey.Convey("When all flags are given they override the config", func() {
			f, err := parseFlags([]string{
				"-config", "c.toml", "-data", "d.csv", "-graph-type", "radar",
				"-out", "o", "-report", "r.json", "-metrics", "m.prom", "-seed", "42",
			}, &stderr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(f.configPath, convey.ShouldEqual, "c.toml")

			cfg := config.New()
			f.apply(cfg)
			convey.So(cfg.Data, convey.ShouldEqual, "d.csv")
			convey.So(cfg.GraphType, convey.ShouldEqual, "radar")
			convey.So(cfg.Paths.OutputDir, convey.ShouldEqual, "o")
			convey.So(cfg.Output.Report, convey.ShouldEqual, "r.json")
			convey.So(cfg.Output.MetricsTextfile, convey.ShouldEqual, "m.prom")
			convey.So(cfg.Chart.Seed, convey.ShouldEqual, 42)
		})

		convey.Convey("When no flags are given the config is untouched", func() {
			f, err := parseFlags(nil, &stderr)
			convey.So(err, convey.ShouldBeNil)

			cfg := config.New()
			cfg.Chart.Seed = 9
			f.apply(cfg)
			want := config.New()
			want.Chart.Seed = 9
			convey.So(cfg, convey.ShouldResemble, want)
		})

		convey.Convey("When -seed 0 is given explicitly it still applies", func() {
			f, err := parseFlags([]string{"-seed", "0"}, &stderr)
			convey.So(err, convey.ShouldBeNil)

			cfg := config.New()
			cfg.Chart.Seed = 9
			f.apply(cfg)
			convey.So(cfg.Chart.Seed, convey.ShouldEqual, 0)
		})

		convey.Convey("When -help is given usage is printed", func() {
			_, err := parseFlags([]string{"-help"}, &stderr)
			convey.So(errors.Is(err, flag.ErrHelp), convey.ShouldBeTrue)
			convey.So(stderr.String(), convey.ShouldContainSubstring, "-graph-type")
		})

		convey.Convey("When positional arguments are given", func() {
			_, err := parseFlags([]string{"extra"}, &stderr)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a data table in a temp directory", t, func() {
		_ = os.Unsetenv(config.EnvConfigPath)
		_ = os.Setenv("BIRDPLOT_CHART__DPI", "20")
		defer func() { _ = os.Unsetenv("BIRDPLOT_CHART__DPI") }()

		dir := t.TempDir()
		data := filepath.Join(dir, "data.csv")
		convey.So(os.WriteFile(data, []byte(sampleCSV), 0o600), convey.ShouldBeNil)
		out := filepath.Join(dir, "out")
		var stderr bytes.Buffer

		convey.Convey("When every chart is requested", func() {
			rep := filepath.Join(dir, "report.json")
			prom := filepath.Join(dir, "birdplot.prom")
			err := run(context.Background(), []string{
				"-data", data, "-out", out, "-graph-type", "all",
				"-report", rep, "-metrics", prom, "-seed", "3",
			}, &stderr)

			convey.Convey("Then charts, report and metrics are written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(exists(filepath.Join(out, "scatter", "scatter_chart_all.png")), convey.ShouldBeTrue)
				convey.So(exists(filepath.Join(out, "radar", "pairs", "radar_chart_comparison_Bob_Cy.png")), convey.ShouldBeTrue)
				convey.So(exists(filepath.Join(out, "radar", "team", "radar_chart_team_average.png")), convey.ShouldBeTrue)

				r, rerr := report.Read(rep)
				convey.So(rerr, convey.ShouldBeNil)
				convey.So(r.Files, convey.ShouldHaveLength, 1+3+3+3+1)
				convey.So(r.Overlaps, convey.ShouldHaveLength, 6)

				metrics, merr := os.ReadFile(prom)
				convey.So(merr, convey.ShouldBeNil)
				convey.So(string(metrics), convey.ShouldContainSubstring, "birdplot_records_loaded 3")
			})

			convey.Convey("Then the missing icons are logged", func() {
				convey.So(stderr.String(), convey.ShouldContainSubstring, "icon not found")
			})
		})

		convey.Convey("When the graph type is invalid", func() {
			err := run(context.Background(), []string{"-data", data, "-out", out, "-graph-type", "pie"}, &stderr)

			convey.Convey("Then the config is rejected and nothing is written", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				_, statErr := os.Stat(out)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the data file does not exist", func() {
			err := run(context.Background(), []string{"-data", filepath.Join(dir, "missing.csv"), "-out", out}, &stderr)
			convey.So(errors.Is(err, os.ErrNotExist), convey.ShouldBeTrue)
		})

		convey.Convey("When a trait column is missing", func() {
			bad := filepath.Join(dir, "bad.csv")
			convey.So(os.WriteFile(bad, []byte("Name,Dove,Owl,Peacock\nAnn,1,2,3\n"), 0o600), convey.ShouldBeNil)
			err := run(context.Background(), []string{"-data", bad, "-out", out}, &stderr)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Eagle")
			_, statErr := os.Stat(out)
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
