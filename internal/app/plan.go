package service

import (
	"fmt"

	"github.com/okian/birdplot/internal/adapters/render"
	"github.com/okian/birdplot/internal/adapters/report"
	"github.com/okian/birdplot/internal/domain/model"
	"github.com/okian/birdplot/internal/domain/projection"
	"github.com/okian/birdplot/internal/domain/radar"
	"github.com/okian/birdplot/pkg/metrics"
)

// job is one chart ready to render.
type job struct {
	kind   string
	path   string
	points []model.ProjectedPoint
	chart  render.RadarChart
}

// plan projects the batch and builds every chart of the run. It renders
// nothing, so any error here aborts before output is produced.
func (s *Service) plan(records []model.PersonRecord, rep *report.Report) ([]job, error) {
	points, err := projection.Project(records, s.maxValue)
	if err != nil {
		return nil, err
	}
	rep.Points = points

	var jobs []job
	switch s.graphType {
	case GraphScatter:
		jobs = append(jobs, s.scatterJob(points))
	case GraphRadar:
		jobs, err = s.radarJobs(records, rep)
	case GraphAll:
		jobs, err = s.radarJobs(records, rep)
		jobs = append([]job{s.scatterJob(points)}, jobs...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGraphType, s.graphType)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		if _, dup := seen[j.path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrPathCollision, j.path)
		}
		seen[j.path] = struct{}{}
	}
	return jobs, nil
}

func (s *Service) scatterJob(points []model.ProjectedPoint) job {
	return job{kind: metrics.KindScatter, path: s.layout.Scatter(), points: points}
}

// radarJobs builds, in order: each person alone and against the team
// average, every unordered pair, then the team average alone.
func (s *Service) radarJobs(records []model.PersonRecord, rep *report.Report) ([]job, error) {
	team, err := model.TeamAverage(records)
	if err != nil {
		return nil, err
	}
	teamPoly := radar.PolygonFor(team)

	polys := make([]radar.Polygon, len(records))
	for i, r := range records {
		polys[i] = radar.PolygonFor(r)
	}

	jobs := make([]job, 0, 2*len(records)+len(records)*(len(records)-1)/2+1)
	for i, r := range records {
		jobs = append(jobs, job{
			kind:  metrics.KindRadar,
			path:  s.layout.Individual(r.Name),
			chart: single(r, polys[i]),
		})

		path := s.layout.VersusTeam(r.Name)
		chart, err := s.compare(r, polys[i], team, teamPoly, path, rep)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{kind: metrics.KindRadarTeam, path: path, chart: chart})
	}

	for i := 0; i < len(records); i++ {
		for k := i + 1; k < len(records); k++ {
			path := s.layout.Pair(records[i].Name, records[k].Name)
			chart, err := s.compare(records[i], polys[i], records[k], polys[k], path, rep)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job{kind: metrics.KindRadarPair, path: path, chart: chart})
		}
	}

	jobs = append(jobs, job{
		kind:  metrics.KindTeamAvg,
		path:  s.layout.TeamAverage(),
		chart: single(team, teamPoly),
	})
	return jobs, nil
}

func single(r model.PersonRecord, p radar.Polygon) render.RadarChart {
	return render.RadarChart{
		Title:  r.Title(),
		Series: []render.Series{{Label: r.Title(), Polygon: p}},
	}
}

// compare estimates the overlap of a and b and builds their comparison chart.
func (s *Service) compare(a model.PersonRecord, pa radar.Polygon, b model.PersonRecord, pb radar.Polygon, path string, rep *report.Report) (render.RadarChart, error) {
	pct, err := s.estimator.Estimate(pa, pb)
	if err != nil {
		return render.RadarChart{}, fmt.Errorf("overlap %s vs %s: %w", a.Name, b.Name, err)
	}
	if s.metrics != nil {
		s.metrics.RecordOverlap(pct)
	}
	rep.AddOverlap(a.Name, b.Name, pct, path)

	return render.RadarChart{
		Title: fmt.Sprintf("%s vs %s (overlap %.1f%%)", a.Name, b.Name, pct),
		Series: []render.Series{
			{Label: a.Title(), Polygon: pa},
			{Label: b.Title(), Polygon: pb},
		},
	}, nil
}
