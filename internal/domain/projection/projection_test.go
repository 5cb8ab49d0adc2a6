package projection_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/birdplot/internal/domain/model"
	"github.com/okian/birdplot/internal/domain/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScale(t *testing.T) {
	Convey("Given the tanh scaling transform", t, func() {
		Convey("When the series is all zeros", func() {
			for _, n := range []int{0, 1, 3, 10} {
				out := projection.Scale(make([]float64, n), 25)

				So(out, ShouldHaveLength, n)
				for _, v := range out {
					So(v, ShouldEqual, 0)
					So(math.IsNaN(v), ShouldBeFalse)
				}
			}
		})

		Convey("When values share a sign", func() {
			in := []float64{1, 2, 5, 8, 40}
			out := projection.Scale(in, 25)

			Convey("Then signs are kept, magnitudes grow and stay bounded", func() {
				for i := range out {
					So(out[i], ShouldBeGreaterThan, 0)
					So(out[i], ShouldBeLessThanOrEqualTo, 25)
					if i > 0 {
						So(out[i], ShouldBeGreaterThan, out[i-1])
					}
				}
				So(out[len(out)-1], ShouldAlmostEqual, 25*math.Tanh(1), 1e-9)
			})

			neg := projection.Scale([]float64{-1, -3, -9}, 10)
			So(neg[0], ShouldBeLessThan, 0)
			So(neg[1], ShouldBeLessThan, neg[0])
			So(neg[2], ShouldBeGreaterThanOrEqualTo, -10)
		})

		Convey("When the input is scaled", func() {
			in := []float64{3, -6}
			_ = projection.Scale(in, 25)

			Convey("Then the input slice is untouched", func() {
				So(in, ShouldResemble, []float64{3, -6})
			})
		})
	})
}

func TestBoost(t *testing.T) {
	Convey("Given records for the dominant-trait boost", t, func() {
		Convey("When exactly one trait is greatest", func() {
			adj := projection.Boost(model.PersonRecord{Dove: 3, Owl: 7, Peacock: 5, Eagle: 2})

			Convey("Then only that trait is boosted and truncated", func() {
				So(adj, ShouldResemble, model.AdjustedScores{Dove: 3, Owl: 8, Peacock: 5, Eagle: 2})
			})
		})

		Convey("When traits tie for greatest", func() {
			adj := projection.Boost(model.PersonRecord{Dove: 10, Owl: 10, Peacock: 0, Eagle: 0})

			Convey("Then all tied traits are boosted", func() {
				So(adj, ShouldResemble, model.AdjustedScores{Dove: 12, Owl: 12, Peacock: 0, Eagle: 0})
			})
		})

		Convey("When scores are fractional", func() {
			adj := projection.Boost(model.PersonRecord{Dove: 2.9, Owl: 4.5, Peacock: 1.2, Eagle: 0.5})

			Convey("Then every score is truncated toward zero", func() {
				So(adj, ShouldResemble, model.AdjustedScores{Dove: 2, Owl: 5, Peacock: 1, Eagle: 0})
			})
		})

		Convey("When all scores are zero", func() {
			So(projection.Boost(model.PersonRecord{}), ShouldResemble, model.AdjustedScores{})
		})
	})
}

func TestAxes(t *testing.T) {
	Convey("Given adjusted scores", t, func() {
		x, y := projection.Axes(model.AdjustedScores{Dove: 1, Owl: 2, Peacock: 4, Eagle: 8})

		Convey("Then the fixed contrasts are applied", func() {
			So(x, ShouldEqual, (1+2)-(4+8))
			So(y, ShouldEqual, (4+1)-(8+2))
		})
	})
}

func TestProject(t *testing.T) {
	Convey("Given a single dove/owl record", t, func() {
		records := []model.PersonRecord{{Name: "A", Note: "", Dove: 10, Owl: 10, Peacock: 0, Eagle: 0}}

		Convey("When projecting", func() {
			points, err := projection.Project(records, 25)

			Convey("Then X saturates at tanh(1) and Y is zero", func() {
				So(err, ShouldBeNil)
				So(points, ShouldHaveLength, 1)
				So(points[0].Name, ShouldEqual, "A")
				So(points[0].X, ShouldAlmostEqual, 25*math.Tanh(1), 1e-9)
				So(points[0].X, ShouldAlmostEqual, 0.7616*25, 0.01)
				So(points[0].Y, ShouldEqual, 0)
			})
		})
	})

	Convey("Given three all-zero records", t, func() {
		records := []model.PersonRecord{{Name: "A"}, {Name: "B"}, {Name: "C"}}

		Convey("When projecting", func() {
			points, err := projection.Project(records, 25)

			Convey("Then every point sits at the origin", func() {
				So(err, ShouldBeNil)
				for _, p := range points {
					So(p.X, ShouldEqual, 0)
					So(p.Y, ShouldEqual, 0)
				}
			})
		})
	})

	Convey("Given a record projected in two different populations", t, func() {
		me := model.PersonRecord{Name: "Me", Dove: 8, Owl: 2, Peacock: 1, Eagle: 1}
		small := []model.PersonRecord{me, {Name: "B", Dove: 2, Owl: 2, Peacock: 2, Eagle: 6}}
		large := append([]model.PersonRecord{}, small...)
		large = append(large, model.PersonRecord{Name: "Z", Dove: 40, Owl: 40, Peacock: 0, Eagle: 0})

		Convey("When projecting both batches", func() {
			a, errA := projection.Project(small, 25)
			b, errB := projection.Project(large, 25)

			Convey("Then the same record lands elsewhere because scaling is batch-relative", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a[0].X, ShouldNotAlmostEqual, b[0].X, 1e-6)
				So(b[0].X, ShouldBeLessThan, a[0].X)
			})
		})
	})

	Convey("Given a batch with one incomplete record", t, func() {
		records := []model.PersonRecord{
			{Name: "A", Dove: 1, Owl: 2, Peacock: 3, Eagle: 4},
			{Name: "B", Dove: 1, Owl: math.NaN(), Peacock: 3, Eagle: 4},
		}

		Convey("When projecting", func() {
			points, err := projection.Project(records, 25)

			Convey("Then the whole batch aborts with a MissingColumn error", func() {
				So(points, ShouldBeNil)
				So(errors.Is(err, model.ErrMissingColumn), ShouldBeTrue)

				var mc *model.MissingColumnError
				So(errors.As(err, &mc), ShouldBeTrue)
				So(mc.Record, ShouldEqual, "B")
				So(mc.Field, ShouldEqual, "Owl")
				So(mc.Row, ShouldEqual, 2)
			})
		})
	})
}
