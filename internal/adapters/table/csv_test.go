package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/birdplot/internal/adapters/table"
	"github.com/okian/birdplot/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRead(t *testing.T) {
	convey.Convey("Given a CSV table", t, func() {
		convey.Convey("When every column is present", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\n" +
				"Alice,P/D,10,4,12.5,3\n" +
				"Bob,,1,2,3,4\n" +
				"Carol,NaN,0,0,0,0\n"

			records, err := table.Read(strings.NewReader(in))

			convey.Convey("Then typed records are returned in file order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 3)
				convey.So(records[0], convey.ShouldResemble, model.PersonRecord{Name: "Alice", Note: "P/D", Dove: 10, Owl: 4, Peacock: 12.5, Eagle: 3})
				convey.So(records[1].Note, convey.ShouldEqual, "")
				convey.So(records[2].Note, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When columns are reordered and Note is absent", func() {
			in := "Eagle, Peacock, Owl, Dove, Name\n1, 2, 3, 4, Dan\n"

			records, err := table.Read(strings.NewReader(in))

			convey.So(err, convey.ShouldBeNil)
			convey.So(records[0], convey.ShouldResemble, model.PersonRecord{Name: "Dan", Dove: 4, Owl: 3, Peacock: 2, Eagle: 1})
		})

		convey.Convey("When a trait column is missing from the header", func() {
			in := "Name,Note,Dove,Owl,Peacock\nAlice,,1,2,3\n"

			_, err := table.Read(strings.NewReader(in))

			convey.Convey("Then a MissingColumn error names the column", func() {
				var mc *model.MissingColumnError
				convey.So(errors.As(err, &mc), convey.ShouldBeTrue)
				convey.So(mc.Field, convey.ShouldEqual, "Eagle")
			})
		})

		convey.Convey("When a trait cell is empty", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,2,3,4\nBob,,1,,3,4\n"

			_, err := table.Read(strings.NewReader(in))

			convey.Convey("Then the error names the record, row and field", func() {
				var mc *model.MissingColumnError
				convey.So(errors.As(err, &mc), convey.ShouldBeTrue)
				convey.So(mc.Record, convey.ShouldEqual, "Bob")
				convey.So(mc.Row, convey.ShouldEqual, 2)
				convey.So(mc.Field, convey.ShouldEqual, "Owl")
			})
		})

		convey.Convey("When a row is short", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,2\n"

			_, err := table.Read(strings.NewReader(in))
			convey.So(errors.Is(err, model.ErrMissingColumn), convey.ShouldBeTrue)
		})

		convey.Convey("When a cell is not numeric", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,two,3,4\n"

			_, err := table.Read(strings.NewReader(in))
			convey.So(errors.Is(err, table.ErrParse), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Owl")
		})

		convey.Convey("When a score is negative", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,2,-3,4\n"

			_, err := table.Read(strings.NewReader(in))
			convey.So(errors.Is(err, model.ErrInvalidScore), convey.ShouldBeTrue)
		})

		convey.Convey("When a name repeats", func() {
			in := "Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,2,3,4\nAlice,,4,3,2,1\n"

			_, err := table.Read(strings.NewReader(in))
			convey.So(errors.Is(err, table.ErrDuplicateName), convey.ShouldBeTrue)
		})

		convey.Convey("When the file is empty or has only a header", func() {
			_, err := table.Read(strings.NewReader(""))
			convey.So(err, convey.ShouldEqual, table.ErrEmptyTable)

			_, err = table.Read(strings.NewReader("Name,Note,Dove,Owl,Peacock,Eagle\n"))
			convey.So(err, convey.ShouldEqual, table.ErrEmptyTable)
		})

		convey.Convey("When the file starts with a byte order mark", func() {
			in := "\ufeffName,Dove,Owl,Peacock,Eagle\nEve,1,1,1,1\n"

			records, err := table.Read(strings.NewReader(in))
			convey.So(err, convey.ShouldBeNil)
			convey.So(records[0].Name, convey.ShouldEqual, "Eve")
		})
	})
}

func TestLoad(t *testing.T) {
	convey.Convey("Given a CSV file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.csv")
		err := os.WriteFile(path, []byte("Name,Note,Dove,Owl,Peacock,Eagle\nAlice,,1,2,3,4\n"), 0o600)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When loading it", func() {
			records, err := table.Load(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(records, convey.ShouldHaveLength, 1)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := table.Load(filepath.Join(dir, "missing.csv"))
			convey.So(errors.Is(err, os.ErrNotExist), convey.ShouldBeTrue)
		})
	})
}
