package migrations_test

import (
	"errors"
	"testing"

	"football-league-api/migrations"
	"football-league-api/packages/core/testutil"

	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"
)

func TestMigrator(t *testing.T) {
	Convey("Given a migrator with two migrations", t, func() {
		db := testutil.NewDB(t)
		migrator, err := migrations.NewMigrator(db)
		So(err, ShouldBeNil)

		var ups, downs []string
		define := func(name string) migrations.MigrationDefinition {
			return migrations.MigrationDefinition{
				Name: name,
				Up: func(*gorm.DB) error {
					ups = append(ups, name)
					return nil
				},
				Down: func(*gorm.DB) error {
					downs = append(downs, name)
					return nil
				},
			}
		}
		migrator.AddMigration(define("001_first"))
		migrator.AddMigration(define("002_second"))

		Convey("When migrating twice", func() {
			So(migrator.Migrate(), ShouldBeNil)
			So(migrator.Migrate(), ShouldBeNil)

			Convey("Then each migration runs once in the first batch", func() {
				So(ups, ShouldResemble, []string{"001_first", "002_second"})

				applied, err := migrator.Status()
				So(err, ShouldBeNil)
				So(applied, ShouldHaveLength, 2)
				So(applied[0].Batch, ShouldEqual, 1)
				So(applied[1].Batch, ShouldEqual, 1)
			})

			Convey("Then a later migration lands in a new batch and rolls back alone", func() {
				migrator.AddMigration(define("003_third"))
				So(migrator.Migrate(), ShouldBeNil)

				applied, err := migrator.Status()
				So(err, ShouldBeNil)
				So(applied[2].Batch, ShouldEqual, 2)

				So(migrator.Rollback(1), ShouldBeNil)
				So(downs, ShouldResemble, []string{"003_third"})

				applied, err = migrator.Status()
				So(err, ShouldBeNil)
				So(applied, ShouldHaveLength, 2)
			})

			Convey("Then a rollback undoes the batch newest first", func() {
				So(migrator.Rollback(1), ShouldBeNil)
				So(downs, ShouldResemble, []string{"002_second", "001_first"})

				applied, err := migrator.Status()
				So(err, ShouldBeNil)
				So(applied, ShouldBeEmpty)
			})
		})

		Convey("When a migration fails", func() {
			migrator.AddMigration(migrations.MigrationDefinition{
				Name: "003_broken",
				Up:   func(*gorm.DB) error { return errors.New("boom") },
			})

			err := migrator.Migrate()

			Convey("Then it is not recorded", func() {
				So(err, ShouldNotBeNil)
				applied, statusErr := migrator.Status()
				So(statusErr, ShouldBeNil)
				So(applied, ShouldHaveLength, 2)
			})
		})
	})

	Convey("The league migrations are ordered and reversible", t, func() {
		all := migrations.GetAllMigrations()
		So(all, ShouldHaveLength, 2)
		So(all[0].Name, ShouldBeLessThan, all[1].Name)
		for _, migration := range all {
			So(migration.Up, ShouldNotBeNil)
			So(migration.Down, ShouldNotBeNil)
		}
	})
}
