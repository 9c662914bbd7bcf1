package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aanand-mishra/clubs-api/internal/config"
	"github.com/aanand-mishra/clubs-api/internal/storage"
	"github.com/aanand-mishra/clubs-api/internal/types"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "clubs.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := newTestStore(t)

		Convey("Then listing returns an empty, non-nil slice", func() {
			clubs, err := s.GetClubs(ctx)
			So(err, ShouldBeNil)
			So(clubs, ShouldNotBeNil)
			So(clubs, ShouldBeEmpty)
		})

		Convey("When a club is created", func() {
			id, err := s.CreateClub(ctx, types.Club{Name: "Chess Club", MemberCount: 12})
			So(err, ShouldBeNil)

			Convey("Then it gets id 1 and reads back with defaults", func() {
				So(id, ShouldEqual, 1)
				club, err := s.GetClubByID(ctx, id)
				So(err, ShouldBeNil)
				So(club, ShouldResemble, types.Club{ID: 1, Name: "Chess Club", MemberCount: 12})
			})

			Convey("And further clubs get increasing ids in list order", func() {
				id2, err := s.CreateClub(ctx, types.Club{Name: "Drama"})
				So(err, ShouldBeNil)
				id3, err := s.CreateClub(ctx, types.Club{Name: "Robotics", Description: "bots", Image: "r.png"})
				So(err, ShouldBeNil)
				So(id2, ShouldBeGreaterThan, id)
				So(id3, ShouldBeGreaterThan, id2)

				clubs, err := s.GetClubs(ctx)
				So(err, ShouldBeNil)
				So(len(clubs), ShouldEqual, 3)
				So(clubs[0].Name, ShouldEqual, "Chess Club")
				So(clubs[1].Name, ShouldEqual, "Drama")
				So(clubs[2], ShouldResemble, types.Club{ID: id3, Name: "Robotics", Description: "bots", Image: "r.png"})
			})

			Convey("And deleting it removes it", func() {
				So(s.DeleteClubByID(ctx, id), ShouldBeNil)

				_, err := s.GetClubByID(ctx, id)
				So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)

				Convey("Then a second delete reports not found", func() {
					So(errors.Is(s.DeleteClubByID(ctx, id), storage.ErrNotFound), ShouldBeTrue)
				})

				Convey("Then the next insert does not reuse the id", func() {
					next, err := s.CreateClub(ctx, types.Club{Name: "Again"})
					So(err, ShouldBeNil)
					So(next, ShouldBeGreaterThan, id)
				})
			})
		})

		Convey("When memberCount does not fit in 32 bits", func() {
			id, err := s.CreateClub(ctx, types.Club{Name: "Huge", MemberCount: 1 << 40})
			So(err, ShouldBeNil)

			Convey("Then it reads back unchanged", func() {
				club, err := s.GetClubByID(ctx, id)
				So(err, ShouldBeNil)
				So(club.MemberCount, ShouldEqual, int64(1<<40))
			})
		})

		Convey("When fetching an unknown id", func() {
			_, err := s.GetClubByID(ctx, 42)

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting an unknown id", func() {
			err := s.DeleteClubByID(ctx, 42)

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a row holds NULL optional columns", func() {
			_, err := s.Db.Exec("INSERT INTO club (name, description, memberCount, image) VALUES ('Bare', NULL, NULL, NULL)")
			So(err, ShouldBeNil)

			Convey("Then it reads back with empty defaults", func() {
				clubs, err := s.GetClubs(ctx)
				So(err, ShouldBeNil)
				So(clubs, ShouldResemble, []types.Club{{ID: 1, Name: "Bare"}})
			})
		})

		Convey("When the pool is closed", func() {
			So(s.Close(), ShouldBeNil)

			Convey("Then operations fail with a store error", func() {
				_, err := s.GetClubs(ctx)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, storage.ErrNotFound), ShouldBeFalse)
				So(s.Ping(ctx), ShouldNotBeNil)
			})
		})
	})
}

func TestSQLiteConcurrentDelete(t *testing.T) {
	Convey("Given one club and many concurrent deletes of it", t, func() {
		ctx := context.Background()
		s := newTestStore(t)
		id, err := s.CreateClub(ctx, types.Club{Name: "Contested"})
		So(err, ShouldBeNil)

		const workers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok       int
			notFound int
			other    []error
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.DeleteClubByID(ctx, id)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, storage.ErrNotFound):
					notFound++
				default:
					other = append(other, err)
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one succeeds and the rest see not found", func() {
			So(other, ShouldBeEmpty)
			So(ok, ShouldEqual, 1)
			So(notFound, ShouldEqual, workers-1)
		})
	})
}

func TestDSN(t *testing.T) {
	Convey("Given storage paths", t, func() {
		So(dsn("clubs.db"), ShouldEqual, "clubs.db?_busy_timeout=5000")
		So(dsn("file:clubs.db?cache=shared"), ShouldEqual, "file:clubs.db?cache=shared&_busy_timeout=5000")
	})
}
