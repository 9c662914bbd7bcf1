package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aanand-mishra/clubs-api/internal/config"
	"github.com/aanand-mishra/clubs-api/internal/storage"
	"github.com/aanand-mishra/clubs-api/internal/types"
	. "github.com/smartystreets/goconvey/convey"
)

// These tests need a disposable database; point CLUBHUB_TEST_POSTGRES_DSN at one.
func newTestStore(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("CLUBHUB_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CLUBHUB_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	p, err := New(ctx, &config.Config{PostgresDSN: dsn})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := p.Pool.Exec(ctx, "TRUNCATE club RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPostgresCRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty postgres store", t, func() {
		p := newTestStore(t)

		Convey("When a club is created with only a name", func() {
			id, err := p.CreateClub(ctx, types.Club{Name: "Chess Club"})
			So(err, ShouldBeNil)

			Convey("Then it reads back with defaults", func() {
				club, err := p.GetClubByID(ctx, id)
				So(err, ShouldBeNil)
				So(club, ShouldResemble, types.Club{ID: id, Name: "Chess Club"})

				clubs, err := p.GetClubs(ctx)
				So(err, ShouldBeNil)
				So(clubs, ShouldResemble, []types.Club{club})
			})

			Convey("Then deleting it twice gives ok then not found", func() {
				So(p.DeleteClubByID(ctx, id), ShouldBeNil)
				So(errors.Is(p.DeleteClubByID(ctx, id), storage.ErrNotFound), ShouldBeTrue)
				_, err := p.GetClubByID(ctx, id)
				So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When memberCount does not fit in 32 bits", func() {
			id, err := p.CreateClub(ctx, types.Club{Name: "Huge", MemberCount: 1 << 40})
			So(err, ShouldBeNil)

			Convey("Then it reads back unchanged", func() {
				club, err := p.GetClubByID(ctx, id)
				So(err, ShouldBeNil)
				So(club.MemberCount, ShouldEqual, int64(1<<40))
			})
		})

		Convey("Then the pool answers pings", func() {
			So(p.Ping(ctx), ShouldBeNil)
		})
	})
}

func TestNewRejectsBadDSN(t *testing.T) {
	Convey("Given a DSN that cannot be parsed", t, func() {
		_, err := New(context.Background(), &config.Config{PostgresDSN: "postgres://%zz"})

		Convey("Then New fails without connecting", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "parse dsn")
		})
	})
}
