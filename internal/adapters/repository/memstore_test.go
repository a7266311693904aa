package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/ecoscore/internal/adapters/repository"
	"github.com/okian/ecoscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func submission(name string) model.Submission {
	return model.Submission{
		ProductName: name,
		Score:       42,
		Rating:      model.RatingD,
		Issues:      []string{model.IssuePlastic},
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(ctx, repository.WithCapacity(8))

		Convey("Then it holds nothing", func() {
			all, err := store.All(ctx)
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When N submissions are appended", func() {
			const n = 25
			for i := 0; i < n; i++ {
				So(store.Append(ctx, submission(fmt.Sprintf("p-%02d", i))), ShouldBeNil)
			}

			Convey("Then All returns exactly N in insertion order", func() {
				all, err := store.All(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, n)
				for i, s := range all {
					So(s.ProductName, ShouldEqual, fmt.Sprintf("p-%02d", i))
				}
				So(store.Count(ctx), ShouldEqual, n)
			})
		})

		Convey("When a snapshot is modified by the caller", func() {
			So(store.Append(ctx, submission("mug")), ShouldBeNil)
			snap, _ := store.All(ctx)
			snap[0].ProductName = "changed"
			snap[0].Issues[0] = "changed"

			Convey("Then stored data is unaffected", func() {
				again, _ := store.All(ctx)
				So(again[0].ProductName, ShouldEqual, "mug")
				So(again[0].Issues[0], ShouldEqual, model.IssuePlastic)
			})
		})

		Convey("When the caller edits the issues slice after appending", func() {
			s := submission("bottle")
			So(store.Append(ctx, s), ShouldBeNil)
			s.Issues[0] = "changed"

			Convey("Then stored issues are unaffected", func() {
				all, _ := store.All(ctx)
				So(all[0].Issues, ShouldResemble, []string{model.IssuePlastic})
			})
		})

		Convey("When a submission lacks a rating", func() {
			err := store.Append(ctx, model.Submission{ProductName: "x"})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidSubmission), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			Convey("Then append fails without recording", func() {
				So(store.Append(cctx, submission("late")), ShouldNotBeNil)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the store is closed", func() {
			So(store.Append(ctx, submission("before")), ShouldBeNil)
			So(store.Close(), ShouldBeNil)

			Convey("Then appends fail but reads still work", func() {
				So(errors.Is(store.Append(ctx, submission("after")), repository.ErrClosed), ShouldBeTrue)
				all, err := store.All(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 1)
			})
		})
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		var (
			hookMu  sync.Mutex
			maxSeen int
		)
		store := repository.NewMemoryStore(ctx, repository.WithOnAppend(func(size int) {
			hookMu.Lock()
			if size > maxSeen {
				maxSeen = size
			}
			hookMu.Unlock()
		}))

		const writers, perWriter = 16, 100
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					_ = store.Append(ctx, submission(fmt.Sprintf("w%d-%d", w, i)))
				}
			}(w)
		}
		for r := 0; r < 4; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					snap, _ := store.All(ctx)
					for _, s := range snap {
						if s.Rating == "" {
							panic("torn read")
						}
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then no append is lost", func() {
			So(store.Count(ctx), ShouldEqual, writers*perWriter)
			So(maxSeen, ShouldEqual, writers*perWriter)
		})

		Convey("Then each writer's records keep their relative order", func() {
			all, _ := store.All(ctx)
			next := make(map[int]int)
			for _, s := range all {
				var w, i int
				_, err := fmt.Sscanf(s.ProductName, "w%d-%d", &w, &i)
				So(err, ShouldBeNil)
				So(i, ShouldEqual, next[w])
				next[w]++
			}
		})
	})
}
