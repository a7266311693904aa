package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	repository "github.com/okian/ecoscore/internal/adapters/repository"
	"github.com/okian/ecoscore/internal/adapters/suggest"
	service "github.com/okian/ecoscore/internal/app"
	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/internal/domain/scoring"
	"github.com/okian/ecoscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeSuggester struct {
	mu     sync.Mutex
	result suggest.Result
	calls  int
}

func (f *fakeSuggester) Suggest(_ context.Context, _ model.Product) suggest.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result
}

func (f *fakeSuggester) ProviderName() string { return "fake" }

func mug() model.Product {
	return model.Product{
		Name:        "Mug",
		Materials:   []string{"Plastic"},
		WeightGrams: 300.0,
		Transport:   "Air",
		Packaging:   "Plastic wrap",
		GWP:         10.0,
		Cost:        20.0,
		Circularity: 80.0,
	}
}

func bottle() model.Product {
	return model.Product{
		Name:        "Bottle",
		Materials:   []string{"glass"},
		WeightGrams: 500.0,
		Transport:   "sea",
		Packaging:   "recyclable cardboard",
		GWP:         1.0,
		Cost:        2.0,
		Circularity: 90.0,
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithLogger(logger.Nop())}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Operations before Start are rejected", func() {
			_, err := svc.Score(context.Background(), mug())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.History(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			So(svc.GetStats()["started"], ShouldBeFalse)
		})

		Convey("When started", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then stats report the running state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["submissions"], ShouldEqual, 0)
				So(stats["suggestionProvider"], ShouldEqual, "none")
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})
}

func TestService_Score(t *testing.T) {
	Convey("Given a started service with a working suggester", t, func() {
		fake := &fakeSuggester{result: suggest.Result{Suggestions: []string{"Use glass", "Ship by sea"}}}
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		svc := startedService(service.WithSuggester(fake), service.WithClock(func() time.Time { return fixed }))
		defer svc.Stop()

		Convey("When scoring the worked example", func() {
			ev, err := svc.Score(context.Background(), mug())
			So(err, ShouldBeNil)

			Convey("Then the evaluation carries score, rating, issues and suggestions", func() {
				So(ev.ProductName, ShouldEqual, "Mug")
				So(ev.Score, ShouldEqual, 32.0)
				So(ev.Rating, ShouldEqual, model.RatingD)
				So(ev.Issues, ShouldResemble, []string{model.IssueAirTransport, model.IssuePlastic, model.IssueNonRecyclablePackaging})
				So(ev.Suggestions, ShouldResemble, []string{"Use glass", "Ship by sea"})
			})

			Convey("And the submission is recorded", func() {
				hist, err := svc.History(context.Background())
				So(err, ShouldBeNil)
				So(len(hist), ShouldEqual, 1)
				So(hist[0].ProductName, ShouldEqual, "Mug")
				So(hist[0].Score, ShouldEqual, 32.0)
				So(hist[0].Rating, ShouldEqual, model.RatingD)
				So(hist[0].ID, ShouldNotBeEmpty)
				So(hist[0].CreatedAt.Equal(fixed), ShouldBeTrue)
			})
		})

		Convey("When the numeric input is invalid", func() {
			p := mug()
			p.GWP = "abc"
			_, err := svc.Score(context.Background(), p)

			Convey("Then the error is reported and nothing is recorded", func() {
				So(errors.Is(err, scoring.ErrInvalidNumericFormat), ShouldBeTrue)
				hist, _ := svc.History(context.Background())
				So(hist, ShouldBeEmpty)
				So(fake.calls, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a suggester that fails", t, func() {
		fake := &fakeSuggester{result: suggest.Result{Err: suggest.ErrExternalService}}
		svc := startedService(service.WithSuggester(fake))
		defer svc.Stop()

		Convey("Then the placeholder replaces the suggestions and the submission is kept", func() {
			ev, err := svc.Score(context.Background(), bottle())
			So(err, ShouldBeNil)
			So(ev.Suggestions, ShouldResemble, []string{suggest.Placeholder})

			hist, _ := svc.History(context.Background())
			So(len(hist), ShouldEqual, 1)
		})
	})

	Convey("Given a suggester that returns no lines", t, func() {
		fake := &fakeSuggester{result: suggest.Result{}}
		svc := startedService(service.WithSuggester(fake))
		defer svc.Stop()

		Convey("Then the suggestions are an empty list", func() {
			ev, err := svc.Score(context.Background(), bottle())
			So(err, ShouldBeNil)
			So(ev.Suggestions, ShouldNotBeNil)
			So(ev.Suggestions, ShouldBeEmpty)
		})
	})

	Convey("Given configured default weights", t, func() {
		svc := startedService(service.WithDefaultWeights(scoring.Weights{Circularity: 1}))
		defer svc.Stop()

		Convey("Then scoring uses them", func() {
			ev, err := svc.Score(context.Background(), mug())
			So(err, ShouldBeNil)
			So(ev.Score, ShouldEqual, 80.0)
		})
	})

	Convey("Given a cancelled request context", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then the submission is still recorded", func() {
			_, err := svc.Score(ctx, bottle())
			So(err, ShouldBeNil)
			hist, _ := svc.History(context.Background())
			So(len(hist), ShouldEqual, 1)
		})
	})
}

func TestService_Summary(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("When nothing has been scored", func() {
			_, ok, err := svc.Summary(context.Background())
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When two products have been scored", func() {
			_, err := svc.Score(context.Background(), mug())
			So(err, ShouldBeNil)
			_, err = svc.Score(context.Background(), bottle())
			So(err, ShouldBeNil)

			sum, ok, err := svc.Summary(context.Background())
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(sum.TotalProducts, ShouldEqual, 2)
			So(sum.Ratings, ShouldResemble, map[model.Rating]int{model.RatingD: 1, model.RatingA: 1})
			So(sum.AverageScore, ShouldEqual, 61.0)
			So(sum.IssueLabels, ShouldResemble, []string{model.IssueAirTransport, model.IssuePlastic, model.IssueNonRecyclablePackaging})
			So(sum.IssueCounts, ShouldResemble, []int{1, 1, 1})
		})
	})
}

func TestService_ConcurrentScoring(t *testing.T) {
	Convey("Given a service scored from many goroutines", t, func() {
		store := repository.NewMemoryStore(context.Background())
		svc := startedService(service.WithStore(store))
		defer svc.Stop()

		const n = 200
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Score(context.Background(), bottle())
			}()
		}
		wg.Wait()

		Convey("Then every submission is recorded exactly once", func() {
			So(store.Count(context.Background()), ShouldEqual, n)
			sum, ok, err := svc.Summary(context.Background())
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(sum.TotalProducts, ShouldEqual, n)
		})
	})
}
