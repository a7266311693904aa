package summary_test

import (
	"testing"

	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func sub(score float64, rating model.Rating, issues ...string) model.Submission {
	return model.Submission{ProductName: "p", Score: score, Rating: rating, Issues: issues}
}

func TestSummarize(t *testing.T) {
	Convey("Given no submissions", t, func() {
		s, ok := summary.Summarize(nil)

		Convey("Then it reports no data instead of dividing by zero", func() {
			So(ok, ShouldBeFalse)
			So(s.TotalProducts, ShouldEqual, 0)
		})
	})

	Convey("Given a handful of submissions", t, func() {
		subs := []model.Submission{
			sub(32, model.RatingD, "Air transport", "Non-recyclable packaging"),
			sub(90, model.RatingA),
			sub(71.5, model.RatingB, "Non-recyclable packaging"),
			sub(33.33, model.RatingD, "Use of plastic", "Non-recyclable packaging"),
		}

		s, ok := summary.Summarize(subs)

		Convey("Then totals and averages are computed", func() {
			So(ok, ShouldBeTrue)
			So(s.TotalProducts, ShouldEqual, 4)
			// (32 + 90 + 71.5 + 33.33) / 4 = 56.7075
			So(s.AverageScore, ShouldEqual, 56.71)
		})

		Convey("Then only occurring ratings are counted", func() {
			So(s.Ratings, ShouldResemble, map[model.Rating]int{
				model.RatingD: 2,
				model.RatingA: 1,
				model.RatingB: 1,
			})
		})

		Convey("Then issues are ordered by frequency with stable ties", func() {
			So(s.IssueLabels, ShouldResemble, []string{"Non-recyclable packaging", "Air transport", "Use of plastic"})
			So(s.IssueCounts, ShouldResemble, []int{3, 1, 1})
		})
	})

	Convey("Given issue counts A:3 B:3 C:1 with A seen before B", t, func() {
		subs := []model.Submission{
			sub(10, model.RatingD, "A"),
			sub(10, model.RatingD, "C", "B"),
			sub(10, model.RatingD, "B", "A"),
			sub(10, model.RatingD, "A", "B"),
		}

		s, _ := summary.Summarize(subs)

		Convey("Then the order is A, B, C", func() {
			So(s.IssueLabels, ShouldResemble, []string{"A", "B", "C"})
			So(s.IssueCounts, ShouldResemble, []int{3, 3, 1})
		})
	})

	Convey("Given more than five distinct issues", t, func() {
		subs := []model.Submission{
			sub(50, model.RatingC, "one", "two", "three"),
			sub(50, model.RatingC, "four", "five", "six", "seven"),
			sub(50, model.RatingC, "seven", "six"),
		}

		s, _ := summary.Summarize(subs)

		Convey("Then only the top five are returned as parallel lists", func() {
			So(len(s.IssueLabels), ShouldEqual, summary.TopIssues)
			So(len(s.IssueCounts), ShouldEqual, summary.TopIssues)
			So(s.IssueLabels, ShouldResemble, []string{"six", "seven", "one", "two", "three"})
			So(s.IssueCounts, ShouldResemble, []int{2, 2, 1, 1, 1})
		})
	})

	Convey("Given scores whose mean is an exact half cent", t, func() {
		s, _ := summary.Summarize([]model.Submission{sub(0.25, model.RatingD), sub(0, model.RatingD)})

		Convey("Then the average rounds to the even cent", func() {
			// 0.25 / 2 = 0.125
			So(s.AverageScore, ShouldEqual, 0.12)
		})
	})

	Convey("Given submissions without any issues", t, func() {
		s, ok := summary.Summarize([]model.Submission{sub(88, model.RatingA)})

		Convey("Then issue lists are empty but present", func() {
			So(ok, ShouldBeTrue)
			So(s.IssueLabels, ShouldNotBeNil)
			So(s.IssueLabels, ShouldBeEmpty)
			So(s.IssueCounts, ShouldBeEmpty)
			So(s.AverageScore, ShouldEqual, 88)
		})
	})
}
