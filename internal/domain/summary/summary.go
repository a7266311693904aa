// Package summary aggregates recorded submissions into summary statistics.
package summary

import (
	"sort"

	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/internal/domain/scoring"
)

// TopIssues is the maximum number of issue labels reported.
const TopIssues = 5

// Summary describes a set of submissions.
type Summary struct {
	TotalProducts int
	AverageScore  float64 // two decimals
	Ratings       map[model.Rating]int
	// IssueLabels and IssueCounts are parallel, ordered by descending count.
	IssueLabels []string
	IssueCounts []int
}

// Summarize computes statistics over subs. The boolean is false when subs is
// empty; the returned Summary is then the zero value.
func Summarize(subs []model.Submission) (Summary, bool) {
	if len(subs) == 0 {
		return Summary{}, false
	}

	var total float64
	ratings := make(map[model.Rating]int)
	counts := make(map[string]int)
	var order []string // first-encounter order of issue labels

	for _, s := range subs {
		total += s.Score
		ratings[s.Rating]++
		for _, issue := range s.Issues {
			if _, seen := counts[issue]; !seen {
				order = append(order, issue)
			}
			counts[issue]++
		}
	}

	// Stable sort keeps first-encounter order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > TopIssues {
		order = order[:TopIssues]
	}

	labels := make([]string, len(order))
	values := make([]int, len(order))
	for i, label := range order {
		labels[i] = label
		values[i] = counts[label]
	}

	return Summary{
		TotalProducts: len(subs),
		AverageScore:  scoring.Round2(total / float64(len(subs))),
		Ratings:       ratings,
		IssueLabels:   labels,
		IssueCounts:   values,
	}, true
}
