package models

import "math"

// Stats is the aggregate of a story's votes. Average, variance, min, max and
// range cover numeric votes only and are nil when no numeric votes exist;
// mode and consensus cover the full vote set, symbolic values included.
type Stats struct {
	Average      *float64   `json:"average"`
	Variance     *float64   `json:"variance"`
	Mode         *CardValue `json:"mode"`
	ConsensusPct int        `json:"consensusPct"`
	Min          *float64   `json:"min"`
	Max          *float64   `json:"max"`
	Range        *float64   `json:"range"`
	TotalVotes   int        `json:"totalVotes"`
	UniqueValues int        `json:"uniqueValues"`
}

// ComputeStats derives descriptive statistics over a story's votes. Variance
// is population variance (divisor N): the votes are the complete population,
// not a sample. Mode ties break toward the value cast first.
func ComputeStats(votes []Vote) Stats {
	stats := Stats{TotalVotes: len(votes)}

	numeric := make([]float64, 0, len(votes))
	counts := make(map[CardValue]int)
	order := make([]CardValue, 0, len(votes))

	for _, vote := range votes {
		if vote.Value.IsNumber {
			numeric = append(numeric, vote.Value.Number)
		}
		if _, seen := counts[vote.Value]; !seen {
			order = append(order, vote.Value)
		}
		counts[vote.Value]++
	}

	stats.UniqueValues = len(counts)

	if len(order) > 0 {
		mode := order[0]
		for _, v := range order[1:] {
			if counts[v] > counts[mode] {
				mode = v
			}
		}
		stats.Mode = &mode
		stats.ConsensusPct = int(math.Round(float64(counts[mode]) / float64(len(votes)) * 100))
	}

	if len(numeric) == 0 {
		return stats
	}

	var sum float64
	min, max := numeric[0], numeric[0]
	for _, n := range numeric {
		sum += n
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	average := sum / float64(len(numeric))

	var squared float64
	for _, n := range numeric {
		squared += (n - average) * (n - average)
	}
	variance := squared / float64(len(numeric))

	spread := max - min
	stats.Average = &average
	stats.Variance = &variance
	stats.Min = &min
	stats.Max = &max
	stats.Range = &spread

	return stats
}

// SessionSummary is the cross-story rollup shown when a session ends
type SessionSummary struct {
	TotalStories     int      `json:"totalStories"`
	CompletedStories int      `json:"completedStories"`
	AverageEstimate  *float64 `json:"averageEstimate"`
	Participants     int      `json:"participants"`
}

// Summary rolls up the room's stories for the end-of-session screen. The
// average estimate is the mean of per-story averages over revealed stories
// that produced one, nil when none did.
func (r *Room) Summary() SessionSummary {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	summary := SessionSummary{
		TotalStories: len(r.Stories),
		Participants: len(r.Participants),
	}

	var sum float64
	var averaged int
	for _, story := range r.Stories {
		if !story.IsRevealed {
			continue
		}
		summary.CompletedStories++
		if story.Average != nil {
			sum += *story.Average
			averaged++
		}
	}

	if averaged > 0 {
		mean := sum / float64(averaged)
		summary.AverageEstimate = &mean
	}

	return summary
}
