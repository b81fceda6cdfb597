package models

import (
	"math"
	"testing"
	"time"
)

func votesOf(values ...CardValue) []Vote {
	votes := make([]Vote, len(values))
	for i, v := range values {
		votes[i] = Vote{UserID: string(rune('a' + i)), Value: v, Timestamp: time.Now()}
	}
	return votes
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStatsPopulationVariance(t *testing.T) {
	stats := ComputeStats(votesOf(Numeric(5), Numeric(5), Numeric(8), Numeric(13)))

	if stats.Average == nil || !almostEqual(*stats.Average, 7.75) {
		t.Fatalf("Average = %v, want 7.75", stats.Average)
	}
	// Population variance divides by N, not N-1
	if stats.Variance == nil || !almostEqual(*stats.Variance, 10.6875) {
		t.Fatalf("Variance = %v, want 10.6875", stats.Variance)
	}
}

func TestComputeStatsModeTieBreak(t *testing.T) {
	// 8 and 13 each occur twice; the tie breaks toward the value cast first
	stats := ComputeStats(votesOf(Numeric(8), Numeric(13), Numeric(8), Numeric(13)))

	if stats.Mode == nil || *stats.Mode != Numeric(8) {
		t.Fatalf("Mode = %v, want 8", stats.Mode)
	}
	if stats.ConsensusPct != 50 {
		t.Errorf("ConsensusPct = %d, want 50", stats.ConsensusPct)
	}
}

func TestComputeStatsConsensusRounding(t *testing.T) {
	// 2 of 3 votes agree: 66.67% rounds to 67
	stats := ComputeStats(votesOf(Numeric(8), Numeric(8), Numeric(13)))

	if stats.ConsensusPct != 67 {
		t.Errorf("ConsensusPct = %d, want 67", stats.ConsensusPct)
	}
}

func TestComputeStatsSymbolicVotes(t *testing.T) {
	// Symbolic tokens count toward totals, mode and uniqueness but never
	// toward arithmetic statistics.
	stats := ComputeStats(votesOf(Symbolic("?"), Symbolic("?"), Numeric(5)))

	if stats.TotalVotes != 3 {
		t.Errorf("TotalVotes = %d, want 3", stats.TotalVotes)
	}
	if stats.UniqueValues != 2 {
		t.Errorf("UniqueValues = %d, want 2", stats.UniqueValues)
	}
	if stats.Mode == nil || *stats.Mode != Symbolic("?") {
		t.Errorf("Mode = %v, want ?", stats.Mode)
	}
	if stats.Average == nil || !almostEqual(*stats.Average, 5) {
		t.Errorf("Average = %v, want 5", stats.Average)
	}
	if stats.Variance == nil || !almostEqual(*stats.Variance, 0) {
		t.Errorf("Variance = %v, want 0", stats.Variance)
	}
}

func TestComputeStatsNoNumericVotes(t *testing.T) {
	stats := ComputeStats(votesOf(Symbolic("XS"), Symbolic("M"), Symbolic("M")))

	// Uniformly undefined, not zero, when no numeric votes exist
	if stats.Average != nil {
		t.Errorf("Average = %v, want nil", *stats.Average)
	}
	if stats.Variance != nil {
		t.Errorf("Variance = %v, want nil", *stats.Variance)
	}
	if stats.Min != nil || stats.Max != nil || stats.Range != nil {
		t.Error("Min/Max/Range should be nil without numeric votes")
	}
	if stats.Mode == nil || *stats.Mode != Symbolic("M") {
		t.Errorf("Mode = %v, want M", stats.Mode)
	}
	if stats.ConsensusPct != 67 {
		t.Errorf("ConsensusPct = %d, want 67", stats.ConsensusPct)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.TotalVotes != 0 || stats.UniqueValues != 0 {
		t.Errorf("counts = %d/%d, want 0/0", stats.TotalVotes, stats.UniqueValues)
	}
	if stats.Mode != nil {
		t.Errorf("Mode = %v, want nil", stats.Mode)
	}
	if stats.ConsensusPct != 0 {
		t.Errorf("ConsensusPct = %d, want 0", stats.ConsensusPct)
	}
	if stats.Average != nil || stats.Variance != nil {
		t.Error("Average/Variance should be nil with no votes")
	}
}

func TestComputeStatsRange(t *testing.T) {
	stats := ComputeStats(votesOf(Numeric(8), Numeric(13), Numeric(8), Numeric(5), Numeric(13)))

	if stats.Average == nil || !almostEqual(*stats.Average, 9.4) {
		t.Fatalf("Average = %v, want 9.4", stats.Average)
	}
	if stats.Min == nil || *stats.Min != 5 {
		t.Errorf("Min = %v, want 5", stats.Min)
	}
	if stats.Max == nil || *stats.Max != 13 {
		t.Errorf("Max = %v, want 13", stats.Max)
	}
	if stats.Range == nil || *stats.Range != 8 {
		t.Errorf("Range = %v, want 8", stats.Range)
	}
}
