// Package scoring pkg/scoring/scorer.go computes the 0-100 composite
// quality score and its four-dimension breakdown from a tool's raw metrics.
//
// The normalization constants are policy choices that downstream ranking and
// display depend on; they are fixed, not derived from data:
//
//	popularity      (25%): sigmoid over stars (midpoint 50) and forks (midpoint 20)
//	velocity        (25%): 7-day star delta plus push freshness, newcomer boost
//	maintenance     (25%): inverse decay over open issues
//	content_quality (25%): externally supplied, carried forward unchanged
package scoring

import (
	"math"
	"time"

	"github.com/mcphub/mcphub/pkg/models"
)

const (
	// Sigmoid midpoints: the value that maps to a score of 50.
	starMidpoint = 50
	forkMidpoint = 20

	// Linear caps: +50 stars in 7 days or a push within 30 days is 100.
	velocityCap      = 50
	freshnessWindow  = 30
	hoursPerDay      = 24

	// Tools registered within 30 days get their velocity multiplied by
	// 1.5 (capped at 100) so they are not under-scored before they have
	// had time to accumulate stars.
	newcomerDays       = 30
	newcomerMultiplier = 1.5

	dimensionWeight = 0.25
)

// Input is the raw metric set for one tool.
type Input struct {
	Stars          int
	Forks          int
	OpenIssues     int
	Velocity7d     int
	PushedAt       *time.Time
	CreatedAt      *time.Time
	ContentQuality float64
}

// Result is a composite score with its stored breakdown. The breakdown
// dimensions are rounded to one decimal, the composite to two.
type Result struct {
	QualityScore float64
	Breakdown    models.ScoreBreakdown
}

// Compute is a pure function of its inputs: identical inputs always produce
// bit-identical results.
func Compute(in Input, now time.Time) Result {
	popularity := popularityScore(in.Stars, in.Forks)
	velocity := velocityScore(in.Velocity7d, in.PushedAt, in.CreatedAt, now)
	maintenance := maintenanceScore(in.OpenIssues)

	total := popularity*dimensionWeight +
		velocity*dimensionWeight +
		maintenance*dimensionWeight +
		in.ContentQuality*dimensionWeight

	return Result{
		QualityScore: round2(total),
		Breakdown: models.ScoreBreakdown{
			Popularity:     round1(popularity),
			Velocity:       round1(velocity),
			Maintenance:    round1(maintenance),
			ContentQuality: round1(in.ContentQuality),
		},
	}
}

// popularityScore blends stars (70%) and forks (30%). Both go through the
// sigmoid so outlier repositories saturate toward 100 instead of dominating
// linearly.
func popularityScore(stars, forks int) float64 {
	return sigmoid(float64(stars), starMidpoint)*0.7 + sigmoid(float64(forks), forkMidpoint)*0.3
}

// velocityScore blends the trailing 7-day star delta (60%) with push
// freshness (40%), then applies the newcomer boost.
func velocityScore(velocity7d int, pushedAt, createdAt *time.Time, now time.Time) float64 {
	vScore := normalize(float64(velocity7d), velocityCap)

	freshness := 0.0

	if pushedAt != nil {
		days := daysBetween(*pushedAt, now)
		if days < 0 {
			days = 0
		}

		freshness = normalize(float64(freshnessWindow-days), freshnessWindow)
	}

	base := vScore*0.6 + freshness*0.4

	if createdAt != nil && daysBetween(*createdAt, now) <= newcomerDays {
		base = math.Min(100, base*newcomerMultiplier)
	}

	return base
}

// maintenanceScore decays smoothly as open issues grow: 0 issues scores 100,
// 20 issues scores 50, 100 issues trends toward 17.
func maintenanceScore(openIssues int) float64 {
	if openIssues <= 0 {
		return 100
	}

	return math.Min(100, 100/(1+float64(openIssues)/20))
}

// sigmoid maps value to (0,100) with the midpoint scoring exactly 50.
// k = ln(99)/midpoint pins value 0 near 1 and saturation near 100.
func sigmoid(value, midpoint float64) float64 {
	if midpoint <= 0 {
		return 0
	}

	k := math.Log(99) / midpoint

	return round2(100 / (1 + math.Exp(-k*(value-midpoint))))
}

// normalize linearly maps [0, cap] to [0, 100], clamped at both ends.
func normalize(value, cap float64) float64 {
	if cap <= 0 {
		return 0
	}

	scaled := value / cap * 100
	if scaled < 0 {
		return 0
	}

	return math.Min(100, scaled)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / hoursPerDay)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
