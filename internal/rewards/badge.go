// Package rewards holds point values and the badge rule table.
package rewards

// Badge identifies an achievement. The string value is what gets persisted
// in the progress document.
type Badge string

const (
	BadgeFirstAdvanced  Badge = "First Advanced"
	BadgeGettingSerious Badge = "Getting Serious"
	BadgeCentury        Badge = "Century"
)

// AllBadges returns all badges in display order.
func AllBadges() []Badge {
	return []Badge{BadgeFirstAdvanced, BadgeGettingSerious, BadgeCentury}
}

// Description returns what the learner did to earn the badge.
func (b Badge) Description() string {
	switch b {
	case BadgeFirstAdvanced:
		return "Earned 50 points on a single exercise"
	case BadgeGettingSerious:
		return "Completed 5 exercises"
	case BadgeCentury:
		return "Reached 100 total points"
	default:
		return string(b)
	}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case BadgeFirstAdvanced:
		return "🦀"
	case BadgeGettingSerious:
		return "🔥"
	case BadgeCentury:
		return "💯"
	default:
		return "✦"
	}
}
