package rewards

// State is the snapshot a rule is evaluated against, taken right after
// points for a fresh completion have been applied.
type State struct {
	AwardedPoints  uint32 // points just earned on this exercise
	CompletedCount int
	TotalPoints    uint32
}

// Rule grants Badge when Applies returns true.
type Rule struct {
	Badge   Badge
	Applies func(State) bool
}

// DefaultRules is the badge table used by the engine.
var DefaultRules = []Rule{
	{
		Badge:   BadgeFirstAdvanced,
		Applies: func(s State) bool { return s.AwardedPoints >= AdvancedPoints },
	},
	{
		Badge:   BadgeGettingSerious,
		Applies: func(s State) bool { return s.CompletedCount >= 5 },
	},
	{
		Badge:   BadgeCentury,
		Applies: func(s State) bool { return s.TotalPoints >= 100 },
	},
}

// Evaluate returns the badges from rules that apply to s and are not in
// owned, in table order.
func Evaluate(rules []Rule, s State, owned []string) []Badge {
	have := make(map[string]bool, len(owned))
	for _, b := range owned {
		have[b] = true
	}

	var out []Badge
	for _, r := range rules {
		if have[string(r.Badge)] || !r.Applies(s) {
			continue
		}
		have[string(r.Badge)] = true
		out = append(out, r.Badge)
	}
	return out
}
