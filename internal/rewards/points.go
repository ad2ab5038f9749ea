package rewards

import "github.com/abhisek/rustdojo/internal/catalog"

// Points awarded for a first completion, by tier.
const (
	BeginnerPoints     uint32 = 10
	IntermediatePoints uint32 = 25
	AdvancedPoints     uint32 = 50
)

// PointsFor returns the points for completing an exercise of difficulty d.
// Anything that is not beginner or intermediate scores as advanced.
func PointsFor(d catalog.Difficulty) uint32 {
	switch d {
	case catalog.Beginner:
		return BeginnerPoints
	case catalog.Intermediate:
		return IntermediatePoints
	default:
		return AdvancedPoints
	}
}
