package scoring

// ActivityType is one entry of the static activity catalog. Points is the
// default value used when no alliance point rule matches. AvailableWeeks
// lists the weeks of the repeating six-week cycle in which the activity can
// be submitted.
type ActivityType struct {
	Value          string
	Label          string
	Points         int
	AvailableWeeks []int
}

var allWeeks = []int{1, 2, 3, 4, 5, 6}

// ActivityTypes is the built-in activity vocabulary. Alliances override the
// point values with their own rules; these defaults keep older alliances
// working without any configuration.
var ActivityTypes = []ActivityType{
	{Value: "legion", Label: "Legion", Points: 8, AvailableWeeks: allWeeks},
	{Value: "golden-expedition", Label: "Golden Expedition", Points: 20, AvailableWeeks: []int{1, 3}},
	{Value: "kvk-prep", Label: "KvK Preparation", Points: 12, AvailableWeeks: []int{2, 4}},
	{Value: "development", Label: "Development", Points: 15, AvailableWeeks: allWeeks},
	{Value: "code-review", Label: "Code Review", Points: 10, AvailableWeeks: allWeeks},
	{Value: "testing", Label: "Testing", Points: 8, AvailableWeeks: allWeeks},
	{Value: "documentation", Label: "Documentation", Points: 8, AvailableWeeks: allWeeks},
	{Value: "meeting", Label: "Meeting", Points: 5, AvailableWeeks: allWeeks},
	{Value: "bug-fix", Label: "Bug Fix", Points: 12, AvailableWeeks: allWeeks},
	{Value: "research", Label: "Research", Points: 10, AvailableWeeks: allWeeks},
}

// DefaultPoints returns the fallback point value for an activity type, or 0
// when the type is not in the catalog.
func DefaultPoints(activityType string) int {
	for _, t := range ActivityTypes {
		if t.Value == activityType {
			return t.Points
		}
	}
	return 0
}

// AvailableTypes returns the catalog entries available in the given cycle
// week (1-6).
func AvailableTypes(weekNumber int) []ActivityType {
	available := []ActivityType{}
	for _, t := range ActivityTypes {
		for _, w := range t.AvailableWeeks {
			if w == weekNumber {
				available = append(available, t)
				break
			}
		}
	}
	return available
}
