package engine

// Grid constants. The weekly timetable is a fixed 5x15 table: five teaching
// days, fifteen timeslots per day, giving TotalSlots distinct colors.
const (
	Days        = 5
	SlotsPerDay = 15
	TotalSlots  = Days * SlotsPerDay
)

// dayLabels and timeLabels are rendering concerns only, surfaced by C6.
var dayLabels = [Days]string{"L", "M", "Mi", "J", "V"}

var timeLabels = [SlotsPerDay]string{
	"07:00", "07:55", "08:50", "09:45", "10:40",
	"11:35", "12:30", "13:25", "14:20", "15:15",
	"16:10", "17:05", "18:00", "18:55", "19:50",
}

// Day returns the day index of a timeslot.
func Day(ts int) int { return ts / SlotsPerDay }

// SlotInDay returns the within-day slot index of a timeslot.
func SlotInDay(ts int) int { return ts % SlotsPerDay }

// DayLabel returns the symbolic day label for a timeslot.
func DayLabel(ts int) string { return dayLabels[Day(ts)] }

// TimeLabel returns the clock-time label for a timeslot.
func TimeLabel(ts int) string { return timeLabels[SlotInDay(ts)] }
