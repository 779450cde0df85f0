package service

// TimeUnit names a duration unit accepted by grant and cooldown commands.
type TimeUnit string

const (
	UnitSeconds TimeUnit = "seconds"
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
	UnitDays    TimeUnit = "days"
	UnitWeeks   TimeUnit = "weeks"
)

var unitMillis = map[TimeUnit]int64{
	UnitSeconds: 1000,
	UnitMinutes: 60 * 1000,
	UnitHours:   60 * 60 * 1000,
	UnitDays:    24 * 60 * 60 * 1000,
	UnitWeeks:   7 * 24 * 60 * 60 * 1000,
}

// ToMilliseconds converts a quantity of the given unit to milliseconds.
// An unknown unit falls back to seconds, treating the quantity as already
// being a second count.
func ToMilliseconds(quantity int64, unit TimeUnit) int64 {
	multiplier, ok := unitMillis[unit]
	if !ok {
		multiplier = unitMillis[UnitSeconds]
	}
	return quantity * multiplier
}
