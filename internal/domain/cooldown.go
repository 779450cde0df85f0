package domain

// CooldownTable maps each category to its default cooldown in milliseconds.
type CooldownTable map[Category]int64

// NewCooldownTable builds a table with every category present and zeroed.
func NewCooldownTable() CooldownTable {
	table := make(CooldownTable, len(Categories))
	for _, category := range Categories {
		table[category] = 0
	}
	return table
}

// SetDefault sets the cooldown duration for a category.
func (t CooldownTable) SetDefault(category Category, millis int64) {
	t[category] = millis
}

// UserCooldownTable maps user ids to the millisecond timestamp of their last
// successful claim per category.
type UserCooldownTable map[string]map[Category]int64

// LastUse returns the last claim timestamp, or zero when the user has never
// claimed in the category. A configured duration larger than the epoch offset
// would gate first use; accepted as-is.
func (t UserCooldownTable) LastUse(userID string, category Category) int64 {
	return t[userID][category]
}

// Remaining returns how many milliseconds of cooldown are left, never
// negative.
func (t UserCooldownTable) Remaining(userID string, category Category, defaults CooldownTable, nowMillis int64) int64 {
	remaining := defaults[category] - (nowMillis - t.LastUse(userID, category))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OnCooldown reports whether the user must still wait before claiming again.
func (t UserCooldownTable) OnCooldown(userID string, category Category, defaults CooldownTable, nowMillis int64) bool {
	return nowMillis-t.LastUse(userID, category) < defaults[category]
}

// RecordUse stamps a successful claim. Callers check the cooldown first.
func (t UserCooldownTable) RecordUse(userID string, category Category, nowMillis int64) {
	byCategory, ok := t[userID]
	if !ok {
		byCategory = make(map[Category]int64)
		t[userID] = byCategory
	}
	byCategory[category] = nowMillis
}
