package domain

import "encoding/json"

// AccessRecord is a user's grant for one category: permanent, or expiring at
// a millisecond timestamp.
type AccessRecord struct {
	Permanent bool  `json:"permanent,omitempty"`
	Expiry    int64 `json:"expiry,omitempty"`
}

// PermanentAccess builds a record with no expiry.
func PermanentAccess() AccessRecord {
	return AccessRecord{Permanent: true}
}

// ExpiringAccess builds a record valid until the given millisecond timestamp.
func ExpiringAccess(expiryMillis int64) AccessRecord {
	return AccessRecord{Expiry: expiryMillis}
}

// ActiveAt reports whether the record still grants access at the given time.
func (r AccessRecord) ActiveAt(nowMillis int64) bool {
	if r.Permanent || r.Expiry == 0 {
		return true
	}
	return r.Expiry > nowMillis
}

// UserGrants holds one user's records, either in the current per-category
// form or the legacy flat list of category names (all permanent). The legacy
// form is accepted on decode only; it is never written back.
type UserGrants struct {
	Records map[Category]AccessRecord
	Legacy  []Category
}

// UnmarshalJSON accepts both the record map form and the legacy array form.
func (g *UserGrants) UnmarshalJSON(data []byte) error {
	var legacy []Category
	if err := json.Unmarshal(data, &legacy); err == nil {
		g.Legacy = legacy
		g.Records = nil
		return nil
	}

	var records map[Category]AccessRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	g.Records = records
	g.Legacy = nil
	return nil
}

// MarshalJSON always emits the record map form. Legacy entries are promoted
// to permanent records on the way out.
func (g UserGrants) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.resolved())
}

func (g UserGrants) resolved() map[Category]AccessRecord {
	if g.Legacy == nil {
		return g.Records
	}
	records := make(map[Category]AccessRecord, len(g.Legacy))
	for _, category := range g.Legacy {
		records[category] = PermanentAccess()
	}
	return records
}

// EntitlementTable maps user ids to their per-category grants.
type EntitlementTable map[string]UserGrants

// HasAccess reports whether the user holds an unexpired grant for the
// category. It never mutates the table; expired records are left for
// Normalize to purge.
func (t EntitlementTable) HasAccess(userID string, category Category, nowMillis int64) bool {
	grants, ok := t[userID]
	if !ok {
		return false
	}
	if grants.Legacy != nil {
		for _, c := range grants.Legacy {
			if c == category {
				return true
			}
		}
		return false
	}
	record, ok := grants.Records[category]
	if !ok {
		return false
	}
	return record.ActiveAt(nowMillis)
}

// Grant inserts or overwrites the record for (user, category), resolving a
// legacy entry to record form first.
func (t EntitlementTable) Grant(userID string, category Category, record AccessRecord) {
	grants := t[userID]
	records := grants.resolved()
	if records == nil {
		records = make(map[Category]AccessRecord)
	}
	records[category] = record
	t[userID] = UserGrants{Records: records}
}

// Normalize returns a copy of the table with legacy entries promoted to
// permanent records, expired records dropped, and users left without any
// category removed entirely. Normalizing twice yields the same result.
func (t EntitlementTable) Normalize(nowMillis int64) EntitlementTable {
	cleaned := make(EntitlementTable, len(t))
	for userID, grants := range t {
		records := make(map[Category]AccessRecord)
		for category, record := range grants.resolved() {
			if record.ActiveAt(nowMillis) {
				records[category] = record
			}
		}
		if len(records) == 0 {
			continue
		}
		cleaned[userID] = UserGrants{Records: records}
	}
	return cleaned
}
