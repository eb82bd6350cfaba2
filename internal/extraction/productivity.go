package extraction

import (
	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// hourFields are the lookup names of one hours record.
var (
	chargeableKeys   = []string{"chargeable_hours", "chargeable", "billable_hours"}
	internalKeys     = []string{"internal_hours", "internal", "non_chargeable_hours"}
	totalKeys        = []string{"total_productive_hours", "total_hours", "productive_hours"}
	chargeabilityKey = []string{"chargeability_percent", "chargeability", "chargeability_pct"}
	availableKeys    = []string{"available_hours", "capacity_hours", "available"}
)

// NormaliseProductivity reads team and per-person hours. Missing totals
// and percentages are derived; a missing team record is derived from the
// sum of the people, with chargeability recomputed from the sums.
func NormaliseProductivity(raw map[string]any, artefactID string) Result[domain.ProductivityPayload] {
	f := fields(raw)
	res := Result[domain.ProductivityPayload]{
		Record: domain.ProductivityPayload{
			People:     []domain.PersonHours{},
			Highlights: []string{},
			Concerns:   []string{},
		},
	}

	if items, ok := f.list("people", "persons", "staff", "individuals"); ok {
		for i, item := range items {
			p, reason := personHours(item, artefactID)
			if reason != "" {
				res.add(Drop{Field: "people", Index: i, Reason: reason})
				continue
			}
			res.Record.People = append(res.Record.People, p)
		}
	}

	team, hasTeam := f.obj("team", "team_metrics", "totals")
	if hasTeam && hasAnyHours(team) {
		rec, reason := hoursRecord(team)
		if reason != "" {
			res.add(Drop{Field: "team", Index: -1, Reason: reason})
			res.Record.Team = SumHours(res.Record.People)
		} else {
			res.Record.Team = rec
		}
	} else {
		res.Record.Team = SumHours(res.Record.People)
	}

	if items, ok := f.list("highlights"); ok {
		out, drops := plainStrings(items, "highlights")
		res.Record.Highlights = out
		res.add(drops...)
	}
	if items, ok := f.list("concerns", "risks"); ok {
		out, drops := plainStrings(items, "concerns")
		res.Record.Concerns = out
		res.add(drops...)
	}

	return res
}

func personHours(item any, artefactID string) (domain.PersonHours, string) {
	f, ok := asFields(item)
	if !ok {
		return domain.PersonHours{}, "not an object"
	}
	name, ok := f.str("person_name", "name", "person", "employee")
	if !ok {
		return domain.PersonHours{}, "missing person name"
	}
	rec, reason := hoursRecord(f)
	if reason != "" {
		return domain.PersonHours{}, reason
	}
	return domain.PersonHours{
		PersonName:  name,
		HoursRecord: rec,
		Source:      f.ref(artefactID),
	}, ""
}

func hasAnyHours(f fields) bool {
	return f.has(chargeableKeys[0], chargeableKeys[1:]...) ||
		f.has(internalKeys[0], internalKeys[1:]...) ||
		f.has(totalKeys[0], totalKeys[1:]...)
}

// hoursRecord reads one hours record and fills derived values.
// A field that is present but not numeric invalidates the record.
func hoursRecord(f fields) (domain.HoursRecord, string) {
	read := func(keys []string) (float64, bool, string) {
		v, present, ok := f.num(keys[0], keys[1:]...)
		if present && !ok {
			return 0, false, keys[0] + " is not numeric"
		}
		return v, present, ""
	}

	chargeable, _, reason := read(chargeableKeys)
	if reason != "" {
		return domain.HoursRecord{}, reason
	}
	internal, _, reason := read(internalKeys)
	if reason != "" {
		return domain.HoursRecord{}, reason
	}
	total, hasTotal, reason := read(totalKeys)
	if reason != "" {
		return domain.HoursRecord{}, reason
	}
	chargeability, hasChargeability, reason := read(chargeabilityKey)
	if reason != "" {
		return domain.HoursRecord{}, reason
	}
	available, hasAvailable, reason := read(availableKeys)
	if reason != "" {
		return domain.HoursRecord{}, reason
	}

	rec := domain.HoursRecord{
		ChargeableHours: chargeable,
		InternalHours:   internal,
	}
	if hasTotal {
		rec.TotalProductiveHours = total
	} else {
		rec.TotalProductiveHours = chargeable + internal
	}
	if hasChargeability {
		rec.ChargeabilityPercent = round(chargeability, 2)
	} else {
		rec.ChargeabilityPercent = Chargeability(rec.ChargeableHours, rec.TotalProductiveHours)
	}
	if hasAvailable {
		rec.AvailableHours = &available
		rec.UtilisationPercent = Utilisation(rec.TotalProductiveHours, available)
	}
	return rec, ""
}

// Chargeability returns chargeable / total * 100 rounded to 2 dp,
// or 0 when total is 0.
func Chargeability(chargeable, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round(chargeable/total*100, 2)
}

// Utilisation returns total / available * 100 rounded to 2 dp,
// or nil when available is not positive.
func Utilisation(total, available float64) *float64 {
	if available <= 0 {
		return nil
	}
	u := round(total/available*100, 2)
	return &u
}

// SumHours derives a team record from people: hour fields are summed and
// percentages recomputed from the sums. Available hours are summed only
// when every person reports them.
func SumHours(people []domain.PersonHours) domain.HoursRecord {
	var rec domain.HoursRecord
	var available float64
	allAvailable := len(people) > 0
	for _, p := range people {
		rec.ChargeableHours += p.ChargeableHours
		rec.InternalHours += p.InternalHours
		rec.TotalProductiveHours += p.TotalProductiveHours
		if p.AvailableHours == nil {
			allAvailable = false
		} else {
			available += *p.AvailableHours
		}
	}
	rec.ChargeabilityPercent = Chargeability(rec.ChargeableHours, rec.TotalProductiveHours)
	if allAvailable {
		rec.AvailableHours = &available
		rec.UtilisationPercent = Utilisation(rec.TotalProductiveHours, available)
	}
	return rec
}
