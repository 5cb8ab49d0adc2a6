package model

// Sentinel labels of the team-average pseudo record.
const (
	TeamAverageName = "Team Average"
	TeamAverageNote = "Team Average Profile"
)

// TeamAverage returns a synthetic record whose traits are the arithmetic
// means of the input records.
func TeamAverage(records []PersonRecord) (PersonRecord, error) {
	if len(records) == 0 {
		return PersonRecord{}, ErrNoRecords
	}
	avg := PersonRecord{Name: TeamAverageName, Note: TeamAverageNote}
	for _, r := range records {
		avg.Dove += r.Dove
		avg.Owl += r.Owl
		avg.Peacock += r.Peacock
		avg.Eagle += r.Eagle
	}
	n := float64(len(records))
	avg.Dove /= n
	avg.Owl /= n
	avg.Peacock /= n
	avg.Eagle /= n
	return avg, nil
}

// IsTeamAverage reports whether the record is the team-average pseudo record.
func (p PersonRecord) IsTeamAverage() bool {
	return p.Name == TeamAverageName
}
