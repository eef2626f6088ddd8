package models

// Statistics tallies statuses by Category.
type Statistics struct {
	UpToDate   int
	HasUpdates int
	Errors     int
}

func Aggregate(statuses []RepoStatus) Statistics {
	var s Statistics
	for _, st := range statuses {
		switch st.Category() {
		case CategoryError:
			s.Errors++
		case CategoryUpdates:
			s.HasUpdates++
		default:
			s.UpToDate++
		}
	}
	return s
}

func (s Statistics) Add(o Statistics) Statistics {
	return Statistics{
		UpToDate:   s.UpToDate + o.UpToDate,
		HasUpdates: s.HasUpdates + o.HasUpdates,
		Errors:     s.Errors + o.Errors,
	}
}

func (s Statistics) Total() int {
	return s.UpToDate + s.HasUpdates + s.Errors
}
