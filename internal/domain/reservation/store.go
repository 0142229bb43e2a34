package reservation

// Candidates returns every stored reservation other than the one being changed whose departure
// is on or after from, in any status.
type Candidates func(from Date) []*Reservation

// CreateGuard decides whether a new reservation may be written given the current candidates.
type CreateGuard func(candidates []*Reservation) error

// UpdateDecider turns the current stored state into the change to write, or rejects it.
type UpdateDecider func(current *Reservation, candidates Candidates) (Update, error)
