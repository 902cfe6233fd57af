package routine

// ReduceCompleted is the synchronizer's update rule: log-derived credits can
// only raise the completed count.
func ReduceCompleted(current, derived int) int {
	return max(current, derived)
}

// SyncSubjects raises each subject's completed lectures to its log-derived
// credit total. It returns a fresh slice and whether anything changed.
func SyncSubjects(log []LogEntry, subjects []Subject) ([]Subject, bool) {
	if len(subjects) == 0 {
		return subjects, false
	}
	progress := SubjectProgress(log)
	out := make([]Subject, len(subjects))
	changed := false
	for i, s := range subjects {
		if derived, ok := progress[s.Name]; ok {
			next := ReduceCompleted(s.CompletedLectures, derived)
			if next != s.CompletedLectures {
				s.CompletedLectures = next
				changed = true
			}
		}
		out[i] = s
	}
	return out, changed
}
