package task

// Filter returns the tasks whose text contains query, case-insensitively, in
// their original order. An empty query keeps every task. The input slice is
// never modified.
func Filter(tasks []Task, query string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}
