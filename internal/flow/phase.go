package flow

// Phase is the controller's position in the attempt lifecycle.
//
//	InProgress(i) --Advance, i<last--> InProgress(i+1)
//	InProgress(last) --Advance--> Completed
//	Completed --ViewResults--> ViewingResults
//	any --Restart--> InProgress(0)
type Phase int

const (
	PhaseInProgress     Phase = iota // Answering questions
	PhaseCompleted                   // Past the last question, results not opened yet
	PhaseViewingResults              // Results unlocked
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	case PhaseViewingResults:
		return "viewing_results"
	default:
		return "unknown"
	}
}

// Done reports whether the question sequence has been finished.
func (p Phase) Done() bool {
	return p == PhaseCompleted || p == PhaseViewingResults
}
