package tasks

import "fmt"

// Phase identifies where in the export flow a progress update was emitted.
type Phase int

const (
	PhaseAuthenticating Phase = iota
	PhaseCreating
	PhaseResolving
	PhaseAdding
	PhaseDone
	PhaseSkipped
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseCreating:
		return "creating"
	case PhaseResolving:
		return "resolving"
	case PhaseAdding:
		return "adding"
	case PhaseDone:
		return "done"
	case PhaseSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ProgressUpdate is a single line of export progress.
//
// Index and Total are set only during per-item phases.
type ProgressUpdate struct {
	Phase   Phase
	Message string
	Index   int
	Total   int
}

func authUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: PhaseAuthenticating, Message: "Verifying session..."}
}

func createUpdate(name string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseCreating, Message: fmt.Sprintf("Creating playlist %q...", name)}
}

func resolveUpdate(title string, index, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseResolving,
		Message: fmt.Sprintf("Locating %q (%d/%d)...", title, index+1, total),
		Index:   index,
		Total:   total,
	}
}

func skipUpdate(title string, index, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseSkipped,
		Message: fmt.Sprintf("Could not verify %q, skipping.", title),
		Index:   index,
		Total:   total,
	}
}

func addUpdate(count int) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseAdding, Message: fmt.Sprintf("Adding %d tracks...", count)}
}

func doneUpdate(url string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseDone, Message: fmt.Sprintf("Export complete: %s", url)}
}
