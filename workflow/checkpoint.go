package workflow

// Checkpoint is the durable progress record of one execution attempt.
type Checkpoint struct {
	LastCompletedStepIndex int  `json:"lastCompletedStepIndex"`
	NextStepIndex          int  `json:"nextStepIndex"`
	IsComplete             bool `json:"isComplete"`
}

// CheckpointAfter returns the checkpoint for a run of total steps whose
// step index has just completed.
func CheckpointAfter(index, total int) Checkpoint {
	return Checkpoint{
		LastCompletedStepIndex: index,
		NextStepIndex:          index + 1,
		IsComplete:             index+1 >= total,
	}
}

// Resumable reports whether a run of total steps should continue from this
// checkpoint.
func (c *Checkpoint) Resumable(total int) bool {
	if c == nil || c.IsComplete {
		return false
	}
	return c.NextStepIndex >= 0 && c.NextStepIndex < total
}
