package wizard

// Snapshot is the wizard as the front end renders it. The password is never
// echoed back.
type Snapshot struct {
	State       string      `json:"state"`
	Step        int         `json:"step"`
	Details     Step1Fields `json:"details"`
	HasPassword bool        `json:"hasPassword"`
	Identity    Step2Fields `json:"identity"`
	Showcase    Step3Fields `json:"showcase"`
	Submitting  bool        `json:"submitting"`
	Completed   bool        `json:"completed"`
	WorkerName  string      `json:"workerName,omitempty"`
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	details := w.step1
	details.Password = ""

	s := Snapshot{
		State:       w.state.String(),
		Step:        w.state.Step(),
		Details:     details,
		HasPassword: w.step1.Password != "",
		Identity:    w.step2,
		Showcase:    w.step3,
		Submitting:  w.state == Submitting,
		Completed:   w.state == Completed,
	}
	if w.worker != nil {
		s.WorkerName = w.worker.FullName
	}
	return s
}
