// Package wizard is the three-step worker registration form: details,
// identity documents, showcase video. Each step is guarded; going back is
// always allowed and keeps what was entered.
package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kaamwala/kaamwala_be/internal/account"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/validation"
)

type State int

const (
	StepDetails State = iota + 1
	StepIdentity
	StepShowcase
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepIdentity:
		return "identity"
	case StepShowcase:
		return "showcase"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Step is the 1-based number shown in the progress bar.
func (s State) Step() int {
	switch s {
	case StepDetails:
		return 1
	case StepIdentity:
		return 2
	default:
		return 3
	}
}

var (
	ErrInvalidTransition  = errors.New("not allowed in the current step")
	ErrSubmissionInFlight = errors.New("registration is already being submitted")
)

const (
	MsgFillAll      = "Please fill in all required fields."
	MsgInvalidEmail = "Please enter a valid email address."
	MsgInvalidPhone = "Please enter a valid Pakistani phone number (e.g., 03123456789)."
	MsgInvalidCNIC  = "Please enter a valid CNIC number (Format: xxxxx-xxxxxxx-x)."
	MsgShortPass    = "Password must be at least 6 characters long."
	MsgLongPass     = "Password must be at most 72 characters long."
	MsgMissingDocs  = "Please upload all required identity documents."
	MsgMissingVideo = "Please upload a showcase video to complete your registration."
)

type Step1Fields struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CNIC        string `json:"cnic"`
	Password    string `json:"password"`
	ServiceType string `json:"serviceType"`
	Experience  string `json:"experience"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Artifact describes an uploaded file. Only Name outlives the request.
type Artifact struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type Step2Fields struct {
	ProfilePic *Artifact `json:"profilePic"`
	CNICFront  *Artifact `json:"cnicFront"`
	CNICBack   *Artifact `json:"cnicBack"`
}

type Step3Fields struct {
	ShowcaseVideo *Artifact `json:"showcaseVideo"`
}

// Registrar is the part of account.Service the wizard needs.
type Registrar interface {
	RegisterWorker(ctx context.Context, in account.NewWorker) (models.Worker, error)
}

type Wizard struct {
	mu        sync.Mutex
	state     State
	step1     Step1Fields
	step2     Step2Fields
	step3     Step3Fields
	registrar Registrar
	worker    *models.Worker
}

func New(r Registrar) *Wizard {
	return &Wizard{state: StepDetails, registrar: r}
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetDetails replaces the Step 1 form. Only editable while on Step 1.
func (w *Wizard) SetDetails(f Step1Fields) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StepDetails {
		return ErrInvalidTransition
	}
	w.step1 = f
	return nil
}

// SetIdentity records the Step 2 uploads present in f; nil artifacts keep
// the previous upload.
func (w *Wizard) SetIdentity(f Step2Fields) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StepIdentity {
		return ErrInvalidTransition
	}
	if f.ProfilePic != nil {
		w.step2.ProfilePic = f.ProfilePic
	}
	if f.CNICFront != nil {
		w.step2.CNICFront = f.CNICFront
	}
	if f.CNICBack != nil {
		w.step2.CNICBack = f.CNICBack
	}
	return nil
}

func (w *Wizard) SetShowcase(f Step3Fields) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StepShowcase {
		return ErrInvalidTransition
	}
	if f.ShowcaseVideo != nil {
		w.step3.ShowcaseVideo = f.ShowcaseVideo
	}
	return nil
}

// Next advances Step 1 -> 2 -> 3 when the current step is complete. Step 3
// only leaves through Submit.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StepDetails:
		if msg := checkDetails(w.step1); msg != "" {
			return account.Invalid("form", msg)
		}
		w.state = StepIdentity
	case StepIdentity:
		if missing := missingDocuments(w.step2); len(missing) > 0 {
			return &account.MissingArtifactError{Artifacts: missing, Message: MsgMissingDocs}
		}
		w.state = StepShowcase
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back never validates and never clears data.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StepIdentity:
		w.state = StepDetails
	case StepShowcase:
		w.state = StepIdentity
	case Submitting:
		return ErrSubmissionInFlight
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Submit registers the worker. On a duplicate email, or if ctx ends while
// the registration is pending, the wizard stays on Step 3.
func (w *Wizard) Submit(ctx context.Context) (models.Worker, error) {
	w.mu.Lock()
	switch w.state {
	case StepShowcase:
	case Submitting:
		w.mu.Unlock()
		return models.Worker{}, ErrSubmissionInFlight
	default:
		w.mu.Unlock()
		return models.Worker{}, ErrInvalidTransition
	}
	if w.step3.ShowcaseVideo == nil {
		w.mu.Unlock()
		return models.Worker{}, &account.MissingArtifactError{Artifacts: []string{"showcaseVideo"}, Message: MsgMissingVideo}
	}
	w.state = Submitting
	in := w.newWorker()
	w.mu.Unlock()

	worker, err := w.registrar.RegisterWorker(ctx, in)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StepShowcase
		return models.Worker{}, err
	}
	w.state = Completed
	w.worker = &worker
	return worker, nil
}

// Reset clears every field and returns to Step 1.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Submitting {
		return ErrSubmissionInFlight
	}
	w.state = StepDetails
	w.step1 = Step1Fields{}
	w.step2 = Step2Fields{}
	w.step3 = Step3Fields{}
	w.worker = nil
	return nil
}

func (w *Wizard) newWorker() account.NewWorker {
	return account.NewWorker{
		FullName:         w.step1.FullName,
		Email:            w.step1.Email,
		Phone:            w.step1.Phone,
		CNIC:             w.step1.CNIC,
		Password:         w.step1.Password,
		ServiceType:      w.step1.ServiceType,
		Experience:       w.step1.Experience,
		Location:         w.step1.Location,
		Description:      w.step1.Description,
		ProfilePicRef:    name(w.step2.ProfilePic),
		CNICFrontRef:     name(w.step2.CNICFront),
		CNICBackRef:      name(w.step2.CNICBack),
		ShowcaseVideoRef: name(w.step3.ShowcaseVideo),
	}
}

func name(a *Artifact) string {
	if a == nil {
		return ""
	}
	return a.Name
}

// checkDetails returns the first failing rule for Step 1, or "".
func checkDetails(f Step1Fields) string {
	required := []string{
		f.FullName, f.Email, f.Phone, f.CNIC, f.Password,
		f.ServiceType, f.Experience, f.Location, f.Description,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return MsgFillAll
		}
	}
	switch {
	case !validation.IsValidEmail(f.Email):
		return MsgInvalidEmail
	case !validation.IsValidLocalPhone(f.Phone):
		return MsgInvalidPhone
	case !validation.IsValidNationalID(f.CNIC):
		return MsgInvalidCNIC
	case !validation.PasswordMeetsMinimumLength(f.Password, validation.MinPasswordLength):
		return MsgShortPass
	case !validation.PasswordWithinMaximumLength(f.Password):
		return MsgLongPass
	}
	return ""
}

func missingDocuments(f Step2Fields) []string {
	var missing []string
	if f.ProfilePic == nil {
		missing = append(missing, "profilePic")
	}
	if f.CNICFront == nil {
		missing = append(missing, "cnicFront")
	}
	if f.CNICBack == nil {
		missing = append(missing, "cnicBack")
	}
	return missing
}
