package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/middleware"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/nav"
	"github.com/kaamwala/kaamwala_be/internal/validation"
	"github.com/kaamwala/kaamwala_be/internal/wizard"
)

const (
	MaxImageBytes = 2 << 20
	MaxVideoBytes = 50 << 20

	sniffLen = 512
)

type BecomeWorkerHandler struct {
	Drafts *wizard.Registry
}

func NewBecomeWorkerHandler(drafts *wizard.Registry) *BecomeWorkerHandler {
	return &BecomeWorkerHandler{Drafts: drafts}
}

func (h *BecomeWorkerHandler) Routes(r fiber.Router) {
	g := r.Group("/become-worker", h.redirectWorkers)
	g.Get("/", h.Get)
	g.Put("/details", h.UpdateDetails)
	g.Post("/next", h.Next)
	g.Post("/back", h.Back)
	g.Post("/identity", h.UploadIdentity)
	g.Post("/showcase", h.UploadShowcase)
	g.Post("/submit", h.Submit)
	g.Post("/reset", h.Reset)
}

// ========= Helpers =========

// redirectWorkers sends a logged-in worker to their profile instead of the
// registration wizard.
func (h *BecomeWorkerHandler) redirectWorkers(c *fiber.Ctx) error {
	if s := middleware.CurrentSession(c); s != nil && s.Role == models.RoleWorker {
		return ok(c, "You are already registered as a worker", nil, nav.WorkerProfile)
	}
	return c.Next()
}

func (h *BecomeWorkerHandler) draft(c *fiber.Ctx) *wizard.Wizard {
	return h.Drafts.Get(middleware.ClientID(c))
}

func snapshot(c *fiber.Ctx, message string, w *wizard.Wizard) error {
	return ok(c, message, w.Snapshot(), "")
}

type uploadRule struct {
	field   string
	label   string
	kind    string
	maxSize int64
}

var (
	profilePicRule = uploadRule{field: "profilePic", label: "Profile picture", kind: "image", maxSize: MaxImageBytes}
	cnicFrontRule  = uploadRule{field: "cnicFront", label: "CNIC front", kind: "image", maxSize: MaxImageBytes}
	cnicBackRule   = uploadRule{field: "cnicBack", label: "CNIC back", kind: "image", maxSize: MaxImageBytes}
	showcaseRule   = uploadRule{field: "showcaseVideo", label: "Showcase video", kind: "video", maxSize: MaxVideoBytes}
)

// readArtifact returns nil when the field carries no file. Only the name,
// sniffed type and size are kept; the bytes are discarded.
func readArtifact(form *multipart.Form, rule uploadRule, errs validation.FieldErrors) (*wizard.Artifact, error) {
	files := form.File[rule.field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]

	if fh.Size > rule.maxSize {
		errs.Add(rule.field, fmt.Sprintf("%s must be at most %d MB", rule.label, rule.maxSize>>20))
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rule.field, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", rule.field, err)
	}

	mt := mimetype.Detect(head[:n])
	if !strings.HasPrefix(mt.String(), rule.kind+"/") {
		errs.Add(rule.field, rule.label+" must be "+rule.kindText())
		return nil, nil
	}

	return &wizard.Artifact{
		Name:        fh.Filename,
		ContentType: mt.String(),
		Size:        fh.Size,
	}, nil
}

func (r uploadRule) kindText() string {
	if r.kind == "image" {
		return "an image"
	}
	return "a " + r.kind
}

// ========= Handlers =========

func (h *BecomeWorkerHandler) Get(c *fiber.Ctx) error {
	return snapshot(c, "", h.draft(c))
}

func (h *BecomeWorkerHandler) UpdateDetails(c *fiber.Ctx) error {
	var req wizard.Step1Fields
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	w := h.draft(c)
	if err := w.SetDetails(req); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "Details saved", w)
}

func (h *BecomeWorkerHandler) Next(c *fiber.Ctx) error {
	w := h.draft(c)
	if err := w.Next(); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "", w)
}

func (h *BecomeWorkerHandler) Back(c *fiber.Ctx) error {
	w := h.draft(c)
	if err := w.Back(); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "", w)
}

func (h *BecomeWorkerHandler) UploadIdentity(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail200(c, "Please upload the files as multipart form data")
	}

	errs := validation.FieldErrors{}
	var in wizard.Step2Fields
	for _, it := range []struct {
		rule uploadRule
		dst  **wizard.Artifact
	}{
		{profilePicRule, &in.ProfilePic},
		{cnicFrontRule, &in.CNICFront},
		{cnicBackRule, &in.CNICBack},
	} {
		a, err := readArtifact(form, it.rule, errs)
		if err != nil {
			logger.Error("read upload", "field", it.rule.field, "err", err)
			return fail500(c, "Could not read the upload")
		}
		*it.dst = a
	}
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	w := h.draft(c)
	if err := w.SetIdentity(in); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "Documents uploaded", w)
}

func (h *BecomeWorkerHandler) UploadShowcase(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail200(c, "Please upload the files as multipart form data")
	}

	errs := validation.FieldErrors{}
	video, err := readArtifact(form, showcaseRule, errs)
	if err != nil {
		logger.Error("read upload", "field", showcaseRule.field, "err", err)
		return fail500(c, "Could not read the upload")
	}
	if !errs.Empty() {
		return validationFail(c, errs)
	}

	w := h.draft(c)
	if err := w.SetShowcase(wizard.Step3Fields{ShowcaseVideo: video}); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "Video uploaded", w)
}

func (h *BecomeWorkerHandler) Submit(c *fiber.Ctx) error {
	w := h.draft(c)
	worker, err := w.Submit(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	logger.Info("worker registration received", "worker", worker.ID, "client", middleware.ClientID(c))
	return snapshot(c, "Application under review", w)
}

func (h *BecomeWorkerHandler) Reset(c *fiber.Ctx) error {
	w := h.draft(c)
	if err := w.Reset(); err != nil {
		return respondError(c, err)
	}
	return snapshot(c, "", w)
}
