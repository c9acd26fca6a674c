package handlers_fiber

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest handles multipart request creation: form fields plus
// the "files" and "referenceFiles" attachment lists.
func (h *Handler) CreateRequest(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "multipart form expected")
	}

	input := entities.NewRequestInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Type:        entities.RequestType(formValue(form, "type")),
		Priority:    entities.Priority(formValue(form, "priority")),
		Size:        formValue(form, "size"),
		Legals:      formValue(form, "legals"),
	}
	if raw := formValue(form, "finishDate"); raw != "" {
		input.FinishDate, err = parseDate(raw)
		if err != nil {
			return badRequest(c, "invalid finishDate")
		}
	}
	autoAssign := formValue(form, "autoAssign") == "true"

	files, err := readUploads(form.File["files"])
	if err != nil {
		return badRequest(c, "unreadable attachment")
	}
	referenceFiles, err := readUploads(form.File["referenceFiles"])
	if err != nil {
		return badRequest(c, "unreadable attachment")
	}

	request, err := h.uc.CreateRequest(c.Context(), actor, c.Params("slug"), input, files, referenceFiles, autoAssign)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		Request api.Request `json:"request"`
	}{Request: mapper.ToAPIRequest(*request)})
}

// GetRequest returns one request by id.
func (h *Handler) GetRequest(c *fiber.Ctx) error {
	if _, ok := identity(c); !ok {
		return unauthenticated(c)
	}

	request, err := h.uc.Request(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Request api.Request `json:"request"`
	}{Request: mapper.ToAPIRequest(*request)})
}

// SetStatus moves a request to a new status.
func (h *Handler) SetStatus(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	var body api.SetStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	request, err := h.uc.SetStatus(c.Context(), actor, c.Params("id"), entities.Status(body.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Request api.Request `json:"request"`
	}{Request: mapper.ToAPIRequest(*request)})
}

// BoardRequests lists a board's requests under the caller's view scope.
func (h *Handler) BoardRequests(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	requests, err := h.uc.BoardRequests(c.Context(), actor, c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Requests []api.Request `json:"requests"`
	}{Requests: mapper.ToAPIRequestList(requests)})
}

// MyAutoAssigned lists the caller's self-assigned requests.
func (h *Handler) MyAutoAssigned(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	requests, err := h.uc.MyAutoAssigned(c.Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Requests []api.Request `json:"requests"`
	}{Requests: mapper.ToAPIRequestList(requests)})
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func readUploads(headers []*multipart.FileHeader) ([]entities.Upload, error) {
	uploads := make([]entities.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, entities.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}
