// Package form holds the generation form controller shared by every content
// type: form state, required-field validation, the generate request and the
// edit/save cycle of the returned text.
package form

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/schema"
)

// TitleField is the id of the fixed title input.
const TitleField = "title"

// TitleLabel names the title input in validation messages.
const TitleLabel = "Title"

// Fixed request parameters.
const (
	PlagiarismSafety = true
	Language         = "english"
)

// Phase is the controller's position in the generation lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
	PhaseEditing    Phase = "editing"
	PhaseSaving     Phase = "saving"
)

// Backend is the part of the API client the controller needs.
type Backend interface {
	Generate(ctx context.Context, req api.GenerateRequest) (*api.GeneratedContent, error)
	UpdateContent(ctx context.Context, id string, update api.ContentUpdate) error
}

// Result is the most recent generated text and its server id.
type Result struct {
	ID      string
	Content string
}

// State is a snapshot of the form values.
type State struct {
	Title        string
	Fields       map[string]string
	WordCount    int
	WritingStyle string
	Tone         string
	Uniqueness   string
}

// Controller drives one content type's form. It is safe for concurrent use,
// but only one generate or save request is outstanding at a time.
type Controller struct {
	contentType schema.ContentType
	backend     Backend

	mu           sync.Mutex
	title        string
	fields       map[string]string
	wordCount    int
	writingStyle string
	tone         string
	uniqueness   string

	loading    bool
	phase      Phase
	result     *Result
	editing    bool
	editBuffer string
}

// New creates a controller with the default form values for ct.
func New(ct schema.ContentType, backend Backend) *Controller {
	wc := ct.DefaultWordCount
	if wc == 0 {
		wc = schema.DefaultWordCount
	}
	return &Controller{
		contentType:  ct,
		backend:      backend,
		fields:       make(map[string]string),
		wordCount:    wc,
		writingStyle: schema.DefaultWritingStyle,
		tone:         schema.DefaultTone,
		uniqueness:   schema.DefaultUniqueness,
		phase:        PhaseIdle,
	}
}

// ContentType returns the schema the controller was built for.
func (c *Controller) ContentType() schema.ContentType {
	return c.contentType
}

// UpdateField sets a form value. The title is addressed as TitleField.
func (c *Controller) UpdateField(id, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(id, value)
}

// AppendVoiceTranscript adds a dictated fragment to a field, joining it to
// any existing text with a single space.
func (c *Controller) AppendVoiceTranscript(id, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.get(id)
	if current != "" {
		text = current + " " + text
	}
	c.set(id, text)
}

// Field returns the current value of a form field.
func (c *Controller) Field(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(id)
}

func (c *Controller) get(id string) string {
	if id == TitleField {
		return c.title
	}
	return c.fields[id]
}

func (c *Controller) set(id, value string) {
	if id == TitleField {
		c.title = value
		return
	}
	c.fields[id] = value
}

// SetWordCount sets the target length.
func (c *Controller) SetWordCount(n int) error {
	if err := schema.ValidateWordCount(n); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	c.mu.Lock()
	c.wordCount = n
	c.mu.Unlock()
	return nil
}

// SetWritingStyle sets the writing style.
func (c *Controller) SetWritingStyle(v string) error {
	v, err := schema.NormalizeChoice("writing style", v, schema.WritingStyles)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	c.mu.Lock()
	c.writingStyle = v
	c.mu.Unlock()
	return nil
}

// SetTone sets the tone.
func (c *Controller) SetTone(v string) error {
	v, err := schema.NormalizeChoice("tone", v, schema.Tones)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	c.mu.Lock()
	c.tone = v
	c.mu.Unlock()
	return nil
}

// SetUniqueness sets the uniqueness level.
func (c *Controller) SetUniqueness(v string) error {
	v, err := schema.NormalizeChoice("uniqueness", v, schema.Uniqueness)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	c.mu.Lock()
	c.uniqueness = v
	c.mu.Unlock()
	return nil
}

// State returns a copy of the form values.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Title:        c.title,
		Fields:       maps.Clone(c.fields),
		WordCount:    c.wordCount,
		WritingStyle: c.writingStyle,
		Tone:         c.tone,
		Uniqueness:   c.uniqueness,
	}
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Loading reports whether a request is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Result returns the last generated result, or nil.
func (c *Controller) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return nil
	}
	r := *c.result
	return &r
}

// Editing reports whether edit mode is active.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// EditBuffer returns the text being edited.
func (c *Controller) EditBuffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editBuffer
}

// Missing returns the labels of required inputs that are blank: the title
// first, then required fields in schema order.
func (c *Controller) Missing() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.missing()
}

func (c *Controller) missing() []string {
	var out []string
	if isBlank(c.title) {
		out = append(out, TitleLabel)
	}
	for _, f := range c.contentType.RequiredFields() {
		if isBlank(c.fields[f.ID]) {
			out = append(out, f.Label)
		}
	}
	return out
}

// Request builds the generation request from the current values. Only
// schema fields with a non-blank value are included in InputData.
func (c *Controller) Request() api.GenerateRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request()
}

func (c *Controller) request() api.GenerateRequest {
	input := make(map[string]string)
	for _, f := range c.contentType.Fields {
		if v := c.fields[f.ID]; !isBlank(v) {
			input[f.ID] = v
		}
	}
	return api.GenerateRequest{
		Type:      c.contentType.Tag,
		Title:     c.title,
		InputData: input,
		Parameters: api.Parameters{
			WordCount:        c.wordCount,
			WritingStyle:     c.writingStyle,
			Tone:             c.tone,
			Uniqueness:       c.uniqueness,
			PlagiarismSafety: PlagiarismSafety,
			Language:         Language,
		},
	}
}

// Submit validates the form and requests a generation. Validation failures
// never reach the network. On success the result replaces any previous one
// and edit mode ends; on failure the previous result is kept.
func (c *Controller) Submit(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	if missing := c.missing(); len(missing) > 0 {
		c.mu.Unlock()
		return nil, &ValidationError{Missing: missing}
	}
	req := c.request()
	c.loading = true
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	res, err := c.backend.Generate(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.phase = PhaseFailed
		fallback := fmt.Sprintf("Failed to generate %s. Please try again.", strings.ToLower(c.contentType.Label))
		return nil, &GenerationError{Message: userMessage(err, fallback), Err: err}
	}

	c.result = &Result{ID: res.ID, Content: res.Content}
	c.editing = false
	c.editBuffer = ""
	c.phase = PhaseSucceeded
	r := *c.result
	return &r, nil
}

// Load seeds the controller with previously generated content so it can be
// edited or exported without a new generation.
func (c *Controller) Load(item api.ContentItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrRequestInFlight
	}
	c.title = item.Title
	if item.Parameters.WordCount > 0 {
		c.wordCount = item.Parameters.WordCount
	}
	if item.Parameters.WritingStyle != "" {
		c.writingStyle = item.Parameters.WritingStyle
	}
	if item.Parameters.Tone != "" {
		c.tone = item.Parameters.Tone
	}
	c.result = &Result{ID: item.ID, Content: item.Content}
	c.editing = false
	c.editBuffer = ""
	c.phase = PhaseSucceeded
	return nil
}

// BeginEdit copies the current result into the edit buffer.
func (c *Controller) BeginEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrRequestInFlight
	}
	if c.result == nil {
		return ErrNothingToEdit
	}
	c.editBuffer = c.result.Content
	c.editing = true
	c.phase = PhaseEditing
	return nil
}

// SetEditBuffer replaces the text being edited.
func (c *Controller) SetEditBuffer(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editing {
		return ErrNotEditing
	}
	c.editBuffer = text
	return nil
}

// CancelEdit discards the edit buffer.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return
	}
	c.editing = false
	c.editBuffer = ""
	if c.result != nil {
		c.phase = PhaseSucceeded
	}
}

// SaveEdit persists the edit buffer. On failure the buffer and edit mode are
// kept so the save can be retried.
func (c *Controller) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.result == nil || c.result.ID == "" {
		c.mu.Unlock()
		return ErrNoContentID
	}
	if c.loading {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	if !c.editing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	id := c.result.ID
	text := c.editBuffer
	c.loading = true
	c.phase = PhaseSaving
	c.mu.Unlock()

	err := c.backend.UpdateContent(ctx, id, api.ContentUpdate{
		Content:  text,
		EditNote: c.contentType.EditNote(),
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.phase = PhaseEditing
		return &SaveError{Message: userMessage(err, "Failed to save changes. Please try again."), Err: err}
	}

	c.result.Content = text
	c.editing = false
	c.editBuffer = ""
	c.phase = PhaseSucceeded
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
