package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jywlabs/kalam/internal/api"
	"github.com/jywlabs/kalam/internal/schema"
)

type fakeBackend struct {
	mu        sync.Mutex
	generated []api.GenerateRequest
	updates   []api.ContentUpdate
	updateIDs []string

	result    *api.GeneratedContent
	genErr    error
	updateErr error

	// When set, Generate signals started and blocks until release is closed.
	started chan struct{}
	release chan struct{}
}

func (f *fakeBackend) Generate(ctx context.Context, req api.GenerateRequest) (*api.GeneratedContent, error) {
	f.mu.Lock()
	f.generated = append(f.generated, req)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		<-f.release
	}
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.result, nil
}

func (f *fakeBackend) UpdateContent(ctx context.Context, id string, update api.ContentUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateIDs = append(f.updateIDs, id)
	f.updates = append(f.updates, update)
	return f.updateErr
}

func (f *fakeBackend) generateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.generated)
}

func speechController(t *testing.T, b Backend) *Controller {
	t.Helper()
	ct, err := schema.Lookup("speech")
	if err != nil {
		t.Fatal(err)
	}
	return New(ct, b)
}

func fillRequired(c *Controller) {
	c.UpdateField(TitleField, "Graduation")
	c.UpdateField("occasion", "Commencement")
	c.UpdateField("audience", "Graduates")
	c.UpdateField("mainMessage", "Keep learning")
}

func TestNew_Defaults(t *testing.T) {
	c := speechController(t, &fakeBackend{})
	s := c.State()
	if s.Title != "" || s.WordCount != 500 || s.WritingStyle != "academic" || s.Tone != "neutral" || s.Uniqueness != "standard" {
		t.Errorf("defaults = %+v", s)
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("Phase() = %q, want idle", c.Phase())
	}

	summary, _ := schema.Lookup("summary")
	if got := New(summary, &fakeBackend{}).State().WordCount; got != 300 {
		t.Errorf("summary WordCount = %d, want 300", got)
	}
}

func TestAppendVoiceTranscript(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		text    string
		want    string
	}{
		{"appends with space", "hello", "world", "hello world"},
		{"empty field takes text", "", "world", "world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := speechController(t, &fakeBackend{})
			c.UpdateField(TitleField, tt.initial)
			c.AppendVoiceTranscript(TitleField, tt.text)
			if got := c.Field(TitleField); got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("schema field", func(t *testing.T) {
		c := speechController(t, &fakeBackend{})
		c.AppendVoiceTranscript("keyPoints", "first")
		c.AppendVoiceTranscript("keyPoints", "second")
		if got := c.Field("keyPoints"); got != "first second" {
			t.Errorf("keyPoints = %q", got)
		}
	})
}

func TestSubmit_ValidationBlocksNetwork(t *testing.T) {
	b := &fakeBackend{}
	c := speechController(t, b)

	_, err := c.Submit(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	want := []string{"Title", "Occasion/Event", "Target Audience", "Main Message"}
	if len(vErr.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", vErr.Missing, want)
	}
	for i := range want {
		if vErr.Missing[i] != want[i] {
			t.Errorf("Missing[%d] = %q, want %q", i, vErr.Missing[i], want[i])
		}
	}
	if b.generateCalls() != 0 {
		t.Errorf("Generate called %d times, want 0", b.generateCalls())
	}
	if c.Loading() {
		t.Error("Loading() should be false after validation failure")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("Phase() = %q, want idle", c.Phase())
	}
}

func TestSubmit_BlankTitleOnly(t *testing.T) {
	b := &fakeBackend{}
	c := speechController(t, b)
	fillRequired(c)
	c.UpdateField(TitleField, "   ")

	_, err := c.Submit(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(vErr.Missing) != 1 || vErr.Missing[0] != TitleLabel {
		t.Errorf("Missing = %v", vErr.Missing)
	}
	if vErr.Error() != "Please provide: Title" {
		t.Errorf("Error() = %q", vErr.Error())
	}
}

func TestSubmit_Success(t *testing.T) {
	b := &fakeBackend{result: &api.GeneratedContent{ID: "abc", Content: "Hello"}}
	c := speechController(t, b)
	fillRequired(c)
	c.UpdateField("keyPoints", "")
	c.UpdateField("notInSchema", "ignored")
	if err := c.SetTone("Formal"); err != nil {
		t.Fatal(err)
	}

	res, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if res.ID != "abc" || res.Content != "Hello" {
		t.Errorf("result = %+v", res)
	}
	if got := c.Result(); got == nil || got.Content != "Hello" {
		t.Errorf("Result() = %+v", got)
	}
	if c.Phase() != PhaseSucceeded || c.Loading() || c.Editing() {
		t.Errorf("phase=%q loading=%v editing=%v", c.Phase(), c.Loading(), c.Editing())
	}

	if b.generateCalls() != 1 {
		t.Fatalf("Generate called %d times, want 1", b.generateCalls())
	}
	req := b.generated[0]
	if req.Type != "speech" || req.Title != "Graduation" {
		t.Errorf("request = %+v", req)
	}
	wantInput := map[string]string{"occasion": "Commencement", "audience": "Graduates", "mainMessage": "Keep learning"}
	if len(req.InputData) != len(wantInput) {
		t.Errorf("InputData = %v, want %v", req.InputData, wantInput)
	}
	for k, v := range wantInput {
		if req.InputData[k] != v {
			t.Errorf("InputData[%q] = %q, want %q", k, req.InputData[k], v)
		}
	}
	p := req.Parameters
	if p.WordCount != 500 || p.Tone != "formal" || !p.PlagiarismSafety || p.Language != "english" {
		t.Errorf("parameters = %+v", p)
	}
}

func TestSubmit_FailureKeepsPreviousResult(t *testing.T) {
	b := &fakeBackend{result: &api.GeneratedContent{ID: "abc", Content: "Hello"}}
	c := speechController(t, b)
	fillRequired(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	b.genErr = &api.Error{Status: 500, Message: "quota exceeded"}
	_, err := c.Submit(context.Background())
	var gErr *GenerationError
	if !errors.As(err, &gErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if gErr.Message != "quota exceeded" {
		t.Errorf("Message = %q", gErr.Message)
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Error("GenerationError should unwrap to api.Error")
	}
	if got := c.Result(); got == nil || got.Content != "Hello" {
		t.Errorf("previous result lost: %+v", got)
	}
	if c.Loading() {
		t.Error("Loading() should be cleared after failure")
	}
	if c.Phase() != PhaseFailed {
		t.Errorf("Phase() = %q, want failed", c.Phase())
	}
}

func TestSubmit_GenericFailureMessage(t *testing.T) {
	b := &fakeBackend{genErr: errors.New("")}
	c := speechController(t, b)
	fillRequired(c)

	_, err := c.Submit(context.Background())
	if err == nil || err.Error() != "Failed to generate speech. Please try again." {
		t.Errorf("error = %v", err)
	}
}

func TestSubmit_InertWhileInFlight(t *testing.T) {
	b := &fakeBackend{
		result:  &api.GeneratedContent{ID: "abc", Content: "Hello"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := speechController(t, b)
	fillRequired(c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	select {
	case <-b.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never started")
	}

	if !c.Loading() || c.Phase() != PhaseSubmitting {
		t.Errorf("loading=%v phase=%q while request outstanding", c.Loading(), c.Phase())
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("second Submit() error = %v, want ErrRequestInFlight", err)
	}
	if err := c.BeginEdit(); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("BeginEdit() error = %v, want ErrRequestInFlight", err)
	}

	close(b.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit() error: %v", err)
	}
	if b.generateCalls() != 1 {
		t.Errorf("Generate called %d times, want 1", b.generateCalls())
	}
}

func TestSaveEdit_NoContentID(t *testing.T) {
	b := &fakeBackend{}
	c := speechController(t, b)

	if err := c.SaveEdit(context.Background()); !errors.Is(err, ErrNoContentID) {
		t.Errorf("SaveEdit() error = %v, want ErrNoContentID", err)
	}
	if len(b.updates) != 0 {
		t.Errorf("UpdateContent called %d times, want 0", len(b.updates))
	}
}

func TestEditCycle(t *testing.T) {
	b := &fakeBackend{result: &api.GeneratedContent{ID: "abc", Content: "Hello"}}
	c := speechController(t, b)
	fillRequired(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := c.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit() error: %v", err)
	}
	if c.EditBuffer() != "Hello" || c.Phase() != PhaseEditing {
		t.Errorf("buffer=%q phase=%q", c.EditBuffer(), c.Phase())
	}

	c.CancelEdit()
	if c.Editing() || c.EditBuffer() != "" || c.Phase() != PhaseSucceeded {
		t.Errorf("after cancel: editing=%v buffer=%q phase=%q", c.Editing(), c.EditBuffer(), c.Phase())
	}
	if len(b.updates) != 0 {
		t.Error("cancel must not call the API")
	}

	if err := c.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if err := c.SetEditBuffer("Hello, graduates"); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveEdit(context.Background()); err != nil {
		t.Fatalf("SaveEdit() error: %v", err)
	}
	if got := c.Result().Content; got != "Hello, graduates" {
		t.Errorf("content = %q", got)
	}
	if c.Editing() {
		t.Error("edit mode should end after save")
	}
	if b.updateIDs[0] != "abc" {
		t.Errorf("updated id = %q", b.updateIDs[0])
	}
	if b.updates[0].EditNote != "Manual edit from speech generator" {
		t.Errorf("EditNote = %q", b.updates[0].EditNote)
	}
}

func TestSaveEdit_FailurePreservesBuffer(t *testing.T) {
	b := &fakeBackend{result: &api.GeneratedContent{ID: "abc", Content: "Hello"}}
	c := speechController(t, b)
	fillRequired(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = c.BeginEdit()
	_ = c.SetEditBuffer("draft")

	b.updateErr = errors.New("network down")
	err := c.SaveEdit(context.Background())
	var sErr *SaveError
	if !errors.As(err, &sErr) {
		t.Fatalf("error = %v, want SaveError", err)
	}
	if !c.Editing() || c.EditBuffer() != "draft" {
		t.Errorf("editing=%v buffer=%q", c.Editing(), c.EditBuffer())
	}
	if c.Result().Content != "Hello" {
		t.Errorf("result changed to %q", c.Result().Content)
	}

	b.updateErr = nil
	if err := c.SaveEdit(context.Background()); err != nil {
		t.Fatalf("retry SaveEdit() error: %v", err)
	}
	if c.Result().Content != "draft" {
		t.Errorf("content = %q after retry", c.Result().Content)
	}
}

func TestBeginEdit_NoResult(t *testing.T) {
	c := speechController(t, &fakeBackend{})
	if err := c.BeginEdit(); !errors.Is(err, ErrNothingToEdit) {
		t.Errorf("BeginEdit() error = %v", err)
	}
	if err := c.SetEditBuffer("x"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("SetEditBuffer() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	c := speechController(t, &fakeBackend{})
	err := c.Load(api.ContentItem{
		ID: "xyz", Title: "Toast", Content: "Cheers",
		Parameters: api.ItemParameters{WordCount: 800, WritingStyle: "creative", Tone: "humorous"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if r := c.Result(); r.ID != "xyz" || r.Content != "Cheers" {
		t.Errorf("Result() = %+v", r)
	}
	s := c.State()
	if s.Title != "Toast" || s.WordCount != 800 || s.WritingStyle != "creative" || s.Tone != "humorous" {
		t.Errorf("State() = %+v", s)
	}
}

func TestParameterSetters(t *testing.T) {
	c := speechController(t, &fakeBackend{})

	var vErr *ValidationError
	if err := c.SetWordCount(50); !errors.As(err, &vErr) {
		t.Errorf("SetWordCount(50) error = %v", err)
	}
	if err := c.SetWordCount(1200); err != nil {
		t.Errorf("SetWordCount(1200) error = %v", err)
	}
	if err := c.SetWritingStyle("poetic"); !errors.As(err, &vErr) {
		t.Errorf("SetWritingStyle(poetic) error = %v", err)
	}
	if err := c.SetUniqueness("HIGH"); err != nil {
		t.Errorf("SetUniqueness(HIGH) error = %v", err)
	}
	s := c.State()
	if s.WordCount != 1200 || s.Uniqueness != "high" || s.WritingStyle != "academic" {
		t.Errorf("State() = %+v", s)
	}
}
