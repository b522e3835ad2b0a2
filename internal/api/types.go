package api

import (
	"encoding/json"
	"time"
)

// Credentials is the body of login and register requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

// Parameters tune a generation request. PlagiarismSafety and Language are
// fixed by the client.
type Parameters struct {
	WordCount        int    `json:"wordCount"`
	WritingStyle     string `json:"writingStyle"`
	Tone             string `json:"tone"`
	Uniqueness       string `json:"uniqueness"`
	PlagiarismSafety bool   `json:"plagiarismSafety"`
	Language         string `json:"language"`
}

// GenerateRequest is the body of POST /content/generate.
type GenerateRequest struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	InputData  map[string]string `json:"inputData"`
	Parameters Parameters        `json:"parameters"`
}

// GeneratedContent is the server's answer to a generation request.
type GeneratedContent struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// ContentUpdate is the body of PUT /content/{id}.
type ContentUpdate struct {
	Content  string `json:"content"`
	EditNote string `json:"editNote"`
}

// ItemParameters are the generation parameters echoed back in history items.
type ItemParameters struct {
	WordCount    int    `json:"wordCount"`
	WritingStyle string `json:"writingStyle"`
	Tone         string `json:"tone"`
}

// ContentItem is a stored generation as listed by the history endpoint.
type ContentItem struct {
	ID         string         `json:"_id"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Parameters ItemParameters `json:"parameters"`
}

// UnmarshalJSON accepts either "_id" or "id" as the identifier.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	type plain ContentItem
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = ContentItem(aux.plain)
	if c.ID == "" {
		c.ID = aux.AltID
	}
	return nil
}

type generateResponse struct {
	Content GeneratedContent `json:"content"`
}

type historyResponse struct {
	Contents []ContentItem `json:"contents"`
}

type itemResponse struct {
	Content ContentItem `json:"content"`
}
