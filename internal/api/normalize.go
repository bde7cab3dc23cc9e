package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jask/newsdesk/internal/workflow"
)

// The backend's near-duplicate endpoints disagree on shapes: ids arrive as
// numbers or strings, locked as 0/1 or a bool, location as a string or an
// object, and optional arrays are sometimes null, sometimes missing. All of
// that is absorbed here: every field decodes through a fallback default, so
// nothing downstream branches on "maybe this field exists".

type wireRecord struct {
	ID          json.RawMessage `json:"id"`
	Headline    string          `json:"headline"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location"`
	Priority    string          `json:"priority"`
	ContentType string          `json:"content_type"`
	Tags        json.RawMessage `json:"tags"`
	Status      json.RawMessage `json:"status"`
	StatusText  string          `json:"status_text"`
	Version     json.RawMessage `json:"version_number"`
	Locked      json.RawMessage `json:"locked"`
	Lock        *wireLock       `json:"lock"`
	CreatedDate string          `json:"created_date"`
	UpdatedDate string          `json:"updated_date"`
	CreatedBy   json.RawMessage `json:"created_by"`
	CreatedName string          `json:"created_name"`
	Attachments []wireAttach    `json:"attachments"`
	Comments    []wireComment   `json:"comments"`
}

type wireLock struct {
	LockedBy     json.RawMessage `json:"locked_by"`
	LockedByName string          `json:"locked_by_name"`
}

type wireAttach struct {
	Path string `json:"path"`
	MIME string `json:"mime"`
}

type wireComment struct {
	ID          json.RawMessage `json:"id"`
	Text        string          `json:"comment_text"`
	CreatedBy   json.RawMessage `json:"created_by"`
	CreatedName string          `json:"created_name"`
	CreatedDate string          `json:"created_date"`
}

type wireLocation struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

func (w wireRecord) normalize() ContentRecord {
	rec := ContentRecord{
		ID:          looseInt(w.ID),
		Headline:    w.Headline,
		Description: w.Description,
		Location:    looseLocation(w.Location),
		Priority:    strings.ToLower(w.Priority),
		ContentType: w.ContentType,
		Tags:        looseStrings(w.Tags),
		Status:      workflow.Status(looseInt(w.Status)),
		StatusText:  w.StatusText,
		Version:     looseInt(w.Version),
		Locked:      looseBool(w.Locked),
		CreatedDate: w.CreatedDate,
		UpdatedDate: w.UpdatedDate,
		CreatedBy:   looseInt(w.CreatedBy),
		CreatedName: w.CreatedName,
		Attachments: make([]Attachment, 0, len(w.Attachments)),
		Comments:    make([]Comment, 0, len(w.Comments)),
	}
	if rec.Version < 1 {
		rec.Version = 1
	}
	if w.Lock != nil {
		rec.Lock = Lock{LockedBy: looseInt(w.Lock.LockedBy), LockedByName: w.Lock.LockedByName}
	}
	// Locked and lock owner must agree; an unlocked record with a leftover
	// lock object (or the reverse) resolves to unlocked.
	if rec.Lock.LockedBy <= 0 {
		rec.Locked = false
		rec.Lock = Lock{}
	}
	if !rec.Locked {
		rec.Lock = Lock{}
	}
	for _, a := range w.Attachments {
		rec.Attachments = append(rec.Attachments, Attachment(a))
	}
	for _, c := range w.Comments {
		rec.Comments = append(rec.Comments, Comment{
			ID:          looseInt(c.ID),
			Text:        c.Text,
			CreatedBy:   looseInt(c.CreatedBy),
			CreatedName: c.CreatedName,
			CreatedDate: c.CreatedDate,
		})
	}
	return rec
}

// looseInt reads a JSON number, numeric string or bool as an int; anything
// else is 0.
func looseInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil && b {
		return 1
	}
	return 0
}

// looseBool reads true/false, 0/1 or "0"/"1".
func looseBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	return looseInt(raw) != 0
}

// looseStrings reads an array of strings or numbers; null and absent are an
// empty list.
func looseStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		// A bare scalar tag still counts as one entry.
		if s := looseString(raw); s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := looseString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// looseLocation reads a bare string or an {id, name} object. A bare string
// becomes the name with an empty id.
func looseLocation(raw json.RawMessage) Location {
	if len(raw) == 0 {
		return Location{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Location{Name: s}
	}
	var obj wireLocation
	if err := json.Unmarshal(raw, &obj); err == nil {
		return Location{ID: looseString(obj.ID), Name: obj.Name}
	}
	return Location{}
}
