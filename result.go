package mapper

import (
	"bytes"
	"sync"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-json"
	"github.com/kaptinlin/go-i18n"
)

// ValidationError is a structured record appended by the validator suite
// (spec §4.8): it never aborts evaluation by itself, but its presence in
// a Context's error list short-circuits the enclosing mapping.
type ValidationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`

	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// NewValidationError builds a ValidationError from a keyword, machine
// code, human message template, and optional {placeholder} params.
func NewValidationError(keyword, code, message string, params ...map[string]any) *ValidationError {
	e := &ValidationError{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *ValidationError) Error() string {
	return replace(e.Message, e.Params)
}

// Localize renders the error via localizer, falling back to the
// unlocalized template when localizer is nil.
func (e *ValidationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	return localizer.Get(e.Code, i18n.Vars(e.Params))
}

// withLocation returns a copy of e with the current scope's location
// fields filled in, used by runValidators before appending to the
// context's error list.
func (e *ValidationError) withLocation(ctx *Context, value any) *ValidationError {
	cp := *e
	cp.Source = ctx.Paths.Source
	cp.Target = ctx.Paths.Target
	cp.Input = "/"
	cp.Output = "/"
	cp.Value = value
	return &cp
}

// ErrorList is a concurrency-safe, append-only list of ValidationErrors.
// The per-element branches of an each fan-out run in goroutines and may
// append concurrently (spec §5 O3); evalEach waits for every branch
// before returning, and evalMapping reads Len after each pairing.
type ErrorList struct {
	mu   sync.Mutex
	errs []*ValidationError
}

// NewErrorList returns an empty, ready-to-use ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Append adds err to the list. Safe for concurrent callers.
func (l *ErrorList) Append(err *ValidationError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

// Len reports the current error count. Safe for concurrent callers.
func (l *ErrorList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errs)
}

// All returns a snapshot copy of the accumulated errors.
func (l *ErrorList) All() []*ValidationError {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*ValidationError, len(l.errs))
	copy(out, l.errs)
	return out
}

// Result is the envelope a Mapper evaluation returns: spec §4.9 describes
// it as "{ ...target, valid, errors }" — Go can't spread a map into a
// struct, so MarshalJSON flattens Target's keys alongside valid/errors
// as JSON siblings via jsontext's token-level encoder.
type Result struct {
	Target map[string]any
	Valid  bool
	Errors []*ValidationError
}

// MarshalJSON produces the flattened {...target, valid, errors} shape.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return nil, err
	}
	for k, v := range r.Target {
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := enc.WriteValue(raw); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteToken(jsontext.String("valid")); err != nil {
		return nil, err
	}
	if err := enc.WriteToken(jsontext.Bool(r.Valid)); err != nil {
		return nil, err
	}
	if err := enc.WriteToken(jsontext.String("errors")); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(r.Errors)
	if err != nil {
		return nil, err
	}
	if err := enc.WriteValue(raw); err != nil {
		return nil, err
	}
	if err := enc.WriteToken(jsontext.ObjectEnd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
