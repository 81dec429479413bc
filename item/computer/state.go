package computer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/milk9111/virtualoffice/item"
)

// Status is the power state of a computer.
type Status string

const (
	StatusOff Status = "off"
	StatusOn  Status = "on"
)

func (s Status) Valid() bool {
	return s == StatusOn || s == StatusOff
}

// State is the restorable state of one computer. It is the payload of the
// TURN_ON and TURN_OFF signals.
type State struct {
	Status Status `json:"status" yaml:"status"`
}

// Issue is one schema violation found while validating restored state.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists the issues of a rejected state. It unwraps to
// item.ErrInvalidRestoredState.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.String())
	}
	return fmt.Sprintf("%v (%s)", item.ErrInvalidRestoredState, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return item.ErrInvalidRestoredState
}

// ParseState validates a loosely typed restored state. It accepts State,
// *State, string-keyed maps (as decoded from JSON or YAML), raw JSON and any
// other struct or map that encodes to a JSON object. status must be the
// string "on" or "off".
func ParseState(v any) (State, error) {
	switch s := v.(type) {
	case State:
		return checkStatus(any(string(s.Status)))
	case *State:
		if s == nil {
			return State{}, invalid(Issue{Message: "expected object, received null"})
		}
		return checkStatus(any(string(s.Status)))
	case map[string]any:
		raw, ok := s["status"]
		if !ok {
			return State{}, invalid(Issue{Path: "status", Message: "required"})
		}
		return checkStatus(raw)
	case map[string]string:
		raw, ok := s["status"]
		if !ok {
			return State{}, invalid(Issue{Path: "status", Message: "required"})
		}
		return checkStatus(raw)
	case json.RawMessage:
		return parseJSON(s)
	case []byte:
		return parseJSON(s)
	case nil:
		return State{}, invalid(Issue{Message: "expected object, received null"})
	}
	if isObjectLike(v) {
		return parseObjectLike(v)
	}
	return State{}, invalid(Issue{Message: fmt.Sprintf("expected object, received %s", typeName(v))})
}

// isObjectLike reports whether v is a struct or map, possibly behind
// pointers, other than the shapes ParseState handles directly.
func isObjectLike(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && (t.Kind() == reflect.Struct || t.Kind() == reflect.Map)
}

// parseObjectLike round-trips v through JSON so caller-defined structs and
// maps validate like decoded JSON. Field names match status case-insensitively,
// as encoding/json does for struct fields.
func parseObjectLike(v any) (State, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return State{}, invalid(Issue{Message: fmt.Sprintf("expected object, received %s", typeName(v))})
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, invalid(Issue{Message: "malformed JSON: " + err.Error()})
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return ParseState(raw)
	}
	if _, ok := fields["status"]; !ok {
		for k, val := range fields {
			if strings.EqualFold(k, "status") {
				fields["status"] = val
				break
			}
		}
	}
	return ParseState(fields)
}

func parseJSON(data []byte) (State, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, invalid(Issue{Message: "malformed JSON: " + err.Error()})
	}
	if raw == nil {
		return State{}, invalid(Issue{Message: "expected object, received null"})
	}
	return ParseState(raw)
}

func checkStatus(raw any) (State, error) {
	str, ok := raw.(string)
	if !ok {
		return State{}, invalid(Issue{Path: "status", Message: fmt.Sprintf("expected string, received %s", typeName(raw))})
	}
	st := Status(str)
	if !st.Valid() {
		return State{}, invalid(Issue{Path: "status", Message: fmt.Sprintf("expected %q or %q, received %q", StatusOn, StatusOff, str)})
	}
	return State{Status: st}, nil
}

func invalid(issues ...Issue) error {
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return &ValidationError{Issues: issues}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

// Store keeps the state of every computer, keyed by map object id.
type Store struct {
	states map[int]State
}

func NewStore() *Store {
	return &Store{states: make(map[int]State)}
}

// Get returns the state of id, off when nothing was stored.
func (s *Store) Get(id int) State {
	if s == nil {
		return State{Status: StatusOff}
	}
	st, ok := s.states[id]
	if !ok {
		return State{Status: StatusOff}
	}
	return st
}

func (s *Store) Set(id int, st State) {
	if s.states == nil {
		s.states = make(map[int]State)
	}
	s.states[id] = st
}

// Snapshot copies every stored state, e.g. to restore them after a reload.
func (s *Store) Snapshot() map[int]State {
	out := make(map[int]State, len(s.states))
	for id, st := range s.states {
		out[id] = st
	}
	return out
}
