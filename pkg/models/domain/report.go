package domain

import "encoding/json"

// Report maps section names to their generated results. A failed section
// appears under its key with a SectionError payload rather than being
// omitted, so consumers can tell "failed" from "never planned".
type Report map[SectionName]any

// SectionError is the explicit error marker recorded for a section whose
// generator failed.
type SectionError struct {
	Error string `json:"error"`
}

// Clone returns a shallow copy. Section payloads are never mutated in
// place, only replaced wholesale, so a shallow copy is enough.
func (r Report) Clone() Report {
	out := make(Report, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Violation is one compliance finding: the section it concerns, why it
// violates the rulebook, and the replacement payload.
type Violation struct {
	Section SectionName     `json:"slide_name"`
	Reason  string          `json:"violation_reason"`
	Updated json.RawMessage `json:"updated_dict"`
}
