package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSummary_EffectiveContent(t *testing.T) {
	s := &Summary{GeneratedSummary: "<p>generated</p>"}
	assert.Equal(t, "<p>generated</p>", s.EffectiveContent())

	s.EditedSummary = strPtr("<p>edited</p>")
	assert.Equal(t, "<p>edited</p>", s.EffectiveContent())

	// An explicit empty edit is still the authoritative content.
	s.EditedSummary = strPtr("")
	assert.Equal(t, "", s.EffectiveContent())
}

func TestSummaryUpdate_ApplyIsIdempotent(t *testing.T) {
	s := &Summary{ID: "1", GeneratedSummary: "g"}
	u := SummaryUpdate{EditedSummary: strPtr("x")}

	u.Apply(s)
	once := s.Clone()
	u.Apply(s)

	assert.Equal(t, once, s)
	assert.Equal(t, "g", s.GeneratedSummary)
}

func TestSummaryUpdate_NilLeavesFieldUntouched(t *testing.T) {
	s := &Summary{EditedSummary: strPtr("keep")}
	SummaryUpdate{}.Apply(s)
	assert.Equal(t, "keep", *s.EditedSummary)
}

func TestSummary_CloneIsDeep(t *testing.T) {
	s := &Summary{EditedSummary: strPtr("a")}
	c := s.Clone()
	*c.EditedSummary = "b"
	assert.Equal(t, "a", *s.EditedSummary)
}

func TestEmailShare_CloneIsDeep(t *testing.T) {
	e := &EmailShare{Recipients: []string{"a@b.co"}, Message: strPtr("hi")}
	c := e.Clone()
	c.Recipients[0] = "x@y.co"
	*c.Message = "bye"

	assert.Equal(t, "a@b.co", e.Recipients[0])
	assert.Equal(t, "hi", *e.Message)
}
