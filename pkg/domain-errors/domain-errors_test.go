package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeValidation, Message: "Name is required"}
		s.Equal("Name is required", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeConflict}
		s.Equal("conflict", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		s.True(errors.Is(New(CodeTimeout, "poll timed out"), &Error{Code: CodeTimeout}))
	})

	s.Run("does not match different codes", func() {
		s.False(errors.Is(New(CodeTimeout, "x"), &Error{Code: CodeInternal}))
	})

	s.Run("finds code through fmt wrapping", func() {
		err := fmt.Errorf("submit: %w", New(CodeRejected, "not accepted"))
		s.True(HasCode(err, CodeRejected))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves existing domain code", func() {
		inner := New(CodeUnavailable, "upstream down")
		err := Wrap(inner, CodeInternal, "upload failed")
		s.True(HasCode(err, CodeUnavailable))
		s.Equal("upload failed", err.Error())
		s.ErrorIs(err, inner)
	})

	s.Run("applies code to plain errors", func() {
		err := Wrap(errors.New("boom"), CodeInternal, "store failed")
		s.True(HasCode(err, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestMessage() {
	s.Equal("Name is required", Message(New(CodeValidation, "Name is required"), "fallback"))
	s.Equal("fallback", Message(errors.New("raw"), "fallback"))
	s.Equal("fallback", Message(&Error{Code: CodeInternal}, "fallback"))
}
