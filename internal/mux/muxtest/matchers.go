package muxtest

import (
	"fmt"

	"github.com/abhinav/muxenv/internal/mux"
	"github.com/golang/mock/gomock"
)

// ControlLineMatcher is a gomock matcher that matches mux.ControlLine values
// by their string form.
type ControlLineMatcher string

var _ gomock.Matcher = ControlLineMatcher("")

func (m ControlLineMatcher) String() string {
	return fmt.Sprintf("ControlLine(%q)", string(m))
}

// Matches reports whether the provided ControlLine matches.
func (m ControlLineMatcher) Matches(x interface{}) bool {
	line, ok := x.(mux.ControlLine)
	if !ok {
		return false
	}

	return line.String() == string(m)
}
