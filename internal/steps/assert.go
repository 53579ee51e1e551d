package steps

import (
	"errors"
	"fmt"

	"github.com/stretchr/testify/assert"
)

// asserter turns testify assertion failures into a step error.
type asserter struct {
	err error
}

func (a *asserter) Errorf(format string, args ...interface{}) {
	a.err = errors.Join(a.err, fmt.Errorf(format, args...))
}

// check runs one testify assertion and returns its failure, if any.
func check(fn func(t assert.TestingT) bool) error {
	var t asserter
	fn(&t)
	return t.err
}
