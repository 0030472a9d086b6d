package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the given values is an error, nil is returned. If exactly one
// error is given, it is returned unchanged.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			res = append(res, m.errs...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return &multiErr{errs: res}
	}
}

// multiErr is a collection of errors. ABCI code of the first error is
// exposed, consistent with a fail-fast approach.
type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(m.errs), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}

// Errors returns all clubbed errors.
func (m *multiErr) Errors() []error {
	return m.errs
}
