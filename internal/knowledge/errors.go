package knowledge

import (
	"errors"
	"strings"
)

// ErrInvalidConfig marks knowledge-base tables that fail to resolve or validate.
var ErrInvalidConfig = errors.New("invalid config")

// ErrorKind classifies knowledge-base load failures.
type ErrorKind string

const (
	// KindNotFound: the override file could not be read.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidConfig: the document parsed but the tables are unusable.
	KindInvalidConfig ErrorKind = "invalid_config"
)

// OpError reports which load step failed, for which file.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

// IsKind reports whether err carries a knowledge-base OpError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Kind == kind
}
