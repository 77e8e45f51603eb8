package config

import (
	"strconv"
	"strings"

	"github.com/thoreinstein/lognerd/internal/errors"
	"github.com/thoreinstein/lognerd/internal/platform"
	"github.com/thoreinstein/lognerd/pkg/lognerd"
)

// FieldError reports an invalid value for one config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalid(field, value string) error {
	return &FieldError{Field: field, Value: value, Err: errors.ErrInvalidConfig}
}

// Validate checks a File for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(f *File) []error {
	if f == nil {
		return []error{errors.New("config is nil")}
	}
	_, errs := f.convert()
	return errs
}

// Overrides converts the file into caller overrides. Multiple validation
// errors are returned joined.
func (f *File) Overrides() (lognerd.Overrides, error) {
	o, errs := f.convert()
	switch len(errs) {
	case 0:
		return o, nil
	case 1:
		return lognerd.Overrides{}, errs[0]
	default:
		return lognerd.Overrides{}, errors.Join(errs...)
	}
}

func (f *File) convert() (lognerd.Overrides, []error) {
	var (
		o    lognerd.Overrides
		errs []error
	)

	if f.Level != nil {
		lvl, err := lognerd.ParseLevel(*f.Level)
		if err != nil {
			errs = append(errs, &FieldError{Field: "level", Value: *f.Level, Err: err})
		} else {
			o.Level = &lvl
		}
	}

	if f.Environment != nil {
		e, ok := lognerd.ParseEnvironment(*f.Environment)
		if !ok {
			errs = append(errs, invalid("environment", *f.Environment))
		} else {
			o.Environment = &e
		}
	}

	if f.Runtime != nil {
		r, ok := platform.ParseRuntime(*f.Runtime)
		if !ok {
			errs = append(errs, invalid("runtime", *f.Runtime))
		} else {
			o.Runtime = &r
		}
	}

	if f.FilePath != nil {
		if strings.ContainsRune(*f.FilePath, '\x00') {
			errs = append(errs, invalid("file_path", *f.FilePath))
		} else {
			o.FilePath = lognerd.Ptr(*f.FilePath)
		}
	}

	if f.MaxFileSize != nil {
		if *f.MaxFileSize < 0 {
			errs = append(errs, invalid("max_file_size", formatFloat(*f.MaxFileSize)))
		} else {
			o.MaxFileSizeMB = lognerd.Ptr(*f.MaxFileSize)
		}
	}

	if f.MaxFiles != nil {
		if *f.MaxFiles < 0 {
			errs = append(errs, invalid("max_files", strconv.Itoa(*f.MaxFiles)))
		} else {
			o.MaxFiles = lognerd.Ptr(*f.MaxFiles)
		}
	}

	if f.EnableConsole != nil {
		o.EnableConsole = lognerd.Ptr(*f.EnableConsole)
	}
	if f.EnableFile != nil {
		o.EnableFile = lognerd.Ptr(*f.EnableFile)
	}

	return o, errs
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
