package notion

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// Fields reads typed values out of a raw JSON object by key path. Every
// failure is a *MalformedRecordError carrying the full dotted path.
type Fields struct {
	entity string
	prefix []string
	data   []byte
}

func NewFields(entity string, data []byte) Fields {
	return Fields{entity: entity, data: data}
}

func (f Fields) Entity() string { return f.entity }

func (f Fields) Raw() []byte { return f.data }

// Malformed builds a *MalformedRecordError for path relative to f.
func (f Fields) Malformed(reason string, path ...string) error {
	return &MalformedRecordError{Entity: f.entity, Path: f.pathString(path), Reason: reason}
}

func (f Fields) pathString(path []string) string {
	full := make([]string, 0, len(f.prefix)+len(path))
	full = append(full, f.prefix...)
	full = append(full, path...)
	if len(full) == 0 {
		return "."
	}
	return strings.Join(full, ".")
}

func (f Fields) child(data []byte, path ...string) Fields {
	prefix := make([]string, 0, len(f.prefix)+len(path))
	prefix = append(prefix, f.prefix...)
	prefix = append(prefix, path...)
	return Fields{entity: f.entity, prefix: prefix, data: data}
}

// lookup returns NotExist for both absent keys and JSON null.
func (f Fields) lookup(path []string) ([]byte, jsonparser.ValueType, error) {
	value, typ, _, err := jsonparser.Get(f.data, path...)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) || typ == jsonparser.NotExist {
			return nil, jsonparser.NotExist, nil
		}
		return nil, typ, f.Malformed(err.Error(), path...)
	}
	if typ == jsonparser.Null {
		return nil, jsonparser.NotExist, nil
	}
	return value, typ, nil
}

func (f Fields) require(want jsonparser.ValueType, path []string) ([]byte, error) {
	value, typ, err := f.lookup(path)
	if err != nil {
		return nil, err
	}
	if typ == jsonparser.NotExist {
		return nil, f.Malformed("missing", path...)
	}
	if typ != want {
		return nil, f.Malformed("expected "+want.String()+", got "+typ.String(), path...)
	}
	return value, nil
}

// Has reports whether path exists and is not null.
func (f Fields) Has(path ...string) bool {
	_, typ, err := f.lookup(path)
	return err == nil && typ != jsonparser.NotExist
}

func (f Fields) Object(path ...string) (Fields, error) {
	value, err := f.require(jsonparser.Object, path)
	if err != nil {
		return Fields{}, err
	}
	return f.child(value, path...), nil
}

// OptionalObject returns ok=false when path is absent or null.
func (f Fields) OptionalObject(path ...string) (Fields, bool, error) {
	value, typ, err := f.lookup(path)
	if err != nil || typ == jsonparser.NotExist {
		return Fields{}, false, err
	}
	if typ != jsonparser.Object {
		return Fields{}, false, f.Malformed("expected object, got "+typ.String(), path...)
	}
	return f.child(value, path...), true, nil
}

func (f Fields) String(path ...string) (string, error) {
	value, err := f.require(jsonparser.String, path)
	if err != nil {
		return "", err
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return "", f.Malformed(err.Error(), path...)
	}
	return s, nil
}

func (f Fields) OptionalString(path ...string) (*string, error) {
	value, typ, err := f.lookup(path)
	if err != nil || typ == jsonparser.NotExist {
		return nil, err
	}
	if typ != jsonparser.String {
		return nil, f.Malformed("expected string, got "+typ.String(), path...)
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return nil, f.Malformed(err.Error(), path...)
	}
	return &s, nil
}

func (f Fields) Bool(path ...string) (bool, error) {
	value, err := f.require(jsonparser.Boolean, path)
	if err != nil {
		return false, err
	}
	b, err := jsonparser.ParseBoolean(value)
	if err != nil {
		return false, f.Malformed(err.Error(), path...)
	}
	return b, nil
}

func (f Fields) Number(path ...string) (float64, error) {
	value, err := f.require(jsonparser.Number, path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(string(value), 64)
	if err != nil {
		return 0, f.Malformed(err.Error(), path...)
	}
	return n, nil
}

func (f Fields) Int(path ...string) (int, error) {
	n, err := f.Number(path...)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, f.Malformed("expected integer", path...)
	}
	return int(n), nil
}

func (f Fields) Time(path ...string) (time.Time, error) {
	s, err := f.String(path...)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, f.Malformed("invalid timestamp "+strconv.Quote(s), path...)
	}
	return t, nil
}

func (f Fields) OptionalTime(path ...string) (*time.Time, error) {
	s, err := f.OptionalString(path...)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, f.Malformed("invalid timestamp "+strconv.Quote(*s), path...)
	}
	return &t, nil
}

// Each calls fn for every element of the array at path, in order. An absent
// array is malformed; an empty one calls fn zero times.
func (f Fields) Each(path []string, fn func(i int, item Fields) error) error {
	value, err := f.require(jsonparser.Array, path)
	if err != nil {
		return err
	}

	var (
		i       int
		cbErr   error
		itemErr error
	)
	_, err = jsonparser.ArrayEach(value, func(item []byte, typ jsonparser.ValueType, _ int, err error) {
		if cbErr != nil || itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		elemPath := append(append([]string{}, path...), strconv.Itoa(i))
		if typ != jsonparser.Object {
			cbErr = f.Malformed("expected object, got "+typ.String(), elemPath...)
			return
		}
		cbErr = fn(i, f.child(item, elemPath...))
		i++
	})
	if cbErr != nil {
		return cbErr
	}
	if itemErr != nil {
		return f.Malformed(itemErr.Error(), path...)
	}
	if err != nil {
		return f.Malformed(err.Error(), path...)
	}
	return nil
}

var errStopIteration = errors.New("stop iteration")

// EachKey calls fn for every object-valued member of f. Returning
// errStopIteration from fn ends the walk without an error.
func (f Fields) EachKey(fn func(key string, value Fields) error) error {
	var cbErr error
	err := jsonparser.ObjectEach(f.data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		if typ != jsonparser.Object {
			return nil
		}
		name, err := jsonparser.ParseString(key)
		if err != nil {
			name = string(key)
		}
		if cbErr = fn(name, f.child(value, name)); cbErr != nil {
			return cbErr
		}
		return nil
	})
	if errors.Is(cbErr, errStopIteration) {
		return nil
	}
	if cbErr != nil {
		return cbErr
	}
	if err != nil {
		return f.Malformed(err.Error())
	}
	return nil
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime writes a timestamp the way Notion does.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
