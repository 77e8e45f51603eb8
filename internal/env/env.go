package env

import (
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// ClientPrefix is prepended to a key to form its client-runtime variant.
const ClientPrefix = "CLIENT_"

// Reader looks up raw string values from the environment.
// The zero value and a nil *Reader report every key as absent.
type Reader struct {
	mu sync.Mutex
	v  *viper.Viper
}

// New returns a Reader backed by the process environment.
func New() *Reader {
	return &Reader{v: viper.New()}
}

// Empty returns a Reader with no environment access. Every lookup misses.
func Empty() *Reader {
	return &Reader{}
}

// Candidates returns the ordered environment variable names tried for key.
func Candidates(key string) []string {
	return []string{ClientPrefix + key, key}
}

// Get returns the value of the first candidate of key that is set and non-empty.
func (r *Reader) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.v == nil {
		return "", false
	}

	bind := append([]string{key}, Candidates(key)...)
	if err := r.v.BindEnv(bind...); err != nil {
		return "", false
	}
	if !r.v.IsSet(key) {
		return "", false
	}
	return r.v.GetString(key), true
}

// Has reports whether key is present.
func (r *Reader) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// GetBoolean parses key as a boolean. "true" and "1" are true, "false" and "0"
// are false (case-insensitive). Absent or any other value yields def.
func (r *Reader) GetBoolean(key string, def bool) bool {
	val, ok := r.Get(key)
	if !ok {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return def
	}
}

// GetNumber parses key as a base-10 integer. Absent or malformed yields def.
func (r *Reader) GetNumber(key string, def int) int {
	val, ok := r.Get(key)
	if !ok {
		return def
	}

	n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 0)
	if err != nil {
		return def
	}
	return int(n)
}

// GetChoice matches key case-insensitively against choices and returns the
// matching choice in its canonical spelling. Absent or unmatched yields def.
func (r *Reader) GetChoice(key string, choices []string, def string) string {
	val, ok := r.Get(key)
	if !ok {
		return def
	}

	val = strings.TrimSpace(val)
	for _, c := range choices {
		if strings.EqualFold(val, c) {
			return c
		}
	}
	return def
}
