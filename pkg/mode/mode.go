// Package mode models POSIX permission modes as written in octal and decides
// which integers are acceptable as policy values.
package mode

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/glorpus-work/permfix/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Permission bit masks.
const (
	PermMask    = 0o777  // owner/group/other rwx
	SpecialMask = 0o7000 // setuid, setgid, sticky
	FullMask    = PermMask | SpecialMask

	setuidBit = 0o4000
	setgidBit = 0o2000
	stickyBit = 0o1000
)

// Mode is a permission mode in its numeric form, e.g. 0o644.
type Mode int

// IsValid reports whether mode is a plausible permission value: its octal
// representation must have 3 or 4 digits. Negative numbers and anything below
// 0o100 are rejected.
func IsValid(mode int) bool {
	if mode < 0 {
		return false
	}
	n := len(strconv.FormatInt(int64(mode), 8))
	return n == 3 || n == 4
}

// IsValid reports whether m passes the octal digit rule.
func (m Mode) IsValid() bool {
	return IsValid(int(m))
}

// Validate returns an invalid-argument error when m is not a valid mode.
func (m Mode) Validate() error {
	if !m.IsValid() {
		return errors.ErrInvalidModeWithValue(int(m))
	}
	return nil
}

// ValidateAll checks every mode and returns the first failure.
func ValidateAll(modes []Mode) error {
	for _, m := range modes {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads an octal mode written as "644", "0644" or "0o644".
// The result must pass IsValid.
func Parse(s string) (Mode, error) {
	raw := strings.TrimSpace(s)
	digits := strings.TrimPrefix(strings.TrimPrefix(raw, "0o"), "0O")
	if digits == "" {
		return 0, errors.ErrInvalidModeString(s)
	}

	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, errors.ErrInvalidModeString(s)
	}

	m := Mode(val)
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}

// ParseList parses every element; nothing is returned unless all succeed.
func ParseList(values []string) ([]Mode, error) {
	modes := make([]Mode, 0, len(values))
	for _, v := range values {
		m, err := Parse(v)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// FromFileMode returns the lowest nine permission bits of fm. Setuid, setgid
// and sticky bits are dropped.
func FromFileMode(fm fs.FileMode) Mode {
	return Mode(fm.Perm() & PermMask)
}

// Perm returns the rwx bits of m.
func (m Mode) Perm() Mode {
	return m & PermMask
}

// FileMode converts m to an fs.FileMode, mapping the special octal bits onto
// their fs.Mode* equivalents so os.Chmod honours them.
func (m Mode) FileMode() fs.FileMode {
	fm := fs.FileMode(m & PermMask)
	if m&setuidBit != 0 {
		fm |= fs.ModeSetuid
	}
	if m&setgidBit != 0 {
		fm |= fs.ModeSetgid
	}
	if m&stickyBit != 0 {
		fm |= fs.ModeSticky
	}
	return fm
}

// String formats m as a zero-prefixed octal number, e.g. "0644" or "4755".
func (m Mode) String() string {
	if m&SpecialMask != 0 {
		return fmt.Sprintf("%o", int(m))
	}
	return fmt.Sprintf("%04o", int(m))
}

// Symbolic renders the rwx bits of m like ls does, without the type column.
func (m Mode) Symbolic() string {
	return fs.FileMode(m & PermMask).String()[1:]
}

// Contains reports whether list holds m.
func Contains(list []Mode, m Mode) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// MarshalText encodes m as an octal string.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes an octal string.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// MarshalYAML writes m as a quoted octal string so it survives YAML 1.1 readers.
func (m Mode) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: m.String()}, nil
}

// UnmarshalYAML reads the node's literal text as octal, so 644 and "0644"
// both mean rw-r--r--.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.ErrInvalidModeString(node.Value)
	}
	return m.Set(node.Value)
}
