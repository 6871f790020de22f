package enums

import "fmt"

// EditorRole records which capacity an edit was made in.
type EditorRole string

const (
	EditorRoleAdmin EditorRole = "admin"
	EditorRoleUser  EditorRole = "user"
)

var validEditorRoles = []EditorRole{
	EditorRoleAdmin,
	EditorRoleUser,
}

// String implements fmt.Stringer.
func (r EditorRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known EditorRole.
func (r EditorRole) IsValid() bool {
	for _, candidate := range validEditorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseEditorRole converts raw input into an EditorRole.
func ParseEditorRole(value string) (EditorRole, error) {
	for _, candidate := range validEditorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid editor role %q", value)
}
