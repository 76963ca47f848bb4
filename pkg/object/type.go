package object

import "fmt"

// Type enumerates the kinds of stored objects.
type Type int8

const (
	TypeCommit Type = iota + 1
	TypeTree
	TypeBlob
	TypeTag
)

// String returns the canonical name of the type, used in object framing.
func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	case TypeTag:
		return "tag"
	default:
		return "unknown"
	}
}

// TypeFromString parses a canonical type name.
func TypeFromString(s string) (Type, error) {
	switch s {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	case "tag":
		return TypeTag, nil
	default:
		return 0, fmt.Errorf("unknown object type %q", s)
	}
}
