package object

import "strconv"

// FileMode encodes the type and permission bits of a tree entry.
type FileMode uint32

const (
	// ModeTree marks an entry naming a subtree.
	ModeTree FileMode = 0o040000
	// ModeRegular marks a non-executable file entry.
	ModeRegular FileMode = 0o100644
	// ModeExecutable marks an executable file entry.
	ModeExecutable FileMode = 0o100755
	// ModeSymlink marks a symbolic link entry.
	ModeSymlink FileMode = 0o120000
	// ModeGitlink marks a nested repository reference.
	ModeGitlink FileMode = 0o160000
)

const typeMask FileMode = 0o170000

// IsTree checks if the mode's type bits name a subtree.
func (m FileMode) IsTree() bool {
	return m&typeMask == ModeTree
}

// ObjectType returns the kind of object an entry with this mode refers to.
func (m FileMode) ObjectType() Type {
	switch m & typeMask {
	case ModeTree:
		return TypeTree
	case ModeGitlink:
		return TypeCommit
	default:
		return TypeBlob
	}
}

// String returns the octal form of the mode bits.
func (m FileMode) String() string {
	return strconv.FormatUint(uint64(m), 8)
}
