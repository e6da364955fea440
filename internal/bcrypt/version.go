package bcrypt

import "fmt"

// Version is the tag between the first two '$' of a bcrypt string. It only
// affects how a result is labelled; the computation is the same for all of
// them.
type Version uint8

const (
	Version2A Version = iota + 1
	Version2B
	Version2X
	Version2Y
)

var versionTags = map[Version]string{
	Version2A: "2a",
	Version2B: "2b",
	Version2X: "2x",
	Version2Y: "2y",
}

// ParseVersion maps a tag such as "2b" to its Version.
func ParseVersion(tag string) (Version, error) {
	for v, t := range versionTags {
		if t == tag {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown version %q", ErrInvalidSalt, tag)
}

// ParsePrefix is ParseVersion restricted to the tags new salts may carry.
func ParsePrefix(tag string) (Version, error) {
	switch tag {
	case "2a":
		return Version2A, nil
	case "2b":
		return Version2B, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidPrefix, tag)
}

func (v Version) String() string {
	if t, ok := versionTags[v]; ok {
		return t
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

func (v Version) valid() bool {
	_, ok := versionTags[v]
	return ok
}
