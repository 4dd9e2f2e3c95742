package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ArtifactID names a rendered or exported output such as a heatmap image
type ArtifactID ID

// NewArtifactID creates a time-ordered artifact identifier
func NewArtifactID() ArtifactID { return ArtifactID(NewID()) }

func (id ArtifactID) String() string { return ID(id).String() }

// ParseArtifactID parses a string into ArtifactID. Path separators are
// rejected since the ID ends up in file names.
func ParseArtifactID(s string) (ArtifactID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("artifact ID cannot be empty")
	}
	if strings.ContainsAny(s, `/\`) {
		return "", fmt.Errorf("artifact ID %q contains a path separator", s)
	}
	return ArtifactID(s), nil
}
