package shared

import "github.com/google/uuid"

// Identity is the resolved caller identity handed to the core domains.
// The campaign domain never inspects tokens; it only sees this triple.
// (Kept in shared to avoid an import cycle with the user domain.)
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}
