package entity

import "github.com/google/uuid"

type LinkageMode string

const (
	LinkageModeFixed      LinkageMode = "FIXED"
	LinkageModeSelectable LinkageMode = "SELECTABLE"
)

// LinkedCenter is a center reachable by a patient and the practitioners
// actively linked to it.
type LinkedCenter struct {
	Center        Center
	Practitioners []Practitioner
}

// LinkageResult is the set of practitioner/center pairs a patient may book.
// In FIXED mode Practitioner and Center are set and Centers is empty.
type LinkageResult struct {
	Mode         LinkageMode
	Practitioner *Practitioner
	Center       *Center
	Centers      []LinkedCenter
}

// Allows reports whether practitionerID at centerID is in the resolved set
func (r *LinkageResult) Allows(practitionerID, centerID uuid.UUID) bool {
	if r == nil {
		return false
	}
	if r.Mode == LinkageModeFixed {
		return r.Practitioner != nil && r.Center != nil &&
			r.Practitioner.ID == practitionerID && r.Center.ID == centerID
	}
	for _, c := range r.Centers {
		if c.Center.ID != centerID {
			continue
		}
		for _, p := range c.Practitioners {
			if p.ID == practitionerID {
				return true
			}
		}
	}
	return false
}
