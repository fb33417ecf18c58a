// pkg/models/ledgerobjects/amendments.go
package ledgerobjects

import (
	"encoding/json"
	"fmt"
)

// Amendments lists the amendments enabled on the network and those
// currently holding a majority.
type Amendments struct {
	Flags      uint32     `json:"Flags" validate:"eq=0"`
	Amendments []string   `json:"Amendments,omitempty"`
	Majorities []Majority `json:"Majorities,omitempty" validate:"omitempty,dive"`
	Index      string     `json:"index,omitempty"`
}

func (Amendments) EntryType() EntryType { return EntryAmendments }

func (a Amendments) Validate() error { return checkObject(EntryAmendments, a) }

func (a Amendments) MarshalJSON() ([]byte, error) {
	type plain Amendments
	return json.Marshal(struct {
		plain
		LedgerEntryType EntryType `json:"LedgerEntryType"`
	}{plain(a), EntryAmendments})
}

// MDAmendmentsFields is the Amendments object as it appears inside
// transaction metadata.
type MDAmendmentsFields struct {
	Flags      *uint32    `json:"Flags,omitempty"`
	Amendments []string   `json:"Amendments,omitempty"`
	Majorities []Majority `json:"Majorities,omitempty"`
}

// Majority is an amendment that has gained support, and since when.
type Majority struct {
	Amendment string `json:"Amendment" validate:"required"`
	CloseTime uint32 `json:"CloseTime" validate:"required"`
}

// MarshalJSON wraps the entry as {"Majority": {...}}.
func (m Majority) MarshalJSON() ([]byte, error) {
	type plain Majority
	return json.Marshal(map[string]plain{"Majority": plain(m)})
}

func (m *Majority) UnmarshalJSON(data []byte) error {
	type plain Majority
	var wrapped map[string]plain
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	inner, ok := wrapped["Majority"]
	if !ok {
		return fmt.Errorf("missing %q wrapper", "Majority")
	}
	*m = Majority(inner)
	return nil
}
