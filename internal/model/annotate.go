package model

import "fmt"

// EntryStatus is the diagnostic view of one row, as shown by the list views
// and the JSON output.
type EntryStatus struct {
	Index       int    `json:"index"`
	Value       string `json:"value"`
	Valid       bool   `json:"valid"`
	Empty       bool   `json:"empty"`
	IsDuplicate bool   `json:"duplicate"`
	DuplicateOf int    `json:"duplicateOf"` // Index of the first occurrence, -1 if unique
	Remediation string `json:"remediation,omitempty"`
}

// Icon picks the status icon for the row.
func (s EntryStatus) Icon() string {
	switch {
	case s.Empty:
		return IconEmpty
	case !s.Valid:
		return IconMissing
	case s.IsDuplicate:
		return IconDuplicate
	}
	return IconOK
}

// Annotate computes the status of every entry, in order.
func Annotate(entries []*PathEntry) []EntryStatus {
	statuses := make([]EntryStatus, len(entries))
	seen := make(map[string]int) // value -> index

	for i, e := range entries {
		st := EntryStatus{
			Index:       i,
			Value:       e.Value(),
			Empty:       e.Value() == "",
			DuplicateOf: -1,
		}
		// An empty row comes from an interior empty token; not a diagnostic.
		if st.Empty {
			statuses[i] = st
			continue
		}

		st.Valid = e.IsValid()
		if !st.Valid {
			st.Remediation = fmt.Sprintf("%s does not exist or is not a directory. Purge to remove it.", st.Value)
		}

		if firstIdx, ok := seen[st.Value]; ok {
			st.IsDuplicate = true
			st.DuplicateOf = firstIdx
			if st.Remediation == "" {
				st.Remediation = fmt.Sprintf(
					"Duplicate of entry %d; it is shadowed and can be removed.",
					firstIdx+1,
				)
			}
		} else {
			seen[st.Value] = i
		}
		statuses[i] = st
	}
	return statuses
}
