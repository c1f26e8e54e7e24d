package asset

import (
	"sort"
	"strings"
)

var statusPriority = map[Status]int{
	StatusRequested:   0,
	StatusBorrowed:    1,
	StatusAvailable:   2,
	StatusMaintenance: 3,
	StatusBroken:      4,
}

func priorityOf(s Status) int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return len(statusPriority)
}

// Less orders assets for listing: display-status priority, then (for borrowed
// assets) soonest due date with undated ones last, then name case-insensitively.
func Less(a, b *Asset) bool {
	sa, sb := a.DisplayStatus(), b.DisplayStatus()
	if pa, pb := priorityOf(sa), priorityOf(sb); pa != pb {
		return pa < pb
	}
	if sa == StatusBorrowed && sb == StatusBorrowed {
		switch {
		case a.LoanDueAt != nil && b.LoanDueAt != nil && !a.LoanDueAt.Equal(*b.LoanDueAt):
			return a.LoanDueAt.Before(*b.LoanDueAt)
		case a.LoanDueAt != nil && b.LoanDueAt == nil:
			return true
		case a.LoanDueAt == nil && b.LoanDueAt != nil:
			return false
		}
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// Sort orders list in place with Less.
func Sort(list []*Asset) {
	sort.SliceStable(list, func(i, j int) bool { return Less(list[i], list[j]) })
}
