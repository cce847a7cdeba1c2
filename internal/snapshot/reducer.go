package snapshot

import "github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"

// Pure reducers. Mutations follow a two-phase contract: the network call
// settles first, and only a confirmed success is folded into the snapshot
// through one of these. They never touch shared state themselves, which keeps
// the mutation logic testable without any network plumbing.

func AppendBranch(list []normalize.Branch, b normalize.Branch) []normalize.Branch {
	out := make([]normalize.Branch, len(list), len(list)+1)
	copy(out, list)
	return append(out, b)
}

// RemoveBranch filters by identity, answering to both the normalized "id"
// and the server "_id" since both shapes coexist.
func RemoveBranch(list []normalize.Branch, id string) []normalize.Branch {
	out := make([]normalize.Branch, 0, len(list))
	for _, b := range list {
		if b.ID == id || normalize.MatchesID(b.Raw, id) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func AppendDepartment(list []normalize.Department, d normalize.Department) []normalize.Department {
	out := make([]normalize.Department, len(list), len(list)+1)
	copy(out, list)
	return append(out, d)
}

func RemoveDepartment(list []normalize.Department, id string) []normalize.Department {
	out := make([]normalize.Department, 0, len(list))
	for _, d := range list {
		if d.ID == id || normalize.MatchesID(d.Raw, id) {
			continue
		}
		out = append(out, d)
	}
	return out
}
