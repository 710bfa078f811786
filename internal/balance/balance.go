// Package balance computes "you owe / you paid / net" summaries from a
// user's group-expense rows. It is a pure aggregation over already-loaded
// rows and never touches storage.
package balance

// Row is the minimal projection of a joined expense+share row needed for
// balance computation. The listing join yields one row per share, so a payer
// sees every share row of their expense.
type Row struct {
	ExpenseID      uint
	PayerID        uint
	ShareUserID    uint
	ExpenseAmount  int64
	ShareAmount    int64
	ExpenseSettled bool
}

// Summary is a user's aggregate position across all their group expenses.
//
// TotalPaid counts full expense totals where the user fronted the money;
// TotalOwed counts share amounts where the user is a debtor on an unsettled
// expense. Mixing the two granularities is deliberate: the summary reports
// what you laid out in full as payer against what you personally still owe.
type Summary struct {
	TotalOwed int64 `json:"total_owed"`
	TotalPaid int64 `json:"total_paid"`
	Net       int64 `json:"net_balance"`
}

// Summarize aggregates the given rows from userID's point of view.
// Each expense the user paid for is counted once, no matter how many share
// rows it expands to. A user with no group expenses gets the zero Summary.
func Summarize(userID uint, rows []Row) Summary {
	var s Summary
	paid := make(map[uint]struct{})
	for _, r := range rows {
		if r.PayerID == userID {
			if _, counted := paid[r.ExpenseID]; !counted {
				paid[r.ExpenseID] = struct{}{}
				s.TotalPaid += r.ExpenseAmount
			}
		} else if r.ShareUserID == userID && !r.ExpenseSettled {
			s.TotalOwed += r.ShareAmount
		}
	}
	s.Net = s.TotalPaid - s.TotalOwed
	return s
}
