package core

// Aggregations over already-fetched collections. These are pure functions:
// they never touch the store and they tolerate dangling references — a
// transaction whose categoryId or userId does not resolve simply contributes
// to no bucket.

// CategoryAmount is an amount grouped under a category display name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"value"`
}

// UserFlow holds one user's income and expense totals for the fetched period.
type UserFlow struct {
	UserName string  `json:"name"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
}

// AllocationAmount is an allocation bucket's share of a surplus.
type AllocationAmount struct {
	AllocType     string  `json:"allocType"`
	TargetPercent float64 `json:"targetPercent"`
	Amount        float64 `json:"amount"`
}

// categoryIndex builds an id lookup once so the aggregations below avoid a
// linear scan per transaction.
func categoryIndex(categories []Category) map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.CategoryID] = c
	}
	return idx
}

// Surplus returns total income minus total expense over the given
// transactions, classified by joining each CategoryID against categories.
func Surplus(transactions []Transaction, categories []Category) float64 {
	idx := categoryIndex(categories)
	var income, expense float64
	for _, tx := range transactions {
		switch idx[tx.CategoryID].Type {
		case CategoryIncome:
			income += tx.Amount
		case CategoryExpense:
			expense += tx.Amount
		}
	}
	return income - expense
}

// ExpenseByCategory groups expense-classified transactions by category name,
// summing amounts. Buckets appear in first-seen transaction order.
func ExpenseByCategory(transactions []Transaction, categories []Category) []CategoryAmount {
	idx := categoryIndex(categories)
	totals := make(map[string]float64)
	var order []string
	for _, tx := range transactions {
		cat, ok := idx[tx.CategoryID]
		if !ok || cat.Type != CategoryExpense {
			continue
		}
		if _, seen := totals[cat.CategoryName]; !seen {
			order = append(order, cat.CategoryName)
		}
		totals[cat.CategoryName] += tx.Amount
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: totals[name]})
	}
	return out
}

// IncomeExpenseByUser returns a flow entry for every known user, zero-valued
// when the user has no transactions. A transaction counts only when both its
// UserID and CategoryID resolve.
func IncomeExpenseByUser(transactions []Transaction, categories []Category, users []User) []UserFlow {
	catIdx := categoryIndex(categories)
	userIdx := make(map[string]int, len(users))
	flows := make([]UserFlow, len(users))
	for i, u := range users {
		userIdx[u.UserID] = i
		flows[i] = UserFlow{UserName: u.UserName}
	}
	for _, tx := range transactions {
		i, ok := userIdx[tx.UserID]
		if !ok {
			continue
		}
		switch catIdx[tx.CategoryID].Type {
		case CategoryIncome:
			flows[i].Income += tx.Amount
		case CategoryExpense:
			flows[i].Expense += tx.Amount
		}
	}
	return flows
}

// ApplyAllocationEdit sets the target percent at index, then, if the total
// across all allocations exceeds 100, clamps only the edited entry downward
// by the overflow. Other entries are never adjusted, so the edited value can
// go negative when the rest alone exceed 100 — this mirrors the historical
// behavior and is not corrected here. The input slice is not modified.
func ApplyAllocationEdit(allocations []Allocation, index int, newPercent float64) []Allocation {
	out := make([]Allocation, len(allocations))
	copy(out, allocations)
	if index < 0 || index >= len(out) {
		return out
	}
	out[index].TargetPercent = newPercent
	var total float64
	for _, a := range out {
		total += a.TargetPercent
	}
	if total > 100 {
		out[index].TargetPercent = newPercent - (total - 100)
	}
	return out
}

// SplitSurplus distributes a surplus across allocation buckets by target
// percent. Entries keep the input order.
func SplitSurplus(surplus float64, allocations []Allocation) []AllocationAmount {
	out := make([]AllocationAmount, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, AllocationAmount{
			AllocType:     a.AllocType,
			TargetPercent: a.TargetPercent,
			Amount:        surplus * a.TargetPercent / 100,
		})
	}
	return out
}
