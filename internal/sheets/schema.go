package sheets

// Tab names within the one spreadsheet resource. Data starts at row 2; row 1
// is the header written by EnsureSchema.
const (
	TabUsers      = "Meta_Users"
	TabAccounts   = "Meta_Accounts"
	TabCategories = "Meta_Categories"
	TabAllocation = "Config_Allocation"
	TabLedger     = "Ledger"
)

// Ranges used by the resource services. Append targets the whole-column form
// so the backend places rows after existing content; Data covers everything
// below the header; Clear matches Data for replace-all semantics.
const (
	UsersData        = "Meta_Users!A2:D"
	UsersAppend      = "Meta_Users!A:D"
	AccountsData     = "Meta_Accounts!A2:E"
	AccountsAppend   = "Meta_Accounts!A:E"
	CategoriesData   = "Meta_Categories!A2:C"
	CategoriesAppend = "Meta_Categories!A:C"
	AllocationData   = "Config_Allocation!A2:C"
	AllocationAppend = "Config_Allocation!A:C"
	LedgerData       = "Ledger!A2:H"
	LedgerAppend     = "Ledger!A:H"
)

// Grid dimensions for tabs created by EnsureSchema.
const (
	NewTabRows = 1000
	NewTabCols = 20
)

// RequiredTabs lists every tab EnsureSchema provisions, in creation order.
func RequiredTabs() []string {
	return []string{TabUsers, TabAccounts, TabCategories, TabAllocation, TabLedger}
}

// HeaderRow returns the header for a tab, or nil for an unknown tab.
func HeaderRow(tab string) []string {
	switch tab {
	case TabUsers:
		return []string{"UserID", "UserName", "Role", "Email"}
	case TabAccounts:
		return []string{"AccountID", "UserID", "BankName", "AccountAlias", "Balance"}
	case TabCategories:
		return []string{"CategoryID", "CategoryName", "Type"}
	case TabAllocation:
		return []string{"Alloc_Type", "Target_Percent", "Description"}
	case TabLedger:
		return []string{"TxID", "Date", "UserID", "AccountID", "CategoryID", "Amount", "Description", "Timestamp"}
	}
	return nil
}
