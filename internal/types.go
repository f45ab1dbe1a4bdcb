package internal

// Row is one physical spreadsheet row, cells coerced to text.
// Empty cells are "".
type Row []string

// Record is one normalized ledger transaction tagged with its account.
// Amounts keep the text they had in the source sheet.
type Record struct {
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	Date        string `json:"date"`
	Journal     string `json:"journal"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

// RecordHeader is the fixed export column order
var RecordHeader = []string{
	"Account Code", "Account Name", "Date", "Journal", "Reference",
	"Description", "Debit", "Credit", "Balance",
}

// Values returns the record's fields in RecordHeader order
func (r Record) Values() []string {
	return []string{
		r.AccountCode, r.AccountName, r.Date, r.Journal, r.Reference,
		r.Description, r.Debit, r.Credit, r.Balance,
	}
}

// Account is a (code, name) pair found on an account header row
type Account struct {
	Code string
	Name string
}

const (
	UnknownAccountCode = "Unknown"
	UnknownAccountName = "Unknown Account"
)
