package models

// Service types a budget line can price. An empty string means the
// operator has not picked one yet; at approval time it degrades to
// ServiceOtro on the reservation codes.
const (
	ServiceAereo     = "aereo"
	ServiceHotel     = "hotel"
	ServiceExcursion = "excursion"
	ServiceTraslado  = "traslado"
	ServiceOtro      = "otro"
)

// Currencies are tags only. Amounts are never converted between them.
const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// BudgetItem is one priced service line inside a budget option.
// FinalPrice is kept as rate + expenses, recomputed whenever either
// addend changes; the currency tags of the two addends are not
// reconciled (known legacy limitation, kept on purpose).
type BudgetItem struct {
	Date               string  `json:"date"`
	EndDate            string  `json:"endDate"`
	ServiceType        string  `json:"serviceType"`
	Details            string  `json:"details"`
	Rate               float64 `json:"rate"`
	RateCurrency       string  `json:"rateCurrency"`
	Expenses           float64 `json:"expenses"`
	ExpensesCurrency   string  `json:"expensesCurrency"`
	FinalPrice         float64 `json:"finalPrice"`
	FinalPriceCurrency string  `json:"finalPriceCurrency"`
	ShowEndDate        bool    `json:"showEndDate"`
	ReservationCode    string  `json:"reservationCode"`
}

// NewBudgetItem returns a zero-valued line with ARS defaults, matching
// what the budget page appended on "Agregar Item".
func NewBudgetItem() BudgetItem {
	return BudgetItem{
		RateCurrency:       CurrencyARS,
		ExpensesCurrency:   CurrencyARS,
		FinalPriceCurrency: CurrencyARS,
	}
}

// BudgetOption is one alternative itinerary within a budget.
type BudgetOption struct {
	ID    string       `json:"id"`
	Items []BudgetItem `json:"items"`
}

// BudgetDocument is the whole budget persisted under budget_<requestId>.
// Exactly one of LastModified / ApprovalDate is set depending on whether
// the last write was a save or an approval.
//
// OptionSeq is a monotonic counter for option ids. The legacy app
// derived ids from the array length, which could collide after a
// deletion; the counter never reuses an id.
type BudgetDocument struct {
	RequestID      string         `json:"requestId"`
	RequestDetails Request        `json:"requestDetails"`
	BudgetOptions  []BudgetOption `json:"budgetOptions"`
	OptionSeq      int            `json:"optionSeq,omitempty"`
	LastModified   string         `json:"lastModified,omitempty"`
	ApprovalDate   string         `json:"approvalDate,omitempty"`
}

// TotalAmount sums finalPrice over every item of every option, ignoring
// currency tags. Note this spans all options, not one chosen
// alternative; it is what the legacy approval flow stored.
func (d BudgetDocument) TotalAmount() float64 {
	var total float64
	for _, opt := range d.BudgetOptions {
		for _, item := range opt.Items {
			total += item.FinalPrice
		}
	}
	return total
}
