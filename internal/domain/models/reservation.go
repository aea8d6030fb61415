package models

// ReservationStatusActive is the only status the approval flow assigns.
const ReservationStatusActive = "active"

// ReservationCode is one budget line flattened onto the reservation at
// approval time, annotated with its service type ("otro" when the line
// never got one).
type ReservationCode struct {
	ServiceType        string  `json:"serviceType"`
	Code               string  `json:"code"`
	Date               string  `json:"date"`
	EndDate            string  `json:"endDate"`
	Details            string  `json:"details"`
	Rate               float64 `json:"rate"`
	RateCurrency       string  `json:"rateCurrency"`
	Expenses           float64 `json:"expenses"`
	ExpensesCurrency   string  `json:"expensesCurrency"`
	FinalPrice         float64 `json:"finalPrice"`
	FinalPriceCurrency string  `json:"finalPriceCurrency"`
}

// NewReservationCodes flattens every line of every option onto the
// reservation, tagging each with its service type; lines that never got
// one become "otro".
func NewReservationCodes(doc BudgetDocument) []ReservationCode {
	codes := []ReservationCode{}
	for _, opt := range doc.BudgetOptions {
		for _, item := range opt.Items {
			serviceType := item.ServiceType
			if serviceType == "" {
				serviceType = ServiceOtro
			}
			codes = append(codes, ReservationCode{
				ServiceType:        serviceType,
				Code:               item.ReservationCode,
				Date:               item.Date,
				EndDate:            item.EndDate,
				Details:            item.Details,
				Rate:               item.Rate,
				RateCurrency:       item.RateCurrency,
				Expenses:           item.Expenses,
				ExpensesCurrency:   item.ExpensesCurrency,
				FinalPrice:         item.FinalPrice,
				FinalPriceCurrency: item.FinalPriceCurrency,
			})
		}
	}
	return codes
}

// Reservation is the confirmed booking created when a budget is
// approved. Passengers holds embedded passenger copies added after
// creation; PassengerCount is the numeric head count carried over from
// the originating request and is independent of len(Passengers).
type Reservation struct {
	ID               string            `json:"id"`
	RequestID        string            `json:"requestId"`
	BudgetData       BudgetDocument    `json:"budgetData"`
	Status           string            `json:"status"`
	CreationDate     string            `json:"creationDate"`
	TravelDate       string            `json:"travelDate"`
	Passengers       []Passenger       `json:"passengers"`
	PassengerCount   int               `json:"passengerCount"`
	Nights           int               `json:"nights"`
	Minors           int               `json:"minors"`
	Infants          int               `json:"infants"`
	Responsible      string            `json:"responsible"`
	TotalAmount      float64           `json:"totalAmount"`
	ReservationCodes []ReservationCode `json:"reservationCodes"`
	Payments         []Payment         `json:"payments"`
}

// CollectedAmount sums cobro payments. Currency tags are ignored, same
// as every other total in the system.
func (r Reservation) CollectedAmount() float64 {
	var total float64
	for _, p := range r.Payments {
		if p.Type == PaymentCobro {
			total += p.Amount
		}
	}
	return total
}

// RemainingAmount is the balance still owed by the traveler.
func (r Reservation) RemainingAmount() float64 {
	return r.TotalAmount - r.CollectedAmount()
}
