package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// CreateLoanRequest disburses a new loan: the schedule is generated and
// the disbursement entry posted in the same unit. Reference is the unique
// external document number keying retry idempotence.
type CreateLoanRequest struct {
	CustomerID   string          `json:"customerID" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	AnnualRate   decimal.Decimal `json:"annualRate"`
	TenureMonths int             `json:"tenureMonths" binding:"required,min=1"`
	Method       string          `json:"method" binding:"required,oneof=REDUCING_BALANCE FLAT_RATE"`
	DisbursedOn  time.Time       `json:"disbursedOn" binding:"required"`
	Reference    string          `json:"reference" binding:"required"`
}

// RepayLoanRequest applies a repayment against the loan's schedule.
type RepayLoanRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Reference   string          `json:"reference" binding:"required"` // receipt number, unique
}

// ScheduleEntryResponse mirrors one installment of a loan schedule.
type ScheduleEntryResponse struct {
	InstallmentNo int             `json:"installmentNo"`
	DueDate       time.Time       `json:"dueDate"`
	PrincipalDue  decimal.Decimal `json:"principalDue"`
	InterestDue   decimal.Decimal `json:"interestDue"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	Status        string          `json:"status"`
}

// LoanResponse mirrors a loan with its optional schedule.
type LoanResponse struct {
	LoanID       string                  `json:"loanID"`
	CustomerID   string                  `json:"customerID"`
	Principal    decimal.Decimal         `json:"principal"`
	AnnualRate   decimal.Decimal         `json:"annualRate"`
	TenureMonths int                     `json:"tenureMonths"`
	Method       string                  `json:"method"`
	DisbursedOn  time.Time               `json:"disbursedOn"`
	Status       string                  `json:"status"`
	Schedule     []ScheduleEntryResponse `json:"schedule,omitempty"`
}

// RepaymentResponse reports how a payment was allocated and the entry it
// posted.
type RepaymentResponse struct {
	LoanID         string          `json:"loanID"`
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	PrincipalPaid  decimal.Decimal `json:"principalPaid"`
	InterestPaid   decimal.Decimal `json:"interestPaid"`
}

func ToLoanResponse(loan *domain.Loan, schedule []domain.ScheduleEntry) LoanResponse {
	resp := LoanResponse{
		LoanID:       loan.LoanID,
		CustomerID:   loan.CustomerID,
		Principal:    loan.Principal,
		AnnualRate:   loan.AnnualRate,
		TenureMonths: loan.TenureMonths,
		Method:       string(loan.Method),
		DisbursedOn:  loan.DisbursedOn,
		Status:       string(loan.Status),
	}
	for _, s := range schedule {
		resp.Schedule = append(resp.Schedule, ScheduleEntryResponse{
			InstallmentNo: s.InstallmentNo,
			DueDate:       s.DueDate,
			PrincipalDue:  s.PrincipalDue,
			InterestDue:   s.InterestDue,
			PrincipalPaid: s.PrincipalPaid,
			InterestPaid:  s.InterestPaid,
			Status:        string(s.Status),
		})
	}
	return resp
}
