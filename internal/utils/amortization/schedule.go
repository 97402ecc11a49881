// Package amortization computes loan installment schedules. It is pure:
// no I/O, no clock, decimal arithmetic throughout. Monetary outputs are
// rounded half-up to 2 decimal places; the final installment absorbs any
// rounding remainder so the outstanding balance reaches exactly zero and
// the principal column sums exactly to the loan principal.
package amortization

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Installment is one period of a computed schedule.
type Installment struct {
	Number             int
	DueDate            time.Time
	PrincipalDue       decimal.Decimal
	InterestDue        decimal.Decimal
	TotalDue           decimal.Decimal
	OutstandingBalance decimal.Decimal // after this installment
}

// Params are the inputs to a schedule computation. AnnualRate is a
// percentage (24 means 24% p.a.); FirstDueDate is the due date of
// installment 1, subsequent installments fall on monthly anniversaries.
type Params struct {
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TenureMonths int
	Method       domain.InterestMethod
	FirstDueDate time.Time
}

// Generate computes the full schedule for the given parameters.
func Generate(p Params) ([]Installment, error) {
	if p.TenureMonths <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "tenure must be at least one month, got %d", p.TenureMonths)
	}
	if p.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.New(apperrors.CodeValidation, "principal must be positive, got %s", p.Principal)
	}
	if p.AnnualRate.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "annual rate must not be negative, got %s", p.AnnualRate)
	}

	switch p.Method {
	case domain.ReducingBalance:
		return reducingBalance(p), nil
	case domain.FlatRate:
		return flatRate(p), nil
	default:
		return nil, apperrors.New(apperrors.CodeValidation, "unknown interest method %q", p.Method)
	}
}

// reducingBalance applies the standard EMI formula
// P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate, charging each
// period's interest on the running balance.
func reducingBalance(p Params) []Installment {
	n := int64(p.TenureMonths)
	monthlyRate := p.AnnualRate.Div(hundred).Div(twelve)

	var emi decimal.Decimal
	if monthlyRate.IsZero() {
		emi = p.Principal.Div(decimal.NewFromInt(n)).Round(2)
	} else {
		factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(n))
		emi = p.Principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1))).Round(2)
	}

	schedule := make([]Installment, 0, p.TenureMonths)
	balance := p.Principal
	for i := 1; i <= p.TenureMonths; i++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principal := emi.Sub(interest)
		if i == p.TenureMonths {
			// Final period zeroes the balance, absorbing rounding drift.
			principal = balance
		}
		balance = balance.Sub(principal)
		schedule = append(schedule, Installment{
			Number:             i,
			DueDate:            p.FirstDueDate.AddDate(0, i-1, 0),
			PrincipalDue:       principal,
			InterestDue:        interest,
			TotalDue:           principal.Add(interest),
			OutstandingBalance: balance,
		})
	}
	return schedule
}

// flatRate charges total interest P*(rate/100)*(n/12) split evenly across
// installments, principal likewise in equal parts.
func flatRate(p Params) []Installment {
	n := int64(p.TenureMonths)
	nDec := decimal.NewFromInt(n)

	totalInterest := p.Principal.Mul(p.AnnualRate.Div(hundred)).Mul(nDec.Div(twelve)).Round(2)
	perInterest := totalInterest.Div(nDec).Round(2)
	perPrincipal := p.Principal.Div(nDec).Round(2)

	schedule := make([]Installment, 0, p.TenureMonths)
	balance := p.Principal
	paidInterest := decimal.Zero
	for i := 1; i <= p.TenureMonths; i++ {
		principal := perPrincipal
		interest := perInterest
		if i == p.TenureMonths {
			// Final period squares both columns against their exact totals.
			principal = balance
			interest = totalInterest.Sub(paidInterest)
		}
		balance = balance.Sub(principal)
		paidInterest = paidInterest.Add(interest)
		schedule = append(schedule, Installment{
			Number:             i,
			DueDate:            p.FirstDueDate.AddDate(0, i-1, 0),
			PrincipalDue:       principal,
			InterestDue:        interest,
			TotalDue:           principal.Add(interest),
			OutstandingBalance: balance,
		})
	}
	return schedule
}
