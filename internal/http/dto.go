package http

import (
	"github.com/shopspring/decimal"

	"finnexus/internal/core"
	"finnexus/internal/services"
)

// transactionDTO is the wire shape of a transaction. Dates travel as
// YYYY-MM-DD strings and amounts as decimal strings; optional fields are
// omitted when absent.
type transactionDTO struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`

	CommissionRate        *decimal.Decimal `json:"commissionRate,omitempty"`
	CommissionAmount      *decimal.Decimal `json:"commissionAmount,omitempty"`
	CommissionPaymentDate *string          `json:"commissionPaymentDate,omitempty"`
	EmployeeName          string           `json:"employeeName,omitempty"`
	PendingAmount         *decimal.Decimal `json:"pendingAmount,omitempty"`
}

func toTransactionDTO(t core.Transaction) transactionDTO {
	dto := transactionDTO{
		ID:               t.ID,
		Date:             t.Date.Key(),
		Description:      t.Description,
		Amount:           t.Amount,
		Type:             string(t.Type),
		Category:         string(t.Category),
		Status:           string(t.Status),
		CommissionRate:   t.CommissionRate,
		CommissionAmount: t.CommissionAmount,
		EmployeeName:     t.EmployeeName,
		PendingAmount:    t.PendingAmount,
	}
	if t.CommissionPaymentDate != nil {
		key := t.CommissionPaymentDate.Key()
		dto.CommissionPaymentDate = &key
	}
	return dto
}

func toTransactionDTOs(txs []core.Transaction) []transactionDTO {
	dtos := make([]transactionDTO, 0, len(txs))
	for _, t := range txs {
		dtos = append(dtos, toTransactionDTO(t))
	}
	return dtos
}

// createTransactionRequest is the POST body. The ID and any derived
// commission amount are assigned server side.
type createTransactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`

	CommissionRate        *decimal.Decimal `json:"commissionRate,omitempty"`
	CommissionAmount      *decimal.Decimal `json:"commissionAmount,omitempty"`
	CommissionPaymentDate *string          `json:"commissionPaymentDate,omitempty"`
	EmployeeName          string           `json:"employeeName,omitempty"`
	PendingAmount         *decimal.Decimal `json:"pendingAmount,omitempty"`
}

func (req createTransactionRequest) toTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:             date,
		Description:      sanitizeInput(req.Description),
		Amount:           req.Amount,
		Type:             core.TransactionType(req.Type),
		Category:         core.Category(req.Category),
		Status:           core.TransactionStatus(req.Status),
		CommissionRate:   req.CommissionRate,
		CommissionAmount: req.CommissionAmount,
		EmployeeName:     sanitizeInput(req.EmployeeName),
		PendingAmount:    req.PendingAmount,
	}

	if req.CommissionPaymentDate != nil {
		d, err := core.ParseDate(*req.CommissionPaymentDate)
		if err != nil {
			return core.Transaction{}, err
		}
		t.CommissionPaymentDate = &d
	}
	return t, nil
}

// updateTransactionRequest is the PATCH body: absent fields stay untouched,
// the clear flags drop optional groups.
type updateTransactionRequest struct {
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Status      *string          `json:"status,omitempty"`

	CommissionRate        *decimal.Decimal `json:"commissionRate,omitempty"`
	CommissionAmount      *decimal.Decimal `json:"commissionAmount,omitempty"`
	CommissionPaymentDate *string          `json:"commissionPaymentDate,omitempty"`
	EmployeeName          *string          `json:"employeeName,omitempty"`
	PendingAmount         *decimal.Decimal `json:"pendingAmount,omitempty"`

	ClearCommission    bool `json:"clearCommission,omitempty"`
	ClearPendingAmount bool `json:"clearPendingAmount,omitempty"`
}

func (req updateTransactionRequest) toPatch() (services.TransactionPatch, error) {
	patch := services.TransactionPatch{
		Amount:             req.Amount,
		CommissionRate:     req.CommissionRate,
		CommissionAmount:   req.CommissionAmount,
		PendingAmount:      req.PendingAmount,
		ClearCommission:    req.ClearCommission,
		ClearPendingAmount: req.ClearPendingAmount,
	}

	if req.Date != nil {
		d, err := core.ParseDate(*req.Date)
		if err != nil {
			return services.TransactionPatch{}, err
		}
		patch.Date = &d
	}
	if req.Description != nil {
		desc := sanitizeInput(*req.Description)
		patch.Description = &desc
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Category != nil {
		c := core.Category(*req.Category)
		patch.Category = &c
	}
	if req.Status != nil {
		s := core.TransactionStatus(*req.Status)
		patch.Status = &s
	}
	if req.CommissionPaymentDate != nil {
		d, err := core.ParseDate(*req.CommissionPaymentDate)
		if err != nil {
			return services.TransactionPatch{}, err
		}
		patch.CommissionPaymentDate = &d
	}
	if req.EmployeeName != nil {
		name := sanitizeInput(*req.EmployeeName)
		patch.EmployeeName = &name
	}
	return patch, nil
}

// taxSettingDTO is the wire shape of a tax component.
type taxSettingDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

func toTaxSettingDTO(ts core.TaxSetting) taxSettingDTO {
	return taxSettingDTO{ID: ts.ID, Name: ts.Name, Percentage: ts.Percentage}
}
