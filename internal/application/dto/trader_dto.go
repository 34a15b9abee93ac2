package dto

import "github.com/shopspring/decimal"

// PunchInRequest body para POST /api/punch-in: la visita tal como la captura
// la app (hora y fecha locales del dispositivo, importe cobrado).
type PunchInRequest struct {
	EmployeeName  string          `json:"employeeName"`
	EmployeePhone string          `json:"employeePhone"`
	CompanyName   string          `json:"companyName"`
	ShopName      string          `json:"shopName"`
	Amount        decimal.Decimal `json:"amount"`
	Time          string          `json:"time"`
	Date          string          `json:"date"`
}
