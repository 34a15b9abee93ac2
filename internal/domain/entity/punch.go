package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PunchIn registra una visita de un vendedor a una tienda: quién, dónde y por
// cuánto. Time y Date llegan tal cual los captura la app (hora y fecha locales
// del dispositivo).
type PunchIn struct {
	ID            string          `json:"id"`
	EmployeeName  string          `json:"employeeName"`
	EmployeePhone string          `json:"employeePhone"`
	CompanyName   string          `json:"companyName"`
	ShopName      string          `json:"shopName"`
	Amount        decimal.Decimal `json:"amount"`
	Time          string          `json:"time"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}
