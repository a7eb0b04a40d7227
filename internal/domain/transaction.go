package domain

import (
	"math"
	"strings"
	"time"
)

// Transaction is one row of the sales ledger. Items holds the flattened
// item list: one product id per unit sold, comma-joined in cart line order.
// Ids must therefore never contain a comma.
type Transaction struct {
	Date     string  `csv:"date" json:"date"`
	Datetime string  `csv:"datetime" json:"datetime"`
	Items    string  `csv:"items" json:"items"`
	Total    float64 `csv:"total" json:"total"`
}

// NewTransaction stamps a checkout at the given moment. The total is
// rounded to 2 decimal places.
func NewTransaction(now time.Time, itemIDs []string, total float64) Transaction {
	return Transaction{
		Date:     now.Format("2006-01-02"),
		Datetime: now.Format("15:04:05"),
		Items:    strings.Join(itemIDs, ","),
		Total:    math.Round(total*100) / 100,
	}
}

// ItemIDs splits the flattened item list back into individual ids.
func (t Transaction) ItemIDs() []string {
	if t.Items == "" {
		return nil
	}
	return strings.Split(t.Items, ",")
}
