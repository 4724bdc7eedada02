package model

import "github.com/shopspring/decimal"

// Dashboard is the view model rendered after every fresh read.
type Dashboard struct {
	Categories    []Category      `json:"categories"`
	Products      []Product       `json:"products"`
	CategoryNames []string        `json:"categoryNames"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Chart         []ChartBar      `json:"chart"`
}

// ChartBar is one bar of the stock quantity chart.
type ChartBar struct {
	Label    string  `json:"label"`
	Quantity int     `json:"quantity"`
	Percent  float64 `json:"percent"` // share of the largest quantity, 0-100
}

// Summary is the aggregate stock view served by the API.
type Summary struct {
	ProductCount int             `json:"productCount"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	Chart        []ChartBar      `json:"chart"`
}
