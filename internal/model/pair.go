package model

// CurrencyPair is one row of the symbol table.
type CurrencyPair struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Symbol string `json:"symbol"`
}
