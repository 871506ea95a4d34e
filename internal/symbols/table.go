package symbols

import (
	"strings"

	"CurrencyAnalyzer/internal/model"
)

// YahooSuffix marks a currency-pair ticker on Yahoo Finance.
const YahooSuffix = "=X"

// DefaultCurrencies is the fixed code list offered by the tool.
var DefaultCurrencies = []string{"USD", "ILS", "EUR", "GBP", "JPY", "CNY"}

// Symbol returns the Yahoo ticker for the from/to pair, e.g. USDILS=X.
func Symbol(from, to string) string {
	return from + to + YahooSuffix
}

// Build enumerates every ordered pair of distinct codes. Rows follow the input
// order: outer loop over the base currency, inner loop over the quote.
func Build(codes []string) []model.CurrencyPair {
	rows := make([]model.CurrencyPair, 0, len(codes)*len(codes))
	for _, from := range codes {
		for _, to := range codes {
			if from == to {
				continue
			}
			rows = append(rows, model.CurrencyPair{From: from, To: to, Symbol: Symbol(from, to)})
		}
	}
	return rows
}

// Parse splits a pair ticker back into its codes. Only tickers of the form
// AAABBB=X are accepted.
func Parse(symbol string) (from, to string, ok bool) {
	code, found := strings.CutSuffix(strings.ToUpper(symbol), YahooSuffix)
	if !found || len(code) != 6 {
		return "", "", false
	}
	return code[:3], code[3:], true
}
