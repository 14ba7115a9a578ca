package currency

type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency is an immutable catalog entry describing how amounts are rendered.
type Currency struct {
	Code              string         `json:"code" yaml:"code"`
	Symbol            string         `json:"symbol" yaml:"symbol"`
	Name              string         `json:"name" yaml:"name"`
	SymbolPosition    SymbolPosition `json:"symbolPosition" yaml:"symbol_position"`
	DecimalPlaces     int32          `json:"decimalPlaces" yaml:"decimal_places"`
	ThousandSeparator string         `json:"thousandSeparator" yaml:"thousand_separator"`
	DecimalSeparator  string         `json:"decimalSeparator" yaml:"decimal_separator"`
}

const (
	CodeUSD = "USD"
	CodeINR = "INR"

	DefaultSettingsKey = "hrms_currency"
)

var defaultCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "EUR", Symbol: "€", Name: "Euro", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "GBP", Symbol: "£", Name: "British Pound", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", SymbolPosition: SymbolBefore, DecimalPlaces: 0, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "SAR", Symbol: "ر.س", Name: "Saudi Riyal", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ".", DecimalSeparator: ","},
	{Code: "MXN", Symbol: "Mex$", Name: "Mexican Peso", SymbolPosition: SymbolBefore, DecimalPlaces: 2, ThousandSeparator: ",", DecimalSeparator: "."},
}
