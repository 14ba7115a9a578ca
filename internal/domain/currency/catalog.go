package currency

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed, validated set of supported currencies. The first
// entry is the default selection.
type Catalog struct {
	currencies []Currency
	byCode     map[string]int
}

type catalogFile struct {
	Currencies []Currency `yaml:"currencies"`
}

// DefaultCatalog returns the built-in catalog with USD first.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultCurrencies)
	if err != nil {
		panic(err)
	}
	return catalog
}

// NewCatalog validates entries once so formatting never has to.
func NewCatalog(entries []Currency) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no currencies", ErrInvalidCatalog)
	}
	c := &Catalog{
		currencies: make([]Currency, len(entries)),
		byCode:     make(map[string]int, len(entries)),
	}
	copy(c.currencies, entries)
	for i, entry := range c.currencies {
		if err := validateCurrency(entry); err != nil {
			return nil, err
		}
		if _, dup := c.byCode[entry.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrInvalidCatalog, entry.Code)
		}
		c.byCode[entry.Code] = i
	}
	return c, nil
}

// LoadCatalogFile reads a YAML catalog of the form `currencies: [...]`.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read currency catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(file.Currencies)
}

func validateCurrency(c Currency) error {
	if len(c.Code) != 3 || strings.ToUpper(c.Code) != c.Code {
		return fmt.Errorf("%w: code %q must be 3 upper-case letters", ErrInvalidCatalog, c.Code)
	}
	for _, r := range c.Code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: code %q must be 3 upper-case letters", ErrInvalidCatalog, c.Code)
		}
	}
	if strings.TrimSpace(c.Symbol) == "" {
		return fmt.Errorf("%w: %s has no symbol", ErrInvalidCatalog, c.Code)
	}
	if c.SymbolPosition != SymbolBefore && c.SymbolPosition != SymbolAfter {
		return fmt.Errorf("%w: %s symbol position %q", ErrInvalidCatalog, c.Code, c.SymbolPosition)
	}
	if c.DecimalPlaces < 0 {
		return fmt.Errorf("%w: %s decimal places must not be negative", ErrInvalidCatalog, c.Code)
	}
	if utf8.RuneCountInString(c.ThousandSeparator) != 1 {
		return fmt.Errorf("%w: %s thousand separator must be one character", ErrInvalidCatalog, c.Code)
	}
	if utf8.RuneCountInString(c.DecimalSeparator) != 1 {
		return fmt.Errorf("%w: %s decimal separator must be one character", ErrInvalidCatalog, c.Code)
	}
	if c.ThousandSeparator == c.DecimalSeparator {
		return fmt.Errorf("%w: %s separators must differ", ErrInvalidCatalog, c.Code)
	}
	return nil
}

func (c *Catalog) Default() Currency {
	return c.currencies[0]
}

func (c *Catalog) ByCode(code string) (Currency, bool) {
	idx, ok := c.byCode[code]
	if !ok {
		return Currency{}, false
	}
	return c.currencies[idx], true
}

func (c *Catalog) Available(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// All returns a copy of the catalog in declaration order.
func (c *Catalog) All() []Currency {
	out := make([]Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}
