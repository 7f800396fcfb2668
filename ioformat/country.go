package ioformat

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/biter777/countries"
)

// ErrUnknownCountry is returned when a country code fails ISO-3166
// alpha-2 validation, per §4.8's "fail fast instead of silently
// producing zero clients" requirement.
var ErrUnknownCountry = fmt.Errorf("ioformat: unknown country code")

// LoadCountryMap parses §6's country-to-AS JSON map: a flat object of
// 2-letter country code to array of AS identifiers.
func LoadCountryMap(r io.Reader) (map[string][]string, error) {
	var m map[string][]string
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("ioformat: decoding country map: %w", err)
	}

	return m, nil
}

// ExpandCountries translates a list of 2-letter country codes into
// client ASes, per the [FULL] §4.8 supplement: each code is validated
// against github.com/biter777/countries before lookup, preserving the
// input country order and, within a country, the map's own array
// order.
func ExpandCountries(codes []string, countryMap map[string][]string) ([]string, error) {
	var clients []string

	for _, code := range codes {
		if countries.ByName(code) == countries.Unknown {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, code)
		}

		clients = append(clients, countryMap[code]...)
	}

	return clients, nil
}
