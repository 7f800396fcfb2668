package ioformat_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inspire-group/tempest/ioformat"
)

func TestLoadClients_OrdersByTimestampWhenPresent(t *testing.T) {
	r := strings.NewReader(strings.Join([]string{
		"B 2020-01-02 00:00:00",
		"A 2020-01-01 00:00:00",
	}, "\n"))

	records, err := ioformat.LoadClients(r)
	require.NoError(t, err)
	require.Equal(t, "A", records[0].AS)
	require.Equal(t, "B", records[1].AS)
}

func TestLoadClients_PreservesInputOrderWithoutTimestamps(t *testing.T) {
	r := strings.NewReader("B\nA\n")
	records, err := ioformat.LoadClients(r)
	require.NoError(t, err)
	require.Equal(t, "B", records[0].AS)
	require.Equal(t, "A", records[1].AS)
}

func TestLoadGuards_SkipsCommentsAndBlankLines(t *testing.T) {
	r := strings.NewReader("# heading\n\nG1\nG2\n")
	guards, err := ioformat.LoadGuards(r)
	require.NoError(t, err)
	require.Equal(t, []string{"G1", "G2"}, guards)
}

func TestExpandCountries_InvalidCodeIsError(t *testing.T) {
	_, err := ioformat.ExpandCountries([]string{"ZZ"}, map[string][]string{})
	require.ErrorIs(t, err, ioformat.ErrUnknownCountry)
}

func TestExpandCountries_PreservesOrder(t *testing.T) {
	countryMap := map[string][]string{
		"US": {"701", "702"},
		"DE": {"3320"},
	}
	clients, err := ioformat.ExpandCountries([]string{"US", "DE"}, countryMap)
	require.NoError(t, err)
	require.Equal(t, []string{"701", "702", "3320"}, clients)
}

func TestWriteResilience_WritesClientAndGuardKeys(t *testing.T) {
	var buf bytes.Buffer
	err := ioformat.WriteResilience(&buf, map[string]map[string]float64{
		"C1": {"G1": 0.5},
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"C1"`)
	require.Contains(t, buf.String(), `"G1":0.5`)
}

func TestWriteRisk_OneLinePerClientInOrder(t *testing.T) {
	var buf bytes.Buffer
	err := ioformat.WriteRisk(&buf, []string{"C2", "C1"}, map[string]float64{"C1": 1, "C2": 2})
	require.NoError(t, err)
	require.Equal(t, "2\n1\n", buf.String())
}
