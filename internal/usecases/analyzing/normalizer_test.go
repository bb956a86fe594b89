package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestParseRoyalty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{
			name:     "Valor simples com ponto decimal",
			input:    "0.99",
			expected: floatPtr(0.99),
		},
		{
			name:     "Vírgula decimal deve virar ponto",
			input:    "1234,56",
			expected: floatPtr(1234.56),
		},
		{
			name:     "Símbolo de dólar com separador de milhar americano",
			input:    "$1,234.56",
			expected: floatPtr(1234.56),
		},
		{
			name:     "Formato europeu com ponto de milhar e vírgula decimal",
			input:    "1.234,56",
			expected: floatPtr(1234.56),
		},
		{
			name:     "Sigla USD com espaço",
			input:    "USD 12.30",
			expected: floatPtr(12.30),
		},
		{
			name:     "Sigla no final do valor",
			input:    "4,20 EUR",
			expected: floatPtr(4.20),
		},
		{
			name:     "Símbolo de rublo",
			input:    "₽250,00",
			expected: floatPtr(250.0),
		},
		{
			name:     "Abreviação de rublo em cirílico",
			input:    "120 руб.",
			expected: floatPtr(120.0),
		},
		{
			name:     "Espaço não separável como separador de milhar",
			input:    "1 234,56",
			expected: floatPtr(1234.56),
		},
		{
			name:     "Zero é um valor válido",
			input:    "0",
			expected: floatPtr(0),
		},
		{
			name:     "Texto não numérico vira nulo",
			input:    "n/a",
			expected: nil,
		},
		{
			name:     "Campo vazio vira nulo",
			input:    "",
			expected: nil,
		},
		{
			name:     "Apenas símbolo de moeda vira nulo",
			input:    "$",
			expected: nil,
		},
		{
			name:     "Valor negativo vira nulo",
			input:    "-3.50",
			expected: nil,
		},
		{
			name:     "Espaços em volta não atrapalham",
			input:    "  7.25  ",
			expected: floatPtr(7.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseRoyalty(tt.input)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.InDelta(t, *tt.expected, *result, 1e-9)
			}
		})
	}
}

func TestNormalizeDecimalSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Somente ponto permanece como está",
			input:    "12.34",
			expected: "12.34",
		},
		{
			name:     "Somente vírgula vira ponto",
			input:    "12,34",
			expected: "12.34",
		},
		{
			name:     "Ponto à direita da vírgula remove a vírgula de milhar",
			input:    "1,234.56",
			expected: "1234.56",
		},
		{
			name:     "Vírgula à direita do ponto remove o ponto de milhar",
			input:    "1.234,56",
			expected: "1234.56",
		},
		{
			name:     "Múltiplos separadores de milhar",
			input:    "1,234,567.89",
			expected: "1234567.89",
		},
		{
			name:     "Sem separadores permanece como está",
			input:    "1234",
			expected: "1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeDecimalSeparators(tt.input))
		})
	}
}

func TestService_parseSaleDatetime(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{
			name:     "Data e hora com espaço",
			input:    "2025-04-12 18:33:00",
			expected: timePtr(time.Date(2025, 4, 12, 18, 33, 0, 0, time.UTC)),
		},
		{
			name:     "Data e hora com T",
			input:    "2025-04-12T18:33:00",
			expected: timePtr(time.Date(2025, 4, 12, 18, 33, 0, 0, time.UTC)),
		},
		{
			name:     "RFC3339 com fuso é normalizado para UTC",
			input:    "2025-04-12T18:33:00+03:00",
			expected: timePtr(time.Date(2025, 4, 12, 15, 33, 0, 0, time.UTC)),
		},
		{
			name:     "Somente data assume meia-noite",
			input:    "2025-04-12",
			expected: timePtr(time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "Formato desconhecido vira nulo",
			input:    "12/04/2025",
			expected: nil,
		},
		{
			name:     "Campo vazio vira nulo",
			input:    "",
			expected: nil,
		},
		{
			name:     "Texto aleatório vira nulo",
			input:    "ontem",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.parseSaleDatetime(tt.input)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.True(t, tt.expected.Equal(*result), "esperado %v, obtido %v", tt.expected, result)
			}
		})
	}
}

func TestService_normalizeRows(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	raw := []domain.RawSaleRow{
		{
			SaleTimestamp: "2025-04-01 10:00:00",
			AssetID:       "  12345  ",
			AssetTitle:    "  Sunset over mountains  ",
			LicenseKind:   "  CUSTOM  ",
			RoyaltyRaw:    "$0.99",
			MediaType:     "Photo",
		},
		{
			SaleTimestamp: "data inválida",
			AssetID:       "",
			AssetTitle:    "Broken row",
			LicenseKind:   "Subscription",
			RoyaltyRaw:    "n/a",
			MediaType:     "VIDEO",
		},
	}

	clean := service.normalizeRows(raw)

	assert.Len(t, clean, 2)

	// Linha boa: todos os campos tipados preenchidos e categóricos em minúsculas
	good := clean[0]
	assert.NotNil(t, good.SaleDatetime)
	assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), *good.SaleDatetime)
	assert.Equal(t, "12345", *good.AssetID)
	assert.Equal(t, "Sunset over mountains", good.AssetTitle)
	assert.Equal(t, domain.LicenseCustom, good.LicenseKind)
	assert.Equal(t, 0.99, *good.RoyaltyUSD)
	assert.Equal(t, "photo", good.MediaType)
	assert.False(t, good.IsBroken())

	// Linha quebrada: falhas de parse viram nulos, mas a linha continua presente
	bad := clean[1]
	assert.Nil(t, bad.SaleDatetime)
	assert.Nil(t, bad.AssetID)
	assert.Nil(t, bad.RoyaltyUSD)
	assert.Equal(t, domain.LicenseSubscription, bad.LicenseKind)
	assert.Equal(t, "video", bad.MediaType)
	assert.True(t, bad.IsBroken())
}

func floatPtr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}
