package analyzing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

// Símbolos e siglas de moeda observados nos exports reais dos marketplaces.
// Os valores seguem numéricos depois da limpeza; nenhuma conversão cambial acontece aqui.
var currencyPattern = regexp.MustCompile(`(?i)(usd|eur|pln|rub|rur|руб\.?|zł|[$€₽])`)

// normalizeRows converte as linhas cruas em linhas tipadas. Nenhuma linha é
// descartada: falhas de parse viram campos nulos contados pela barreira de qualidade.
func (s *Service) normalizeRows(raw []domain.RawSaleRow) []domain.CleanSaleRow {
	clean := make([]domain.CleanSaleRow, 0, len(raw))

	for _, row := range raw {
		clean = append(clean, domain.CleanSaleRow{
			SaleDatetime: s.parseSaleDatetime(row.SaleTimestamp),
			AssetID:      normalizeAssetID(row.AssetID),
			AssetTitle:   strings.TrimSpace(row.AssetTitle),
			LicenseKind:  normalizeCategorical(row.LicenseKind),
			RoyaltyUSD:   parseRoyalty(row.RoyaltyRaw),
			MediaType:    normalizeCategorical(row.MediaType),
		})
	}

	return clean
}

// parseSaleDatetime tenta os layouts aceitos e normaliza para UTC; falha vira nulo
func (s *Service) parseSaleDatetime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	for _, layout := range s.cfg.DatetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}

	return nil
}

// parseRoyalty limpa e converte o valor de royalty: remove símbolos de moeda e
// espaços (inclusive não separáveis), resolve separadores decimais e de milhar
// e converte para número. Falha de parse ou valor negativo viram nulo.
func parseRoyalty(raw string) *float64 {
	cleaned := currencyPattern.ReplaceAllString(raw, "")
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	if cleaned == "" {
		return nil
	}

	cleaned = normalizeDecimalSeparators(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return nil
	}

	return &value
}

// normalizeDecimalSeparators resolve vírgulas e pontos: quando os dois aparecem,
// o separador mais à direita é o decimal e o outro é separador de milhar
func normalizeDecimalSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	return s
}

func normalizeAssetID(raw string) *string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return nil
	}
	return &id
}

func normalizeCategorical(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
