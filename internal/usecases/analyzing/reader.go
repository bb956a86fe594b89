package analyzing

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

// Colunas reconhecidas no export de vendas (casamento de cabeçalho
// insensível a maiúsculas)
const (
	colSaleDatetime = "sale_datetime_utc"
	colAssetID      = "asset_id"
	colAssetTitle   = "asset_title"
	colLicensePlan  = "license_plan"
	colRoyaltyUSD   = "royalty_usd"
	colMediaType    = "media_type"
)

var knownColumns = map[string]bool{
	colSaleDatetime: true,
	colAssetID:      true,
	colAssetTitle:   true,
	colLicensePlan:  true,
	colRoyaltyUSD:   true,
	colMediaType:    true,
}

// readRows decodifica o CSV em linhas cruas. Linhas individualmente ilegíveis
// são emitidas vazias (totalmente quebradas) para que a barreira de qualidade
// as conte, nunca descartadas em silêncio.
func (s *Service) readRows(payload []byte) ([]domain.RawSaleRow, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1 // linhas curtas são tratadas na extração campo a campo
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, NewAnalysisError(ErrMalformedInput, apiErrors.ErrMalformedInput, "arquivo vazio ou cabeçalho ilegível")
	}

	index := headerIndex(header)
	if len(index) == 0 {
		return nil, NewAnalysisError(ErrMalformedInput, apiErrors.ErrMalformedInput, "cabeçalho sem nenhuma coluna reconhecida")
	}

	var rows []domain.RawSaleRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rows = append(rows, domain.RawSaleRow{})
			continue
		}

		rows = append(rows, domain.RawSaleRow{
			SaleTimestamp: fieldAt(record, index, colSaleDatetime),
			AssetID:       fieldAt(record, index, colAssetID),
			AssetTitle:    fieldAt(record, index, colAssetTitle),
			LicenseKind:   fieldAt(record, index, colLicensePlan),
			RoyaltyRaw:    fieldAt(record, index, colRoyaltyUSD),
			MediaType:     fieldAt(record, index, colMediaType),
			Passthrough:   passthroughFields(record, header, index),
		})
	}

	return rows, nil
}

// headerIndex mapeia as colunas reconhecidas para suas posições no arquivo
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(knownColumns))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF")))
		if knownColumns[name] {
			index[name] = i
		}
	}

	return index
}

func fieldAt(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// passthroughFields preserva as colunas não reconhecidas (nome do arquivo,
// contribuidor, tamanho etc.) sem participação em nenhum cálculo
func passthroughFields(record []string, header []string, index map[string]int) map[string]string {
	known := make(map[int]bool, len(index))
	for _, i := range index {
		known[i] = true
	}

	var extra map[string]string
	for i, cell := range header {
		if known[i] || i >= len(record) {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[strings.ToLower(strings.TrimSpace(cell))] = record[i]
	}

	return extra
}
