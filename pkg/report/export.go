package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/obraseguro/backend/pkg/apperr"
)

// WriteStatsXLSX renders a conformidade summary as a downloadable workbook.
func WriteStatsXLSX(stats *ConformidadeStats, windowDays int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Conformidade"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperr.Upstream("failed to create sheet", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	rows := [][]interface{}{
		{"Relatório de Conformidade", fmt.Sprintf("últimos %d dias", windowDays)},
		{},
		{"Status", "Total", "Percentual"},
		{"Conforme", stats.Conforme, stats.PercentualConforme},
		{"Não Conforme", stats.NaoConforme, stats.PercentualNaoConforme},
		{"Pendente", stats.Pendente, stats.PercentualPendente},
		{"Não Aplicável", stats.NaoAplicavel, ""},
		{},
		{"Total de respostas", stats.Total},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, apperr.Upstream("failed to address cell", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, apperr.Upstream("failed to write row", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperr.Upstream("failed to write workbook", err)
	}
	return buf, nil
}
