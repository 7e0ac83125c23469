package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteStatsXLSX(t *testing.T) {
	stats := &ConformidadeStats{
		Conforme:              3,
		NaoConforme:           1,
		Pendente:              1,
		NaoAplicavel:          1,
		Total:                 6,
		PercentualConforme:    50.0,
		PercentualNaoConforme: 16.7,
		PercentualPendente:    16.7,
	}

	buf, err := WriteStatsXLSX(stats, 30)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Conformidade"}, f.GetSheetList(), "only the report sheet survives")

	title, err := f.GetCellValue("Conformidade", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Relatório de Conformidade", title)

	window, err := f.GetCellValue("Conformidade", "B1")
	require.NoError(t, err)
	assert.Equal(t, "últimos 30 dias", window)

	conforme, err := f.GetCellValue("Conformidade", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", conforme)

	total, err := f.GetCellValue("Conformidade", "B9")
	require.NoError(t, err)
	assert.Equal(t, "6", total)
}
