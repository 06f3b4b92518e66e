package parser

import (
	"strings"

	"github.com/insightdelivered/rekening-koran/internal/models"
)

func textPage(num int, lines ...string) models.PageContent {
	return models.PageContent{Number: num, Text: strings.Join(lines, "\n")}
}

func row(cells ...string) models.TableRow {
	tr := make(models.TableRow, len(cells))
	for i, c := range cells {
		if c != "" {
			tr[i] = models.TextCell(c)
		}
	}
	return tr
}

// fieldMap pairs a record with its column names for readable assertions.
func fieldMap(st *models.Statement, i int) map[string]string {
	m := make(map[string]string, len(st.Columns))
	for _, c := range st.Columns {
		m[c] = st.Field(i, c)
	}
	return m
}
