package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/roster"
)

var columns = []string{"ID", "Name", "Email", "Address", "Phone"}

// employeeRow flattens a record into table cells.
func employeeRow(e models.Employee) []string {
	return []string{e.IDString(), e.Name, e.Email, e.Address, e.Phone}
}

// renderTable draws one page of records with the cursor row highlighted.
func renderTable(records []models.Employee, cursor, width int) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, employeeRow(r))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.header
			case row == cursor:
				return styles.selected
			default:
				return styles.cell
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}

// renderPager draws the page window with the current page bracketed.
func renderPager(v roster.View, window []int) string {
	var b strings.Builder

	if v.Page > 1 {
		b.WriteString("‹ ")
	} else {
		b.WriteString("  ")
	}
	for i, p := range window {
		if i > 0 {
			b.WriteString(" ")
		}
		if p == v.Page {
			b.WriteString(styles.ok.Render(fmt.Sprintf("[%d]", p)))
		} else {
			fmt.Fprintf(&b, "%d", p)
		}
	}
	if v.Page < v.TotalPages {
		b.WriteString(" ›")
	}

	fmt.Fprintf(&b, "   Page %d of %d · %d matching", v.Page, v.TotalPages, v.Total)
	return b.String()
}
