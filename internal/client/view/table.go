package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ogurasousui/employee-directory/internal/client/activity"
	"github.com/ogurasousui/employee-directory/internal/client/api"
)

// Theme は表示テーマです。dark はヘッダを ANSI で強調します。
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	ansiHeader = "\x1b[1;36m"
	ansiReset  = "\x1b[0m"
)

// RenderTable は従業員一覧を表として描画します。ソート中の列には
// 方向インジケータを付けます。
func RenderTable(w io.Writer, employees []api.Employee, sortState SortState, theme Theme) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := []string{"ID", "NAME", "EMAIL", "POSITION", "CREATED"}
	columns := []string{"", "name", "email", "position", ""}
	for i, column := range columns {
		if column != "" && column == sortState.Column {
			headers[i] += sortIndicator(sortState.Direction)
		}
	}

	headerLine := strings.Join(headers, "\t")
	if theme == ThemeDark {
		headerLine = ansiHeader + headerLine + ansiReset
	}
	fmt.Fprintln(tw, headerLine)

	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Email,
			e.Position,
			e.CreatedAt.Format("2006-01-02"),
		)
	}

	_ = tw.Flush()

	if len(employees) == 0 {
		fmt.Fprintln(w, "(no employees)")
	}
}

func sortIndicator(direction Direction) string {
	if direction == Descending {
		return " ▼"
	}
	return " ▲"
}

// RenderActivity は操作履歴を相対時刻付きで描画します。相対時刻は
// 描画時点で一度だけ計算されます。
func RenderActivity(w io.Writer, entries []activity.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no recent activity)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\n",
			strings.ToUpper(string(entry.Type)),
			entry.EmployeeName,
			entry.Position,
			activity.RelativeLabel(entry.Timestamp, now),
		)
	}
	_ = tw.Flush()
}
