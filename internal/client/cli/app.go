package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/ogurasousui/employee-directory/internal/client/activity"
	"github.com/ogurasousui/employee-directory/internal/client/api"
	"github.com/ogurasousui/employee-directory/internal/client/state"
	"github.com/ogurasousui/employee-directory/internal/client/view"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// App は empctl の中心となるコントローラです。ユーザー操作ごとに
// API 呼び出し・履歴の記録・スナップショットの更新を 1 つの手順に
// まとめます。
type App struct {
	client    *api.Client
	snapshots *state.Store
	log       *activity.Log
	settings  *settingsStore
	clock     Clock
	out       io.Writer
	errOut    io.Writer
}

// AppOption は App の生成オプションです。
type AppOption func(*App)

// WithClock は時刻の供給元を差し替えます。
func WithClock(clock Clock) AppOption {
	return func(a *App) {
		a.clock = clock
	}
}

// WithAPIClient は API クライアントを差し替えます。
func WithAPIClient(client *api.Client) AppOption {
	return func(a *App) {
		a.client = client
	}
}

// NewApp は設定から App を組み立てます。状態ファイルはすべて
// cfg.StateDir 配下に置かれます。
func NewApp(cfg Config, out, errOut io.Writer, opts ...AppOption) *App {
	a := &App{
		settings: newSettingsStore(filepath.Join(cfg.StateDir, "view.json")),
		clock:    realClock{},
		out:      out,
		errOut:   errOut,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.client == nil {
		a.client = api.New(cfg.ServerURL)
	}
	a.snapshots = state.NewStore(filepath.Join(cfg.StateDir, "snapshot.json"), a.clock)
	a.log = activity.Open(filepath.Join(cfg.StateDir, "activity.json"), a.clock)
	return a
}

// List は従業員一覧を表示します。有効なスナップショットがあれば先に
// キャッシュ表示し、その後サーバーから取り直して差分があれば再描画
// します。refresh が真のときはキャッシュを読みません。
func (a *App) List(ctx context.Context, query, sortColumn string, refresh bool) error {
	current := a.settings.load()
	vs := &view.State{Query: query, Sort: current.Sort}
	if sortColumn != "" {
		if !view.IsSortableColumn(sortColumn) {
			return fmt.Errorf("unsupported sort column %q (choose from: %s)", sortColumn, strings.Join(view.SortableColumns(), ", "))
		}
		vs.ToggleSort(sortColumn)
	}

	renderedFromCache := false
	if !refresh {
		if cached, ok := a.snapshots.Load(); ok {
			vs.Employees = cached
			fmt.Fprintln(a.out, "(cached)")
			a.render(vs, current.Theme)
			renderedFromCache = true
		}
	}

	live, err := a.client.ListEmployees(ctx)
	if err != nil {
		if renderedFromCache {
			fmt.Fprintln(a.errOut, "warning: could not reach the server, showing cached data")
			a.saveSort(current, vs.Sort)
			return nil
		}
		return a.reportError(err)
	}

	changed := !reflect.DeepEqual(live, vs.Employees)
	vs.Employees = live
	if !renderedFromCache || changed {
		a.render(vs, current.Theme)
	}

	if err := a.snapshots.Save(live); err != nil {
		fmt.Fprintf(a.errOut, "warning: could not save snapshot: %v\n", err)
	}
	a.saveSort(current, vs.Sort)
	return nil
}

// Get は従業員 1 件を表示します。
func (a *App) Get(ctx context.Context, id int64) error {
	emp, err := a.client.GetEmployee(ctx, id)
	if err != nil {
		return a.reportError(err)
	}

	current := a.settings.load()
	view.RenderTable(a.out, []api.Employee{*emp}, view.SortState{}, current.Theme)
	return nil
}

// Create は従業員を登録し、履歴へ記録して一覧を取り直します。
func (a *App) Create(ctx context.Context, name, email, position string) error {
	if fieldErrors := ValidateForm(name, email, position); len(fieldErrors) > 0 {
		return a.reportError(&api.ValidationError{Fields: fieldErrors})
	}

	created, err := a.client.CreateEmployee(ctx, api.EmployeeInput{Name: name, Email: email, Position: position})
	if err != nil {
		return a.reportError(err)
	}

	a.recordActivity(activity.TypeAdded, created.Name, created.Position)
	fmt.Fprintf(a.out, "Employee created successfully: %s (%s)\n", created.Name, created.Position)
	a.refreshSnapshot(ctx)
	return nil
}

// Update は従業員を更新し、履歴へ記録して一覧を取り直します。
func (a *App) Update(ctx context.Context, id int64, name, email, position string) error {
	if fieldErrors := ValidateForm(name, email, position); len(fieldErrors) > 0 {
		return a.reportError(&api.ValidationError{Fields: fieldErrors})
	}

	updated, err := a.client.UpdateEmployee(ctx, id, api.EmployeeInput{Name: name, Email: email, Position: position})
	if err != nil {
		return a.reportError(err)
	}

	a.recordActivity(activity.TypeEdited, updated.Name, updated.Position)
	fmt.Fprintf(a.out, "Employee updated successfully: %s (%s)\n", updated.Name, updated.Position)
	a.refreshSnapshot(ctx)
	return nil
}

// Lookup は削除確認などのために従業員を取得します。表示は行いません。
func (a *App) Lookup(ctx context.Context, id int64) (*api.Employee, error) {
	emp, err := a.client.GetEmployee(ctx, id)
	if err != nil {
		return nil, a.reportError(err)
	}
	return emp, nil
}

// Delete は従業員を削除し、履歴へ記録して一覧を取り直します。呼び出し
// 側で確認済みであることを前提とします。
func (a *App) Delete(ctx context.Context, emp *api.Employee) error {
	if err := a.client.DeleteEmployee(ctx, emp.ID); err != nil {
		return a.reportError(err)
	}

	a.recordActivity(activity.TypeDeleted, emp.Name, emp.Position)
	fmt.Fprintf(a.out, "Employee deleted successfully: %s (%s)\n", emp.Name, emp.Position)
	a.refreshSnapshot(ctx)
	return nil
}

// ShowLog は操作履歴を新しい順に表示します。
func (a *App) ShowLog() error {
	view.RenderActivity(a.out, a.log.Entries(), a.clock.Now())
	return nil
}

// Export は従業員一覧を xlsx ファイルへ書き出します。
func (a *App) Export(ctx context.Context, path string) error {
	employees, err := a.client.ListEmployees(ctx)
	if err != nil {
		return a.reportError(err)
	}

	if err := exportWorkbook(path, employees); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Exported %d employees to %s\n", len(employees), path)
	return nil
}

// SetTheme は表示テーマを保存します。
func (a *App) SetTheme(name string) error {
	theme := view.Theme(name)
	if theme != view.ThemeLight && theme != view.ThemeDark {
		return fmt.Errorf("unknown theme %q (choose light or dark)", name)
	}

	current := a.settings.load()
	current.Theme = theme
	if err := a.settings.save(current); err != nil {
		return fmt.Errorf("could not save theme: %w", err)
	}

	fmt.Fprintf(a.out, "Theme set to %s\n", theme)
	return nil
}

func (a *App) render(vs *view.State, theme view.Theme) {
	view.RenderTable(a.out, vs.Visible(), vs.Sort, theme)
}

func (a *App) saveSort(current settings, sort view.SortState) {
	current.Sort = sort
	if err := a.settings.save(current); err != nil {
		fmt.Fprintf(a.errOut, "warning: could not save view settings: %v\n", err)
	}
}

// refreshSnapshot は変更系の操作後に一覧を取り直してキャッシュを更新
// します。サーバー側の正規化を反映した値を次回表示に使うためです。
func (a *App) refreshSnapshot(ctx context.Context) {
	live, err := a.client.ListEmployees(ctx)
	if err != nil {
		fmt.Fprintln(a.errOut, "warning: could not refresh the employee list")
		return
	}
	if err := a.snapshots.Save(live); err != nil {
		fmt.Fprintf(a.errOut, "warning: could not save snapshot: %v\n", err)
	}
}

func (a *App) recordActivity(t activity.Type, name, position string) {
	if err := a.log.Record(t, name, position); err != nil {
		fmt.Fprintf(a.errOut, "warning: could not save activity log: %v\n", err)
	}
}

// reportError はサーバー由来のエラーを利用者向けに整形して表示し、
// 終了コード用のエラーをそのまま返します。
func (a *App) reportError(err error) error {
	var validation *api.ValidationError
	if errors.As(err, &validation) {
		fmt.Fprintln(a.errOut, "Validation failed:")
		for _, fieldError := range validation.Fields {
			fmt.Fprintf(a.errOut, "  %s: %s\n", fieldError.Field, fieldError.Message)
		}
		return err
	}

	var conflict *api.ConflictError
	if errors.As(err, &conflict) {
		if field := api.ConflictField(conflict.Message); field != "" {
			fmt.Fprintf(a.errOut, "Conflict on %s: %s\n", field, conflict.Message)
		} else {
			fmt.Fprintf(a.errOut, "Conflict: %s\n", conflict.Message)
		}
		return err
	}

	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(a.errOut, "Error: %s\n", notFound.Message)
		return err
	}

	fmt.Fprintln(a.errOut, "Error: could not reach the server")
	return err
}
