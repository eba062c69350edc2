package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Execute は empctl のルートコマンドを実行します。
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand は empctl のコマンドツリーを組み立てます。App は
// 最初のサブコマンド実行時に設定から生成されます。
func NewRootCommand() *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:           "empctl",
		Short:         "Employee directory client",
		Long:          "empctl is a command line client for the employee directory server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			app = NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}

	root.AddCommand(
		newListCommand(&app),
		newGetCommand(&app),
		newAddCommand(&app),
		newUpdateCommand(&app),
		newDeleteCommand(&app),
		newLogCommand(&app),
		newExportCommand(&app),
		newThemeCommand(&app),
	)

	return root
}

func newListCommand(app **App) *cobra.Command {
	var (
		search  string
		sortBy  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return (*app).List(cmd.Context(), search, sortBy, refresh)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name, email or position")
	cmd.Flags().StringVar(&sortBy, "sort", "", "toggle sort on a column (name, email, position)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "skip the cached snapshot")

	return cmd
}

func newGetCommand(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a single employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			return (*app).Get(cmd.Context(), id)
		},
	}
}

func newAddCommand(app **App) *cobra.Command {
	var name, email, position string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return (*app).Create(cmd.Context(), name, email, position)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "employee name")
	cmd.Flags().StringVar(&email, "email", "", "employee email")
	cmd.Flags().StringVar(&position, "position", "", "employee position")

	return cmd
}

func newUpdateCommand(app **App) *cobra.Command {
	var name, email, position string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			return (*app).Update(cmd.Context(), id, name, email, position)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "employee name")
	cmd.Flags().StringVar(&email, "email", "", "employee email")
	cmd.Flags().StringVar(&position, "position", "", "employee position")

	return cmd
}

func newDeleteCommand(app **App) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}

			emp, err := (*app).Lookup(cmd.Context(), id)
			if err != nil {
				return err
			}

			if !skipConfirm {
				prompt := fmt.Sprintf("Delete %s (%s)? [y/N]: ", emp.Name, emp.Position)
				confirmed, err := confirm(cmd, prompt)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			return (*app).Delete(cmd.Context(), emp)
		},
	}

	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "delete without confirmation")

	return cmd
}

func newLogCommand(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show recent activity",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return (*app).ShowLog()
		},
	}
}

func newExportCommand(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export employees to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*app).Export(cmd.Context(), args[0])
		},
	}
}

func newThemeCommand(app **App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme light|dark",
		Short:     "Set the display theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(_ *cobra.Command, args []string) error {
			return (*app).SetTheme(args[0])
		},
	}
}

func parseEmployeeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", raw)
	}
	return id, nil
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
