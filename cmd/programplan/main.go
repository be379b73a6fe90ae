package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Peezy0/Accel1/internal/config"
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 根命令，不带子命令时启动服务
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "programplan",
		Short:         "Program goal planner: goals, SLOs, assessment areas, proficiencies and courses",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env 可选
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("加载 .env 失败", "error", err)
			}
			// 初始化配置
			if err := config.InitConfig(configPath); err != nil {
				return fmt.Errorf("配置初始化失败: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "配置文件路径")

	root.AddCommand(
		newServeCmd(),
		newPastWorkCmd(),
		newGoalsCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func newPastWorkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "past-work",
		Short: "Print the most recent goal and everything recorded under it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap(ctx, config.GlobalConfig, bootstrapOptions{})
			if err != nil {
				return err
			}
			defer app.close(ctx)

			out := cmd.OutOrStdout()
			pw, err := app.plan.PastWork(ctx)
			if errors.Is(err, services.ErrNoPastWork) {
				fmt.Fprintln(out, services.NoPastWorkMessage)
				return nil
			}
			if err != nil {
				return err
			}
			for _, line := range pw.Lines() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List goals in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap(ctx, config.GlobalConfig, bootstrapOptions{})
			if err != nil {
				return err
			}
			defer app.close(ctx)

			goals, err := app.plan.ListGoals(ctx)
			if err != nil {
				return err
			}
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", g.ID, g.Text())
			}
			return nil
		},
	}
}
