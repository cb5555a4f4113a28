// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/cloudvault/pkg/app"
)

var (
	// configPath 配置文件路径，空值时按默认搜索路径与环境变量加载.
	configPath string

	// debug 打印 viper 内部状态.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "cloudvault",
		Short: "A multi-user cloud file storage service",
		Long:  "CloudVault 提供文件夹树、文件目录、标签检索与审计日志的云端存储后端.",
	}

	serveCmd = &cobra.Command{
		Use:     "serve",
		Short:   "start the HTTP server",
		Aliases: []string{"server", "run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print verbose config debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
