package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/document"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/storage"
)

func init() { //nolint: gochecknoinits
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(checkCmd)
}

var (
	checkConfigPath string

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration without starting the service",
		Long: `Check inspects the mail, storage, document and database configuration
and reports what the service would do on start. No network calls are made.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checkCfg, err := config.ReadConfig(checkConfigPath)
			if err != nil {
				return err
			}

			runChecks(cmd, &checkCfg)

			return nil
		},
	}
)

func runChecks(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println("Mail:")
	printCheck(cmd, cfg.Mail.Host != "", "host set")
	printCheck(cmd, cfg.Mail.Username != "", "username set")
	printCheck(cmd, cfg.Mail.Password != "", "password set")
	cmd.Printf("  - effective port: %d (secure: %t)\n", cfg.Mail.EffectivePort(), cfg.Mail.Secure())

	if !cfg.Mail.Complete() {
		cmd.Println("  ! email sending would fail with an incomplete-configuration error")
	}

	cmd.Println("Storage:")
	if storage.UseCloud(cfg.Storage) {
		cmd.Println("  - backend: cloud")
		cmd.Printf("  - endpoint: %s, bucket: %s\n", cfg.Storage.CloudEndpoint, cfg.Storage.CloudBucket)
	} else {
		cmd.Println("  - backend: local")

		if cfg.Storage.UseCloud {
			cmd.Println("  ! cloud storage is enabled but credentials are incomplete")
		}

		printCheck(cmd, dirExists(cfg.Storage.LocalRoot), fmt.Sprintf("local root %q exists", cfg.Storage.LocalRoot))
	}

	cmd.Println("Documents:")

	spec := document.RulebookSpec(cfg.Documents, cfg.Storage.LocalRoot)
	printCheck(cmd, fileExists(spec.LocalPath), fmt.Sprintf("rulebook file %q exists", spec.LocalPath))
	cmd.Printf("  - override setting key: %s\n", spec.SettingKey)

	cmd.Println("Database:")
	if cfg.DevMode || cfg.DB.GormEngine == "sqlite" {
		cmd.Printf("  - engine: sqlite (%s)\n", cfg.DB.Name)
	} else {
		cmd.Printf("  - engine: mysql (%s@%s:%d/%s)\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		printCheck(cmd, cfg.DB.Password != "", "password set")
	}
}

func printCheck(cmd *cobra.Command, ok bool, label string) {
	mark := "ok"
	if !ok {
		mark = "MISSING"
	}

	cmd.Printf("  - %s: %s\n", label, mark)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
