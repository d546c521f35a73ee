package main

import (
	"context"
	"fmt"
	"os"

	"github.com/looker-open-source/embed-content-seed/internal/seed"
	"github.com/looker-open-source/embed-content-seed/pkg/interop"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
  Use:   "embed-content-seed",
  Short: "Seed Looker content for an embed group",
  Long: `Ensures an embed group's shared folder exists, creates the requested
subfolders beneath it, and populates them by copying existing dashboards or
importing LookML dashboards. Safe to re-run: existing folders and content
are left alone.`,
  Run: func(cmd *cobra.Command, args []string) {
    run()
  },
}

func init() {
  flags := rootCmd.Flags()

  flags.String("external_group_id", "", "external group ID of the embed group (required)")
  flags.String("external_user_id", "", "external user ID for the embed session")
  flags.StringSlice("subfolders", nil, "subfolder names to create under the group folder")
  flags.StringSlice("source_dashboard_ids", nil, "dashboard IDs to copy into the group folder")
  flags.StringSlice("lookml_dashboard_ids", nil, "LookML dashboard IDs to import into the group folder; pass '*' to import all")
  flags.StringSlice("source_dashboard_mapping", nil, "id:subfolder pairs placing copied dashboards")
  flags.StringSlice("lookml_dashboard_mapping", nil, "id:subfolder pairs placing imported LookML dashboards")

  viper.BindPFlag("externalGroupId", flags.Lookup("external_group_id"))
  viper.BindPFlag("externalUserId", flags.Lookup("external_user_id"))
  viper.BindPFlag("subfolders", flags.Lookup("subfolders"))
  viper.BindPFlag("sourceDashboardIds", flags.Lookup("source_dashboard_ids"))
  viper.BindPFlag("lookmlDashboardIds", flags.Lookup("lookml_dashboard_ids"))
  viper.BindPFlag("sourceDashboardMapping", flags.Lookup("source_dashboard_mapping"))
  viper.BindPFlag("lookmlDashboardMapping", flags.Lookup("lookml_dashboard_mapping"))
}

func run() {
  i, err := interop.NewInteroperability()
  if err != nil {
    fmt.Printf("failed to create interop: %s\n", err)
    os.Exit(1)
  }

  defer i.Shutdown()

  seeder, err := seed.New(i)
  if err != nil {
    fmt.Printf("seed failed: %s\n", err)
    os.Exit(2)
  }

  report, err := seeder.Seed(context.Background())
  if err != nil {
    fmt.Printf("seed failed: %s\n", err)
    os.Exit(3)
  }

  if report.Failed() {
    os.Exit(3)
  }
}

func main() {
  if err := rootCmd.Execute(); err != nil {
    os.Exit(1)
  }
}
