// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-arcade/platform-settings/internal/engine/bootstrap"
	"github.com/go-arcade/platform-settings/internal/engine/config"
	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/http/jwt"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/version"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "platform-settings",
	Short: "platform settings service",
	Long:  "platform settings service manages the singleton platform configuration and its branding assets",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			return
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the http server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bootstrap 初始化应用
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		// 启动应用并等待退出信号
		bootstrap.Run(app, cleanup)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the settings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := initDatabase(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.AutoMigrate(manager.DB()); err != nil {
			return err
		}
		log.Infow("database migrated")
		return nil
	},
}

var seedName string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "insert the settings row when the table is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		settingRepo, cleanup, err := initSettingRepo(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := context.Background()
		settings, err := settingRepo.ListSettings(ctx)
		if err != nil {
			return err
		}
		if len(settings) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "settings row already present: %s\n", settings[0].ID)
			return nil
		}

		row := &model.Setting{}
		if name := strings.TrimSpace(seedName); name != "" {
			row.PlatformName = &name
		}
		if err := settingRepo.Create(ctx, row); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "settings row created: %s\n", row.ID)
		return nil
	},
}

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "issue a bearer token for the mutation endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpConf := config.ProvideHttpConfig(config.NewConf(configFile))
		if httpConf.Auth.SecretKey == "" {
			return fmt.Errorf("http.auth.secretKey is not configured")
		}
		token, err := jwt.GenToken(tokenSubject, []byte(httpConf.Auth.SecretKey), httpConf.Auth.AccessExpire)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, empty to read the environment only")
	seedCmd.Flags().StringVar(&seedName, "name", "", "initial platform name")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd, version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorw("command failed", "error", err)
		_ = log.Sync()
		panic(err)
	}
}
