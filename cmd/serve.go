// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-montecarlo/common"
	"github.com/penny-vault/pv-montecarlo/handler"
	"github.com/penny-vault/pv-montecarlo/observability/opentelemetry"
	"github.com/penny-vault/pv-montecarlo/router"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	viper.BindEnv("cache.redis", "PVMC_CACHE_REDIS")
	viper.BindEnv("cache.redis_url", "REDIS_URL")
	serveCmd.Flags().String("redis-url", "", "Share cached results through this redis server")
	viper.BindPFlag("cache.redis_url", serveCmd.Flags().Lookup("redis-url"))
	viper.SetDefault("cache.local_size", common.DefaultCacheSize)
	viper.SetDefault("cache.ttl", 3600)

	viper.BindEnv("otlp.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	viper.BindEnv("otlp.http", "PVMC_OTLP_HTTP")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation API server",
	Long:  `Run an HTTP server that exposes projections, Monte Carlo runs and path samples as a JSON API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shutdownTracing, err := opentelemetry.Setup()
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to flush traces")
			}
		}()

		cacheConfig := common.CacheConfigFromViper()
		if cacheConfig.RedisURL == "" && viper.IsSet("cache.redis_url") {
			// a redis url on the command line enables redis
			cacheConfig.RedisURL = viper.GetString("cache.redis_url")
		}
		cache, err := common.NewResultCache(cacheConfig)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			AppName:     common.ProgramName + " " + common.CurrentVersion.String(),
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		// shutdown cleanly on interrupt
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		go func() {
			sig := <-sigs
			log.Info().Str("Signal", sig.String()).Msg("shutting down")
			if err := app.Shutdown(); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
		}()

		router.SetupRoutes(app, handler.New(cache, viper.GetInt("workers")))

		port := viper.GetString("server.port")
		log.Info().Str("Port", port).Msg("starting server")
		return app.Listen(":" + port)
	},
}
