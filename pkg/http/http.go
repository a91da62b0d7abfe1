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

package http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
)

type Http struct {
	Host            string
	Port            int
	AccessLog       bool
	BodyLimit       int // MB
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
	Cors            Cors
}

// Cors lists the origins allowed to call the API. "*" disables credentials.
type Cors struct {
	AllowOrigins string
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// Auth protects the mutation routes when SecretKey is set
type Auth struct {
	SecretKey    string
	AccessExpire time.Duration
}

func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.BodyLimit <= 0 {
		h.BodyLimit = 20
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 120
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10
	}
	if h.Cors.AllowOrigins == "" {
		h.Cors.AllowOrigins = "*"
	}
	if h.Auth.AccessExpire <= 0 {
		h.Auth.AccessExpire = time.Hour
	}
}

// FiberConfig builds the fiber settings for this server
func (h *Http) FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:               "platform-settings",
		DisableStartupMessage: true,
		BodyLimit:             h.BodyLimit * 1024 * 1024,
		ReadTimeout:           time.Duration(h.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(h.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(h.IdleTimeout) * time.Second,
		ErrorHandler:          ErrorHandler,
	}
}

// NewHttp starts app in the background and returns a function that blocks
// until a termination signal arrives, then shuts the server down.
func NewHttp(cfg *Http, app *fiber.App) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	go func() {
		log.Infow("http server started", "address", addr)
		var err error
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			err = app.ListenTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = app.Listen(addr)
		}
		if err != nil {
			log.Errorw("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return createShutdownHook(app, cfg.ShutdownTimeout, sc)
}

func createShutdownHook(app *fiber.App, shutdownTimeout int, signalChan chan os.Signal) func() {
	return func() {
		<-signalChan
		log.Info("http server shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Errorw("server shutdown error", "error", err)
		} else {
			log.Info("http server shut down gracefully")
		}
	}
}
