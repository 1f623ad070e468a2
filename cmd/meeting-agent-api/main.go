// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the meeting agent service API that ingests Stream webhook
// events, drives the meeting lifecycle, and answers post-meeting chat
// messages with AI-generated replies.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/completion"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/messaging"
	streamchat "github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/stream/chat"
	streamvideo "github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/stream/video"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/webhook"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up tracing")
		os.Exit(1)
	}

	// Setup NATS connection
	natsConn, err := setupNATS(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		os.Exit(1)
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		os.Exit(1)
	}

	// Each Stream application signs its webhooks with its own secret.
	validatorRegistry := webhook.NewRegistry()
	validatorRegistry.RegisterValidator(webhook.SourceVideo, webhook.NewStreamWebhookValidator(env.Stream.VideoAPISecret))
	validatorRegistry.RegisterValidator(webhook.SourceChat, webhook.NewStreamWebhookValidator(env.Stream.ChatAPISecret))

	videoClient := streamvideo.NewClient(streamvideo.Config{
		ClientID:     env.Stream.VideoAPIKey,
		ClientSecret: env.Stream.VideoAPISecret,
	})
	chatClient := streamchat.NewClient(streamchat.Config{
		APIKey:      env.Stream.ChatAPIKey,
		ServerToken: env.Stream.ChatServerToken,
	})
	completionProvider := completion.NewOpenAIProvider(env.OpenAI.APIKey, completion.WithModel(env.OpenAI.Model))
	messageBuilder := messaging.NewMessageBuilder(natsConn)

	webhookService := service.NewWebhookService(
		repos.Meeting,
		repos.Agent,
		validatorRegistry,
		videoClient,
		chatClient,
		completionProvider,
		messageBuilder,
	)

	ready := func() bool {
		return webhookService.ServiceReady() &&
			natsConn.IsConnected() &&
			repos.Meeting.IsReady() &&
			repos.Agent.IsReady()
	}

	httpServer := newHTTPServer(flags, webhookService, ready)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.With("addr", httpServer.Addr).Info("starting http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		slog.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down http server")
		}
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down tracing")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.With(logging.ErrKey, err).Error("server exited with error")
		os.Exit(1)
	}

	slog.Info("shutdown complete")
}
