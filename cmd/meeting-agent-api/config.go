// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/pkg/utils"
)

// flags are the command line flags for the meeting agent service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the meeting agent service.
type environment struct {
	Port    string
	NatsURL string
	Stream  streamConfig
	OpenAI  openAIConfig
}

// streamConfig holds the Stream video and chat application credentials. The
// two applications sign their webhooks with their own secrets.
type streamConfig struct {
	VideoAPIKey     string
	VideoAPISecret  string
	ChatAPIKey      string
	ChatAPISecret   string
	ChatServerToken string
}

// openAIConfig holds the completion provider configuration
type openAIConfig struct {
	APIKey string
	Model  string
}

// parseFlags parses command line flags for the meeting agent service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the meeting agent service
func parseEnv() environment {
	return environment{
		Port:    utils.CoalesceString(os.Getenv("PORT"), "8080"),
		NatsURL: utils.CoalesceString(os.Getenv("NATS_URL"), nats.DefaultURL),
		Stream:  parseStreamConfig(),
		OpenAI:  parseOpenAIConfig(),
	}
}

// parseStreamConfig parses the Stream application credentials from environment variables
func parseStreamConfig() streamConfig {
	videoAPISecret := os.Getenv("STREAM_VIDEO_API_SECRET")
	if videoAPISecret == "" {
		slog.Error("STREAM_VIDEO_API_SECRET environment variable is required but not set")
		os.Exit(1)
	}

	chatAPISecret := os.Getenv("STREAM_CHAT_API_SECRET")
	if chatAPISecret == "" {
		slog.Error("STREAM_CHAT_API_SECRET environment variable is required but not set")
		os.Exit(1)
	}

	return streamConfig{
		VideoAPIKey:     os.Getenv("STREAM_VIDEO_API_KEY"),
		VideoAPISecret:  videoAPISecret,
		ChatAPIKey:      os.Getenv("STREAM_CHAT_API_KEY"),
		ChatAPISecret:   chatAPISecret,
		ChatServerToken: os.Getenv("STREAM_CHAT_SERVER_TOKEN"),
	}
}

// parseOpenAIConfig parses the completion provider configuration from environment variables
func parseOpenAIConfig() openAIConfig {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("OPENAI_API_KEY environment variable is required but not set")
		os.Exit(1)
	}

	return openAIConfig{
		APIKey: apiKey,
		Model:  os.Getenv("OPENAI_MODEL"),
	}
}
