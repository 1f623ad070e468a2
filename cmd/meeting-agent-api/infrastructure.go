// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
)

const serviceName = "lfx-v2-meeting-agent-service"

// setupNATS establishes the NATS connection used for the key-value stores
// and the processing job dispatch.
func setupNATS(env environment) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Name(serviceName),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.With(logging.ErrKey, err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.With("url", c.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", env.NatsURL, err)
	}

	return natsConn, nil
}

// repositories are the key-value backed stores used by the service
type repositories struct {
	Meeting *store.NatsMeetingRepository
	Agent   *store.NatsAgentRepository
}

// getKeyValueStores binds the service repositories to their JetStream
// key-value buckets. The buckets are provisioned by the meeting CRUD service;
// this service only reads and updates rows in them.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	meetingsKV, err := js.KeyValue(ctx, store.KVStoreNameMeetings)
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameMeetings, err)
	}

	agentsKV, err := js.KeyValue(ctx, store.KVStoreNameAgents)
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameAgents, err)
	}

	return &repositories{
		Meeting: store.NewNatsMeetingRepository(meetingsKV),
		Agent:   store.NewNatsAgentRepository(agentsKV),
	}, nil
}

// setupTracing configures the OTLP trace exporter when an endpoint is set.
// Without one, tracing stays on the default no-op provider and the returned
// shutdown does nothing.
func setupTracing(ctx context.Context) (func(context.Context) error, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}
