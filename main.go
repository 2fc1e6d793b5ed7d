package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverVersion = "v1.0.0"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	InitLogger(cfg.LogLevel, cfg.LogFile)
	logger := GetLogger()
	defer logger.Close()

	if cfg.APIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; tool calls will fail until it is configured")
	}

	service := NewService(NewOpenWeatherClient(cfg))
	registry := NewRegistry(service)

	server := mcp.NewServer(&mcp.Implementation{Name: "weather-server", Version: serverVersion}, nil)
	registry.Install(server)

	logger.Info("weather-server %s on stdio (upstream %s, timeout %ds)", serverVersion, cfg.BaseURL, cfg.TimeoutSeconds)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		LogMetrics()
		logger.Fatal("server terminated: %v", err)
	}
	LogMetrics()
}
