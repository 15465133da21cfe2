package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulley-doreurae/careerquest-chat/config"
	"github.com/pulley-doreurae/careerquest-chat/internal/bus"
	"github.com/pulley-doreurae/careerquest-chat/internal/routers"
	chat_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/chat-case"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/pulley-doreurae/careerquest-chat/internal/websocket"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	eventBus := bus.NewEventBus(appState.Redis)
	roomService := room_service.NewRoomService(appState)
	chatService := chat_service.NewChatService(appState, eventBus)

	wsHub := websocket.NewHub()
	defer wsHub.Close()
	log.Info().Msg("Websocket hub initialized")

	wsHandler := websocket.NewWebSocketHandler(wsHub, chatService)

	relay := websocket.NewRelay(wsHub, eventBus)
	if err := relay.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start event relay")
	}

	r := routers.NewRouter(appState, roomService, chatService, wsHandler)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
}
