package main

import (
	"context"
	"direct-chat/domain/event"
	"direct-chat/infrastructure/grpc/api"
	"direct-chat/infrastructure/grpc/client"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	ServerAddress string `env:"DIRECT_CHAT_ADDR,default=localhost:50051"`
	Token         string `env:"DIRECT_CHAT_TOKEN,required=true"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run sends one message when -chat and -text are given, otherwise it listens
// to the event stream until Ctrl+C.
func run() (int, error) {
	chatID := flag.String("chat", "", "Chat to write into")
	to := flag.String("to", "", "Open a chat with this user")
	text := flag.String("text", "", "Message text")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.NewDirectChatClient(config.ServerAddress, config.Token)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = c.Close()
	}()

	switch {
	case *to != "" && *text != "":
		chat, err := c.CreateChat(ctx, *to, *text)
		if err != nil {
			return exitRuntime, err
		}
		color.Green.Printf("Chat %s opened\n", chat.ID)
		return exitOK, nil
	case *chatID != "" && *text != "":
		message, err := c.SendMessage(ctx, *chatID, *text)
		if err != nil {
			return exitRuntime, err
		}
		color.Green.Printf("Message %s sent\n", message.ID)
		return exitOK, nil
	}

	log.Info("Connected, listening for events (Ctrl+C to quit)", "address", config.ServerAddress)
	err = c.Listen(ctx, func(e api.ServerEvent) error {
		printEvent(e)
		return nil
	})
	if err != nil {
		return exitRuntime, fmt.Errorf("stream error: %w", err)
	}
	return exitOK, nil
}

func printEvent(e api.ServerEvent) {
	at := e.At.Local().Format(time.TimeOnly)
	switch e.Event {
	case event.ChatCreated:
		chat, err := e.Chat()
		if err != nil || len(chat.Messages) == 0 {
			color.Red.Printf("[%s] unreadable %s event\n", at, e.Event)
			return
		}
		first := chat.Messages[0]
		color.Cyan.Printf("[%s] new chat %s\n", at, chat.ID)
		fmt.Printf("  %s: %s\n", first.Sender.Username, first.Text)
	case event.MessageReceived:
		message, err := e.Message()
		if err != nil {
			color.Red.Printf("[%s] unreadable %s event\n", at, e.Event)
			return
		}
		fmt.Printf("[%s] (%s) %s: %s\n", at, message.ChatID, message.Sender.Username, message.Text)
	default:
		color.Yellow.Printf("[%s] %s\n", at, e.Event)
	}
}
