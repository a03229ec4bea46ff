package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/tui-treelist/internal/app"
	"github.com/pstuifzand/tui-treelist/internal/config"
	"github.com/pstuifzand/tui-treelist/internal/socket"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.config/tui-treelist/config.toml)")
	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	add := flag.String("add", "", "Add an item to a running ttl instance, as group/title")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.Create(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *add != "" {
		if err := sendAddItem(*add); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Item added")
		return
	}

	var filePath string
	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.NewApp(filePath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	application.SetDebugMode(*debug)

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// sendAddItem sends an add_item command to a running ttl instance
func sendAddItem(target string) error {
	group, title, ok := strings.Cut(strings.TrimSpace(target), "/")
	if !ok || group == "" || title == "" {
		return fmt.Errorf("expected group/title, got %q", target)
	}

	socketPath, pid, err := socket.FindRunningInstance(socket.DefaultDir())
	if err != nil {
		return err
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	response, err := client.AddItem(group, title, "")
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	log.Printf("Sent add_item command: %s/%s", group, title)
	return nil
}
