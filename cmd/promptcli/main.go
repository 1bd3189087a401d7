package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"fable/internal/config"
	"fable/internal/domain/models"
	"fable/internal/preset"
	"fable/internal/prompt"
	"fable/internal/repository/memory"
	"fable/internal/stream"
)

// scene is the YAML input: everything the external document store would
// hand the generation core for one request.
type scene struct {
	Template    string               `yaml:"template"`
	Character   models.Character     `yaml:"character"`
	Chat        models.Chat          `yaml:"chat"`
	User        models.User          `yaml:"user"`
	Members     []models.Participant `yaml:"members"`
	Impersonate *models.Character    `yaml:"impersonate"`
	Book        *models.MemoryBook   `yaml:"book"`
	Presets     []models.Preset      `yaml:"presets"`
}

func main() {
	scenePath := flag.String("scene", "", "path to a YAML scene file")
	showEvents := flag.Bool("decode", false, "decode a response stream from stdin instead of rendering")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stderr
	if cfg.Debug {
		if f, err := config.SetupLogFile("logs", 5); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		} else {
			defer f.Close()
			logOut = io.MultiWriter(os.Stderr, f)
		}
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if *showEvents {
		if err := decodeStdin(logger); err != nil {
			log.Fatalf("decode failed: %v", err)
		}
		return
	}

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: promptcli -scene scene.yaml | promptcli -decode < stream")
		os.Exit(2)
	}

	if err := run(*scenePath, cfg, logger); err != nil {
		log.Fatalf("promptcli: %v", err)
	}
}

func run(scenePath string, cfg *config.Config, logger *slog.Logger) error {
	data, err := os.ReadFile(scenePath)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sc scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("unmarshal scene: %w", err)
	}

	catalog, err := preset.NewCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// Seed the in-memory store so resolution sees the scene's presets.
	ctx := context.Background()
	repo := memory.NewPresetRepository()
	for i := range sc.Presets {
		if err := repo.Insert(ctx, &sc.Presets[i]); err != nil {
			return fmt.Errorf("seed preset: %w", err)
		}
	}
	userPresets, err := repo.ListByUser(ctx, sc.User.ID)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}

	renderer := prompt.NewRenderer(logger)
	rendered, err := renderer.Render(sc.Template, prompt.RenderOpts{
		Character:   sc.Character,
		Chat:        sc.Chat,
		Members:     sc.Members,
		Impersonate: sc.Impersonate,
		Book:        sc.Book,
	})
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	service := sc.User.DefaultService
	if service == "" {
		service = cfg.DefaultService
	}

	resolved := preset.Resolve(preset.Input{
		Ref:            sc.Chat.GenPreset,
		InlineSettings: sc.Chat.GenSettings,
		UserPresets:    userPresets,
		Catalog:        catalog,
		Service:        service,
		DefaultPresets: sc.User.DefaultPresets,
	})

	fmt.Println("--- prompt ---")
	fmt.Println(rendered)
	fmt.Println("--- preset ---")
	if resolved == nil {
		fmt.Println("(unresolved: preset reference matches nothing)")
		return nil
	}

	out, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resolved preset: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// decodeStdin feeds stdin through the stream decoder chunk by chunk and
// prints each event, for poking at captured response bodies.
func decodeStdin(logger *slog.Logger) error {
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				chunks <- chunk
			}
			if err != nil {
				if err != io.EOF {
					logger.Error("stdin read failed", "error", err)
				}
				return
			}
		}
	}()

	decoder := stream.NewDecoder(logger)
	for ev := range decoder.Decode(context.Background(), chunks) {
		switch ev.Kind {
		case stream.KindJSON:
			out, _ := json.Marshal(ev.Data)
			fmt.Printf("json: %s\n", out)
		case stream.KindText:
			fmt.Printf("text: %s\n", ev.Text)
		case stream.KindKeepAlive:
			fmt.Println("keepalive")
		}
	}
	return nil
}
