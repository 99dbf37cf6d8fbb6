package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gearwright/config"
	"gearwright/copilot"
	"gearwright/server"
	"gearwright/store"
	"gearwright/stress"
)

var (
	serveConfigPath string
	serveAddr       string
	serveMock       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gearwright HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/config.json", "path to config.json")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
	serveCmd.Flags().BoolVar(&serveMock, "mock", false, "use the mock model backend instead of a live one")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	personas, err := copilot.LoadPersonas(cfg.PersonasPath)
	if err != nil {
		return err
	}
	chatLLM, blueprintLLM, err := buildClients(cfg)
	if err != nil {
		return err
	}

	styles := store.NewStyleStore(filepath.Join(cfg.DataDir, "style.json"))
	projects := store.NewProjectStore(filepath.Join(cfg.DataDir, "projects"))
	blueprints := store.NewBlueprintFileStore(filepath.Join(cfg.DataDir, "blueprints"))

	classifier := copilot.NewClassifier(chatLLM, logger)
	composer := copilot.NewComposer(personas)
	orchestrator := copilot.NewOrchestrator(chatLLM, classifier, composer, styles, projects, logger)
	pipeline := copilot.NewPipeline(blueprintLLM, stress.Estimate, projects, blueprints, logger)

	srv, err := server.New(orchestrator, pipeline, styles, projects, logger)
	if err != nil {
		return err
	}

	listen := serveAddr
	if listen == "" {
		listen = cfg.ServerAddr
	}
	if listen == "" {
		listen = ":8080"
	}
	logger.Info("starting server", "addr", listen)
	return http.ListenAndServe(listen, srv.Routes())
}

// buildClients constructs the chat and blueprint model clients. They share
// transport settings and differ only in model name.
func buildClients(cfg config.Config) (copilot.LLMClient, copilot.LLMClient, error) {
	if serveMock {
		return copilot.MockLLM{}, copilot.MockLLM{}, nil
	}
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, nil, fmt.Errorf("llm config missing; set llm.provider/model in config")
	}
	switch cfg.LLM.Provider {
	case "openai":
		// fine with the default base URL
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API; a base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return nil, nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}

	settings := copilot.LLMSettings{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.ResolveAPIKey(),
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	}

	chatSettings := settings
	chatSettings.Model = cfg.LLM.Model
	chatLLM, err := copilot.NewOpenAILLMFromConfig(&chatSettings)
	if err != nil {
		return nil, nil, err
	}

	blueprintSettings := settings
	blueprintSettings.Model = cfg.LLM.BlueprintModel
	blueprintLLM, err := copilot.NewOpenAILLMFromConfig(&blueprintSettings)
	if err != nil {
		return nil, nil, err
	}
	return chatLLM, blueprintLLM, nil
}
