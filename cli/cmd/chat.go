package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/flightdeck-io/flightdeck/chat"
	"github.com/flightdeck-io/flightdeck/dataset"
)

// ChatCommand returns the chat command. It sends a question about a
// dataset to an OpenAI-compatible chat endpoint.
func ChatCommand() *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "Ask an AI assistant a question about a dataset",
		ArgsUsage: "<csv-file> <question...>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the chat endpoint",
				EnvVars: []string{"DEEPSEEK_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Chat API base URL (OpenAI-compatible)",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model name",
			},
			ConfigFlag,
		}, DatasetFlags()...),
		Action: chatAction,
	}
}

func chatAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: chat <csv-file> <question...>", 1)
	}

	cfg, err := loadFileConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	chatCfg := chat.Config{
		APIKey:  c.String("api-key"),
		BaseURL: c.String("base-url"),
		Model:   c.String("model"),
	}
	if cfg != nil {
		if chatCfg.APIKey == "" {
			chatCfg.APIKey = cfg.Chat.APIKey
		}
		if chatCfg.BaseURL == "" {
			chatCfg.BaseURL = cfg.Chat.BaseURL
		}
		if chatCfg.Model == "" {
			chatCfg.Model = cfg.Chat.Model
		}
	}

	client, err := chat.New(chatCfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = client.Close() }()

	ds, err := dataset.Load(c.Args().First(), dataset.LoadOptions{
		HeaderRow: c.Int("header-row"),
		SkipRows:  c.Int("skip-rows"),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	question := strings.Join(c.Args().Slice()[1:], " ")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	answer, err := client.Ask(ctx, ds, question)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(os.Stdout, answer)
	return nil
}
