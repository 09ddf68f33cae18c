// Command captionai generates a single caption from the terminal using the
// same service as the HTTP server.
//
//	captionai -type funny -length short "my dog at the beach"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/config"
	"github.com/vitormoschetta/captionai/internal/gemini"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/model"
	"github.com/vitormoschetta/captionai/internal/service"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("captionai", flag.ContinueOnError)
	fs.SetOutput(stderr)
	responseType := fs.String("type", string(model.ResponseCasual), "caption tone: "+model.ResponseTypeList())
	captionLength := fs.String("length", string(model.LengthShort), "caption length: "+model.CaptionLengthList())
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.InitWriter(stderr, cfg.LogLevel, cfg.LogFormat)

	var generator gemini.Generator
	if cfg.APIKey != "" {
		generator, err = gemini.New(ctx, gemini.Options{
			Backend: cfg.Backend,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return err
		}
	}
	captions := service.NewCaptionService(generator, service.WithBackend(cfg.Backend), service.WithLogger(log))

	caption, err := captions.Generate(ctx, model.CaptionRequest{
		Prompt:        strings.Join(fs.Args(), " "),
		ResponseType:  model.ResponseType(*responseType),
		CaptionLength: model.CaptionLength(*captionLength),
	})
	if err != nil {
		_, msg := apperr.Public(err, model.MsgUnexpected)
		return errors.New(msg)
	}

	fmt.Fprintln(stdout, caption)
	return nil
}
