package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/bensonrodney/homeassistant-discord/internal/config"
	"github.com/bensonrodney/homeassistant-discord/internal/httpclient"
	"github.com/bensonrodney/homeassistant-discord/internal/logger"
	"github.com/bensonrodney/homeassistant-discord/internal/notifier/discord"
	"github.com/bensonrodney/homeassistant-discord/internal/registry"
	"github.com/bensonrodney/homeassistant-discord/internal/service"
	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("[FATAL] %v", err)
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags, gCfg, zLogger, os.Stdout); err != nil {
		zLogger.Error().Err(err).Str("mode", flags.Mode).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

// run executes one CLI mode against a service built from gCfg.
func run(ctx context.Context, flags AppFlags, gCfg *config.GlobalConfig, zLogger zerolog.Logger, out io.Writer) error {
	svc, err := newService(gCfg, zLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close notification service")
		}
	}()

	if err := svc.Load(ctx); err != nil {
		return err
	}

	if !gCfg.DiscordWebhook.IsZero() {
		result := svc.ImportBlock(ctx, gCfg.DiscordWebhook)
		if flags.Mode == ModeImport {
			fmt.Fprintf(out, "imported %d, skipped %d, failed %d\n", len(result.Imported), len(result.Skipped), len(result.Errors))
			return errors.Join(result.Errors...)
		}
		for _, err := range result.Errors {
			zLogger.Warn().Err(err).Msg("Webhook from configuration not imported")
		}
	} else if flags.Mode == ModeImport {
		fmt.Fprintln(out, "no discord_webhook block in configuration")
		return nil
	}

	switch flags.Mode {
	case ModeList:
		entries, err := svc.Targets(ctx)
		if err != nil {
			return err
		}
		return printEntries(out, entries)

	case ModeRemove:
		entry, err := svc.ResolveTarget(ctx, flags.Target)
		if err != nil {
			return err
		}
		if err := svc.RemoveWebhook(ctx, entry.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %s (%s)\n", entry.ID, entry.Config.DisplayName)
		return nil

	case ModeSend, ModeBroadcast:
		data, err := flags.SendData()
		if err != nil {
			return err
		}
		if flags.Mode == ModeSend {
			return svc.Send(ctx, flags.Target, flags.Message, flags.TitlePtr(), data)
		}
		return svc.SendAll(ctx, flags.Message, flags.TitlePtr(), data)
	}

	return nil
}

func newService(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*service.Service, error) {
	reg, err := openRegistry(gCfg.StorageConfig, zLogger)
	if err != nil {
		return nil, err
	}

	clientBuilder := httpclient.NewHTTPClientBuilder(zLogger).
		WithConfig(httpclient.ConvertConfig(gCfg.HTTPClientConfig))
	dispatcher := discord.NewDispatcher(clientBuilder.Build, zLogger)
	if gCfg.BroadcastConcurrency > 0 {
		dispatcher.SetBroadcastConcurrency(gCfg.BroadcastConcurrency)
	}

	return service.NewService(reg, dispatcher, gCfg.Defaults.WebhookDefaults(), zLogger), nil
}

func openRegistry(cfg config.StorageConfig, zLogger zerolog.Logger) (registry.Registry, error) {
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		return registry.NewSQLiteRegistry(cfg.SQLitePath, zLogger)
	case "", config.StorageDriverMemory:
		return registry.NewMemoryRegistry(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func printEntries(out io.Writer, entries []registry.Entry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWEBHOOK\tUSERNAME\tTTS")
	for _, e := range entries {
		username := "-"
		if e.Config.HasUsername() {
			username = *e.Config.Username
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Config.DisplayName, webhook.RedactURL(e.Config.WebhookURL), username, strconv.FormatBool(e.Config.TTSDefault))
	}
	return w.Flush()
}
