// identicon renders the identicon of a name, email address or digest.
//
// The input text is trimmed, lower-cased and hashed (MD5 by default, like
// Gravatar). The image is written as PNG to a file or to stdout; when
// stdout is a terminal a colored preview is drawn instead. With --serve the
// command runs an HTTP endpoint rendering identicons on request.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/flavioheleno/identicon"
	"github.com/flavioheleno/identicon/internal/config"
	"github.com/flavioheleno/identicon/internal/digest"
	"github.com/flavioheleno/identicon/internal/preview"
	"github.com/flavioheleno/identicon/internal/server"
)

// usageError marks errors caused by bad invocation. They exit with status 2.
type usageError struct{ error }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var u usageError
		if errors.As(err, &u) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	hash       string
	hex        bool
	output     string
	preview    bool
	color      string
	serve      bool
	listen     string
	logLevel   string
	version    bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("identicon", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", os.Getenv(config.EnvVar), "YAML config file (env "+config.EnvVar+")")
	flagSet.StringVar(&opts.hash, "hash", digest.Default, "hash algorithm: "+strings.Join(digest.Algorithms(), ", "))
	flagSet.BoolVar(&opts.hex, "hex", false, "treat the input as a hex digest instead of text to hash")
	flagSet.StringVarP(&opts.output, "output", "o", "", "write PNG to this file (default: stdout)")
	flagSet.BoolVarP(&opts.preview, "preview", "p", false, "draw the identicon in the terminal")
	flagSet.StringVar(&opts.color, "color", config.ColorAuto, "preview colors: auto, always, never")
	flagSet.BoolVar(&opts.serve, "serve", false, "serve identicons over HTTP")
	flagSet.StringVar(&opts.listen, "listen", "", "address to serve on (default from config: 127.0.0.1:8420)")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.version, "version", false, "print the version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  identicon [flags] [text]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError{err}
	}
	if opts.version {
		fmt.Fprintf(stdout, "identicon %s\n", version())
		return nil
	}

	cfg, err := loadConfig(flagSet, opts)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.serve {
		if flagSet.NArg() > 0 {
			return usagef("unexpected argument with --serve: %s", flagSet.Arg(0))
		}
		return serve(ctx, cfg, logger)
	}

	source, err := readSource(flagSet.Args(), stdin, cfg.Hash, opts.hex)
	if err != nil {
		return err
	}
	g, err := identicon.New(source, nil)
	if err != nil {
		return err
	}
	logger.Debug("rendering", "source", fmt.Sprintf("%x", source), "foreground", g.Foreground())

	if opts.preview || (opts.output == "" && isTerminal(stdout)) {
		_, err := io.WriteString(stdout, preview.Render(g, preview.Options{Profile: colorProfile(cfg.Color, stdout)}))
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, g.Render()); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	if opts.output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	logger.Info("wrote identicon", "path", opts.output)
	return nil
}

// loadConfig reads the config file and applies flags given explicitly.
func loadConfig(flagSet *pflag.FlagSet, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flagSet.Changed("hash") {
		cfg.Hash = strings.ToLower(opts.hash)
	}
	if flagSet.Changed("color") {
		cfg.Color = opts.color
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flagSet.Changed("listen") {
		cfg.Server.Listen = opts.listen
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageError{err}
	}
	return cfg, nil
}

// readSource returns the identicon source for the command line input, or
// stdin when no argument is given.
func readSource(args []string, stdin io.Reader, hash string, isHex bool) ([]byte, error) {
	input := strings.Join(args, " ")
	if len(args) == 0 {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, usagef("no input: pass text as an argument or on stdin")
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		input = string(b)
	}

	if isHex {
		source, err := digest.ParseHex(input)
		if err != nil {
			return nil, usageError{err}
		}
		return source, nil
	}
	return digest.Sum(hash, digest.Identity(input))
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, err := server.New(server.Options{Hash: cfg.Hash, MaxAge: cfg.Server.MaxAge}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("serving identicons", "addr", cfg.Server.Listen, "hash", cfg.Hash)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func colorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		return termenv.TrueColor
	case config.ColorNever:
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
