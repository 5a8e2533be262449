// Command edunet talks to the educational platform API from a terminal:
// authenticated GET/POST calls, subject file listings and file downloads.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joy-dx/edunet"
	"github.com/joy-dx/edunet/client/s3client"
	"github.com/joy-dx/edunet/config"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/files"
	"github.com/joy-dx/edunet/relays"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const usage = `usage: edunet <command> [flags]

commands:
  get      URL                 authenticated GET, body on stdout
  post     URL BODY            authenticated POST of a text body
  list     -subject ID         list subject files
  download -subject ID -name N download (or reuse) a subject file

The bearer token is read from EDUNET_ACCESS_TOKEN on every request.
`

var errUsage = errors.New("invalid usage")

type options struct {
	envFile     string
	verbose     bool
	metricsAddr string
	s3Bucket    string
	s3Region    string
	s3Prefix    string
	s3Endpoint  string
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.envFile, "env", ".env", "dotenv file to load")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	fs.StringVar(&o.s3Bucket, "s3-bucket", "", "read files from this S3 bucket instead of the API")
	fs.StringVar(&o.s3Region, "s3-region", "", "S3 region")
	fs.StringVar(&o.s3Prefix, "s3-prefix", "", "S3 key prefix")
	fs.StringVar(&o.s3Endpoint, "s3-endpoint", "", "custom S3 endpoint (path style)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "edunet:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	var opts options
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.register(fs)
	subject := fs.Int("subject", 0, "subject id")
	name := fs.String("name", "", "file display name")
	mediaType := fs.String("type", "", "POST media type, text/plain when empty")
	charset := fs.String("charset", "", "POST charset, utf-8 when empty")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	svc, cfg, err := setup(ctx, &opts, stderr)
	if err != nil {
		return err
	}

	switch args[0] {
	case "get":
		if fs.NArg() != 1 {
			fmt.Fprint(stderr, usage)
			return errUsage
		}
		return printResponse(stdout, svc.Get(ctx, fs.Arg(0)))
	case "post":
		if fs.NArg() != 2 {
			fmt.Fprint(stderr, usage)
			return errUsage
		}
		body := dto.PostBody{Content: fs.Arg(1), Encoding: *charset, MediaType: *mediaType}
		return printResponse(stdout, svc.Post(ctx, fs.Arg(0), body))
	case "list":
		catalog, err := newCatalog(ctx, svc, cfg, &opts)
		if err != nil {
			return err
		}
		list, err := catalog.List(ctx, *subject)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tREMOTE\tDOWNLOADED")
		for _, f := range list {
			fmt.Fprintf(tw, "%s\t%s\t%t\n", f.Name, f.RemoteID(), f.IsDownloaded)
		}
		return tw.Flush()
	case "download":
		return download(ctx, svc, cfg, &opts, *subject, *name, stdout, stderr)
	default:
		fmt.Fprint(stderr, usage)
		return errUsage
	}
}

func setup(ctx context.Context, opts *options, stderr io.Writer) (*edunet.NetSvc, *config.NetSvcConfig, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	cfg.WithRelay(relays.NewSlogRelay(logger)).
		WithTokenProvider(config.EnvTokenProvider{})

	svc := edunet.ProvideNetSvc(&cfg)
	if err := svc.Hydrate(ctx); err != nil {
		return nil, nil, err
	}

	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := edunet.NewMetrics("edunet", reg)
		if err != nil {
			return nil, nil, err
		}
		svc.WithMetrics(metrics)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(opts.metricsAddr, mux); err != nil {
				cfg.Relay().Error(relays.RlyNetLog{Msg: fmt.Sprintf("metrics server: %v", err)})
			}
		}()
	}
	return svc, &cfg, nil
}

func newS3(ctx context.Context, opts *options) (*s3client.S3Client, error) {
	s3Cfg := s3client.DefaultS3ClientConfig(opts.s3Region, opts.s3Bucket)
	s3Cfg.WithPrefix(opts.s3Prefix)
	if opts.s3Endpoint != "" {
		s3Cfg.WithEndpoint(opts.s3Endpoint, true)
	}
	return s3client.NewS3Client(ctx, string(s3client.NetClientS3Ref), &s3Cfg)
}

func newCatalog(ctx context.Context, svc *edunet.NetSvc, cfg *config.NetSvcConfig, opts *options) (*files.Catalog, error) {
	var lister files.Lister = files.NewHTTPLister(svc, cfg.FilesEndpoint())
	if opts.s3Bucket != "" {
		client, err := newS3(ctx, opts)
		if err != nil {
			return nil, err
		}
		lister = files.NewS3Lister(client)
	}
	return files.NewCatalog(lister, edunet.NewLocalFileSystem(cfg.DataDirectory), cfg.Relay()), nil
}

func download(ctx context.Context, svc *edunet.NetSvc, cfg *config.NetSvcConfig, opts *options, subject int, name string, stdout, stderr io.Writer) error {
	if name == "" {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	catalog, err := newCatalog(ctx, svc, cfg, opts)
	if err != nil {
		return err
	}
	list, err := catalog.List(ctx, subject)
	if err != nil {
		return err
	}
	var file *dto.RemoteFile
	for i := range list {
		if list[i].Name == name {
			file = &list[i]
			break
		}
	}
	if file == nil {
		return fmt.Errorf("no file %q in subject %d", name, subject)
	}

	dispatcher := edunet.NewSerialDispatcher()
	defer dispatcher.Close()

	managerCfg := edunet.DownloadManagerConfig{}
	managerCfg.WithDispatcher(dispatcher).
		WithSurface(&terminalSurface{status: stderr, out: stdout})
	if opts.s3Bucket != "" {
		client, err := newS3(ctx, opts)
		if err != nil {
			return err
		}
		managerCfg.WithSource(client)
	}
	manager := edunet.NewDownloadManager(svc, managerCfg)

	// background context: Ctrl+C goes through Cancel so the partial file is removed
	if err := manager.OpenOrDownload(context.Background(), *file); err != nil {
		return err
	}
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			manager.Cancel()
		case <-finished:
		}
	}()
	manager.Wait()
	close(finished)
	dispatcher.Flush()

	task := manager.Task()
	switch task.State {
	case dto.COMPLETE:
		return nil
	case dto.CANCELLED:
		return errors.New("download cancelled")
	default:
		return fmt.Errorf("download failed: %s", task.Message)
	}
}

func printResponse(w io.Writer, resp dto.Response) error {
	if resp.Failure != "" {
		return fmt.Errorf("request failed: %s (%d)", resp.Failure, resp.StatusCode)
	}
	if _, err := io.WriteString(w, resp.Text()); err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}
