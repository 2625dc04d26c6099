// cmd/homepagectl/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/abinexis/homepage-admin/internal/config"
	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/services"
)

const usage = `Usage: homepagectl [flags] <command> [args]

Commands:
  featured list|add <productId>|remove <productId>
  offers   list|add <productId>|remove <productId>
  banners  list
  banners  create --title T [--description D] [--image SRC | --image-file PATH] [--product ID]
  banners  update <bannerId> [--title T] [--description D] [--image SRC | --image-file PATH] [--product ID]
  banners  delete <bannerId>
  banners  set-product <bannerId> [productId]
  search   <query>
  hash-password <password>

Flags:
`

type options struct {
	api         string
	token       string
	lang        string
	yes         bool
	csv         bool
	timeout     time.Duration
	verbose     bool
	title       string
	description string
	image       string
	imageFile   string
	product     string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts options
	flags := pflag.NewFlagSet("homepagectl", pflag.ExitOnError)
	flags.StringVar(&opts.api, "api", cfg.API.BaseURL, "homepage backend base URL")
	flags.StringVar(&opts.token, "token", cfg.Auth.AdminToken, "backend admin token")
	flags.StringVar(&opts.lang, "lang", i18n.DefaultLang, "message language")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation")
	flags.BoolVar(&opts.csv, "csv", false, "print product lists as CSV")
	flags.DurationVar(&opts.timeout, "timeout", cfg.API.Timeout, "request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log backend calls")
	flags.StringVar(&opts.title, "title", "", "banner title")
	flags.StringVar(&opts.description, "description", "", "banner description")
	flags.StringVar(&opts.image, "image", "", "banner image as data:, s3:// or http(s) URL")
	flags.StringVar(&opts.imageFile, "image-file", "", "banner image read from a local file")
	flags.StringVar(&opts.product, "product", "", "product linked to the banner")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	logrus.SetLevel(logrus.WarnLevel)
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := i18n.Initialize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	images, err := services.NewImageResolver(cfg.AWS)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	console := services.NewConsole(services.Dependencies{
		API:    services.NewHTTPHomepageClient(strings.TrimRight(opts.api, "/"), opts.timeout),
		Tokens: services.ValidatedTokens(services.StaticToken(opts.token)),
		Images: images,
	}, services.ConsoleOptions{
		PricingConcurrency: cfg.Editor.PricingConcurrency,
		BannerResyncDelay:  cfg.Editor.BannerResyncDelay,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	cli := &cli{console: console, opts: opts, out: os.Stdout, in: os.Stdin}
	if err := cli.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			flags.Usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
