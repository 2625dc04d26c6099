// cmd/homepagectl/commands.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

var errUsage = errors.New("usage")

type cli struct {
	console *services.Console
	opts    options
	out     io.Writer
	in      io.Reader
}

type messages struct {
	success       string
	loginRequired string
	failed        string
	failedDetail  bool
}

func (c *cli) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "featured":
		return c.collection(ctx, args[1:], c.console.Featured, listProducts(c))
	case "offers":
		return c.collection(ctx, args[1:], c.console.Offers, listOffers(c))
	case "banners":
		return c.banners(ctx, args[1:])
	case "search":
		if len(args) < 2 {
			return errUsage
		}
		products, err := c.console.SearchCatalog(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return c.fail(err, messages{failed: i18n.KeyLoadFailed})
		}
		if len(products) == 0 {
			fmt.Fprintln(c.out, c.t(i18n.KeySearchNoResults))
			return nil
		}
		return c.printProducts(products)
	case "hash-password":
		if len(args) != 2 {
			return errUsage
		}
		hash, err := utils.HashPassword(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, hash)
		return nil
	}
	return errUsage
}

// collectionEditor is the part of the featured and offers editors the
// CLI drives.
type collectionEditor interface {
	Load(ctx context.Context) error
	AddItem(ctx context.Context, product models.Product) error
	RemoveItem(ctx context.Context, productID string) error
	Name() models.Collection
}

func (c *cli) collection(ctx context.Context, args []string, editor collectionEditor, list func() error) error {
	if len(args) == 0 {
		return errUsage
	}
	keys := collectionMessages(editor.Name())

	if err := editor.Load(ctx); err != nil {
		return c.fail(err, messages{failed: i18n.KeyLoadFailed})
	}

	switch args[0] {
	case "list":
		return list()
	case "add":
		if len(args) != 2 {
			return errUsage
		}
		product, err := c.console.ResolveProduct(ctx, args[1])
		if err != nil {
			return c.fail(err, keys.add)
		}
		if err := editor.AddItem(ctx, product); err != nil {
			return c.fail(err, keys.add)
		}
		return c.succeed(keys.add)
	case "remove":
		if len(args) != 2 {
			return errUsage
		}
		if err := editor.RemoveItem(ctx, args[1]); err != nil {
			return c.fail(err, keys.remove)
		}
		return c.succeed(keys.remove)
	}
	return errUsage
}

type collectionKeys struct {
	add    messages
	remove messages
}

func collectionMessages(name models.Collection) collectionKeys {
	if name == models.CollectionOffers {
		return collectionKeys{
			add:    messages{success: i18n.KeyOffersAdded, loginRequired: i18n.KeyOffersLoginRequired, failed: i18n.KeyOffersAddFailed, failedDetail: true},
			remove: messages{success: i18n.KeyOffersRemoved, loginRequired: i18n.KeyOffersLoginRequired, failed: i18n.KeyOffersRemoveFailed, failedDetail: true},
		}
	}
	return collectionKeys{
		add:    messages{success: i18n.KeyFeaturedAdded, loginRequired: i18n.KeyFeaturedLoginRequired, failed: i18n.KeyFeaturedAddFailed, failedDetail: true},
		remove: messages{success: i18n.KeyFeaturedRemoved, loginRequired: i18n.KeyFeaturedLoginRequired, failed: i18n.KeyFeaturedRemoveFailed, failedDetail: true},
	}
}

func listProducts(c *cli) func() error {
	return func() error { return c.printProducts(c.console.Featured.Items()) }
}

func listOffers(c *cli) func() error {
	return func() error {
		offers := c.console.Offers.Items()
		if c.opts.csv {
			products := make([]models.Product, len(offers))
			for i, o := range offers {
				price := o.DisplayPrice
				products[i] = o.Product
				products[i].Price = &price
			}
			return c.printProducts(products)
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tORIGINAL\tDISCOUNT")
		for _, o := range offers {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%d%%\n", o.ID, o.Name, o.DisplayPrice, o.OriginalPrice, o.Discount)
		}
		return w.Flush()
	}
}

func (c *cli) printProducts(products []models.Product) error {
	rows := models.ToProductRows(products)
	if c.opts.csv {
		return gocsv.Marshal(&rows, c.out)
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tPRICE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, r.Brand, r.Price)
	}
	return w.Flush()
}

func (c *cli) banners(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	editor := c.console.Banners
	if err := editor.Load(ctx); err != nil {
		return c.fail(err, messages{failed: i18n.KeyLoadFailed})
	}

	switch args[0] {
	case "list":
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPRODUCT\tIMAGE")
		for _, b := range editor.Items() {
			product := "-"
			if b.SearchProduct != nil {
				product = b.SearchProduct.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Title, product, b.Image)
		}
		return w.Flush()

	case "create":
		keys := messages{success: i18n.KeyBannerCreated, failed: i18n.KeyBannerCreateFailed}
		form, err := c.bannerForm(ctx, models.BannerForm{})
		if err != nil {
			return c.fail(err, keys)
		}
		if err := editor.CreateBanner(ctx, form); err != nil {
			return c.fail(err, keys)
		}
		return c.succeed(keys)

	case "update":
		if len(args) != 2 {
			return errUsage
		}
		keys := messages{success: i18n.KeyBannerUpdated, failed: i18n.KeyBannerUpdateFailed}
		current, ok := editor.Find(args[1])
		if !ok {
			return c.fail(services.ErrBannerNotFound, keys)
		}
		form, err := c.bannerForm(ctx, models.BannerForm{
			Title:         current.Title,
			Description:   current.Description,
			SearchProduct: current.SearchProduct,
		})
		if err != nil {
			return c.fail(err, keys)
		}
		if err := editor.UpdateBanner(ctx, args[1], form); err != nil {
			return c.fail(err, keys)
		}
		return c.succeed(keys)

	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		keys := messages{success: i18n.KeyBannerDeleted, failed: i18n.KeyBannerDeleteFailed}
		if err := editor.DeleteBanner(ctx, args[1], c.confirm); err != nil {
			if errors.Is(err, services.ErrNotConfirmed) {
				return nil
			}
			return c.fail(err, keys)
		}
		return c.succeed(keys)

	case "set-product":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		keys := messages{success: i18n.KeyBannerProductRemoved, failed: i18n.KeyBannerProductUpdateFailed, failedDetail: true}
		var product *models.Product
		if len(args) == 3 {
			p, err := c.console.ResolveProduct(ctx, args[2])
			if err != nil {
				return c.fail(err, keys)
			}
			product = &p
			keys.success = i18n.KeyBannerProductAdded
		}
		if err := editor.UpdateBannerProduct(ctx, args[1], product); err != nil {
			return c.fail(err, keys)
		}
		return c.succeed(keys)
	}
	return errUsage
}

// bannerForm overlays the banner flags on base.
func (c *cli) bannerForm(ctx context.Context, base models.BannerForm) (models.BannerForm, error) {
	form := base
	if c.opts.title != "" {
		form.Title = c.opts.title
	}
	if c.opts.description != "" {
		form.Description = c.opts.description
	}
	if c.opts.product != "" {
		product, err := c.console.ResolveProduct(ctx, c.opts.product)
		if err != nil {
			return form, err
		}
		form.SearchProduct = &product
	}

	switch {
	case c.opts.imageFile != "":
		upload, err := readImageFile(c.opts.imageFile)
		if err != nil {
			return form, err
		}
		form.Image = upload
	case c.opts.image != "":
		if err := c.console.Images.Resolve(ctx, c.opts.image, &form); err != nil {
			return form, err
		}
	}
	return form, nil
}

func readImageFile(path string) (*models.ImageUpload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, models.MaxBannerImageSize+1))
	if err != nil {
		return nil, err
	}
	return &models.ImageUpload{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func (c *cli) confirm(models.Banner) bool {
	if c.opts.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", c.t(i18n.KeyBannerDeleteConfirm))
	answer, _ := bufio.NewReader(c.in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *cli) succeed(keys messages) error {
	fmt.Fprintln(c.out, c.t(keys.success))
	return nil
}

// fail turns an editor error into the message an operator would see.
func (c *cli) fail(err error, keys messages) error {
	var (
		vErr   *services.ValidationError
		netErr *services.NetworkError
	)
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		key := keys.loginRequired
		if key == "" {
			key = i18n.KeyAuthRequired
		}
		return errors.New(c.t(key))
	case errors.As(err, &vErr):
		return errors.New(c.t(vErr.MessageKey, vErr.Args...))
	case errors.Is(err, services.ErrBusy):
		return errors.New(c.t(i18n.KeyEditorBusy))
	case errors.Is(err, services.ErrNotReady):
		return errors.New(c.t(i18n.KeyEditorNotReady))
	case errors.Is(err, services.ErrBannerNotFound):
		return errors.New(c.t(i18n.KeyBannerNotFound))
	case errors.Is(err, services.ErrProductNotFound):
		return errors.New(c.t(i18n.KeyProductNotFound))
	case errors.As(err, &netErr) && keys.failed != "":
		if keys.failedDetail {
			return errors.New(c.t(keys.failed, netErr.Detail()))
		}
		return fmt.Errorf("%s: %s", c.t(keys.failed), netErr.Detail())
	}
	return err
}

func (c *cli) t(key string, args ...interface{}) string {
	return i18n.T(c.opts.lang, key, args...)
}
