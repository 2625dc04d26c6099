// cmd/homepagectl/commands_test.go
package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

func newTestCLI(opts options, input string) (*cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	if opts.lang == "" {
		opts.lang = i18n.DefaultLang
	}
	return &cli{opts: opts, out: out, in: strings.NewReader(input)}, out
}

func TestHashPassword(t *testing.T) {
	c, out := newTestCLI(options{}, "")

	require.NoError(t, c.run(context.Background(), []string{"hash-password", "s3cret"}))

	hash := strings.TrimSpace(out.String())
	assert.True(t, utils.CheckPassword(hash, "s3cret"))
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	c, _ := newTestCLI(options{}, "")

	assert.ErrorIs(t, c.run(context.Background(), []string{"publish"}), errUsage)
	assert.ErrorIs(t, c.run(context.Background(), []string{"hash-password"}), errUsage)
}

func TestConfirm(t *testing.T) {
	c, _ := newTestCLI(options{}, "yes\n")
	assert.True(t, c.confirm(models.Banner{}))

	c, _ = newTestCLI(options{}, "\n")
	assert.False(t, c.confirm(models.Banner{}))

	c, out := newTestCLI(options{yes: true}, "")
	assert.True(t, c.confirm(models.Banner{}))
	assert.Empty(t, out.String())
}

func TestFailMessages(t *testing.T) {
	c, _ := newTestCLI(options{}, "")
	keys := collectionMessages(models.CollectionFeatured).add

	err := c.fail(services.ErrUnauthenticated, keys)
	assert.Equal(t, i18n.T("en", i18n.KeyFeaturedLoginRequired), err.Error())

	err = c.fail(&services.NetworkError{Op: "add", StatusCode: 500, Message: "boom"}, keys)
	assert.Contains(t, err.Error(), "boom")

	err = c.fail(services.ErrBusy, keys)
	assert.Equal(t, i18n.T("en", i18n.KeyEditorBusy), err.Error())

	other := errors.New("disk full")
	assert.Equal(t, other, c.fail(other, keys))
}

func TestPrintProductsCSV(t *testing.T) {
	c, out := newTestCLI(options{csv: true}, "")
	price := 12.5

	require.NoError(t, c.printProducts([]models.Product{{ID: "p1", Name: "Shoe", Brand: "Acme", Price: &price}}))

	assert.Contains(t, out.String(), "p1,Shoe,,Acme,12.5")
}
