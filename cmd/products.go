package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Alturino/storefront/internal/log"
	productCmd "github.com/Alturino/storefront/product/cmd"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/response"
)

type productsOptions struct {
	query    catalog.Query
	featured bool
	remote   string
}

func (o *productsOptions) flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("products", pflag.ContinueOnError)
	fs.StringVarP(&o.query.Search, "search", "s", "", "case-insensitive match on name or description")
	fs.StringVarP(&o.query.Category, "category", "c", catalog.CategoryAll, "category to keep, or all")
	fs.BoolVar(&o.featured, "featured", false, "only list featured products")
	fs.StringVar(&o.remote, "remote", "", "base url of a running storefront to read products from")
	return fs
}

func newProductsCommand() *cobra.Command {
	opts := &productsOptions{}
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products matching a search and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := zerolog.Ctx(c).
				With().
				Str(log.KeyTag, "main ListProducts").
				Str(log.KeySearchQuery, opts.query.Search).
				Str(log.KeyCategory, opts.query.Category).
				Logger()
			c = logger.WithContext(c)

			var products []response.Product
			if opts.remote != "" {
				fetched, err := catalog.FetchProducts(c, opts.remote)
				if err != nil {
					return err
				}
				products = fetched
			} else {
				local, err := productCmd.NewCatalog(c)
				if err != nil {
					return err
				}
				products = local.Products()
			}

			if opts.featured {
				products = catalog.New(products).Featured()
			}
			products = opts.query.Apply(products)
			logger.Info().Int(log.KeyProductsCount, len(products)).Msg("filtered products")

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(map[string]interface{}{
				"products": products,
				"link":     "/products?" + opts.query.Values().Encode(),
			}); err != nil {
				return fmt.Errorf("failed encoding products with error=%w", err)
			}
			return nil
		},
	}
	cmd.Flags().AddFlagSet(opts.flags())
	return cmd
}
