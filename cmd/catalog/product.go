package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/update_product"
	"github.com/light-bringer/procat-orm/internal/services"
)

// Product field flags
const (
	nameFlag     = "name"
	priceFlag    = "price"
	categoryFlag = "category"
)

func productFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		nameFlag: &cobraflags.StringFlag{
			Name:  nameFlag,
			Value: "",
			Usage: "Product name (required, at most 30 characters)",
		},
		priceFlag: &cobraflags.StringFlag{
			Name:  priceFlag,
			Value: "0",
			Usage: "Product price",
		},
		categoryFlag: &cobraflags.StringFlag{
			Name:  categoryFlag,
			Value: "",
			Usage: "Product category (FOOD, FASHION, ELECTRONIC); empty for none",
		},
	}
}

func newProductCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Create, inspect and delete products",
	}
	cmd.AddCommand(
		newProductAddCommand(c),
		newProductListCommand(c),
		newProductGetCommand(c),
		newProductUpdateCommand(c),
		newProductDeleteCommand(c),
		newProductSeedCommand(c),
	)
	return cmd
}

func newProductAddCommand(c *cli) *cobra.Command {
	flags := productFlags()
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new product",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string, svc *services.ServiceOptions) error {
		price, err := parsePrice(flags[priceFlag].GetString())
		if err != nil {
			return err
		}
		product, err := svc.CreateProduct.Execute(cmd.Context(), &create_product.Request{
			Name:     flags[nameFlag].GetString(),
			Price:    price,
			Category: flags[categoryFlag].GetString(),
		})
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), []*domain.Product{product})
		return nil
	})
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newProductListCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every product in id order",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string, svc *services.ServiceOptions) error {
		products, err := svc.ListProducts.Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	})
	return cmd
}

func newProductGetCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, svc *services.ServiceOptions) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		product, err := svc.GetProduct.Execute(cmd.Context(), &get_product.Request{ProductID: id})
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), []*domain.Product{product})
		return nil
	})
	return cmd
}

func newProductUpdateCommand(c *cli) *cobra.Command {
	flags := productFlags()
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Long: `Change the given fields of a product. Only flags that are passed are
written; --category "" clears the category.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, svc *services.ServiceOptions) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}

		req := &update_product.Request{ProductID: id}
		if cmd.Flags().Changed(nameFlag) {
			name := flags[nameFlag].GetString()
			req.Name = &name
		}
		if cmd.Flags().Changed(priceFlag) {
			price, err := parsePrice(flags[priceFlag].GetString())
			if err != nil {
				return err
			}
			req.Price = &price
		}
		if cmd.Flags().Changed(categoryFlag) {
			category := flags[categoryFlag].GetString()
			req.Category = &category
		}

		product, err := svc.UpdateProduct.Execute(cmd.Context(), req)
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), []*domain.Product{product})
		return nil
	})
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newProductDeleteCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product; deleting an unknown id is not an error",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, svc *services.ServiceOptions) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteProduct.Execute(cmd.Context(), &delete_product.Request{ProductID: id}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted product %d\n", id)
		return nil
	})
	return cmd
}

func newProductSeedCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Save the four demo products and list the catalog",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string, svc *services.ServiceOptions) error {
		for _, req := range create_product.DemoRequests() {
			if _, err := svc.CreateProduct.Execute(cmd.Context(), req); err != nil {
				return err
			}
		}
		products, err := svc.ListProducts.Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	})
	return cmd
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func parsePrice(s string) (int, error) {
	price, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return price, nil
}
