package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sweetslice/storefront/internal/bootstrap"
	"github.com/sweetslice/storefront/pkg/config"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

const defaultSession = "cli"

var (
	// Global flags
	cartDir string
	session string
	verbose bool
	timeout time.Duration

	logg *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "SweetSlice storefront operator CLI",
	Long: `storefront drives the SweetSlice catalog, cart and checkout services from the
shell. Carts are kept in a local directory so they survive between invocations.

Orders are only durable when SWEETSLICE_DB_DRIVER points at a database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logg = logger.New(logger.Options{
			ServiceName: "storefront-cli",
			Level:       logger.ParseLevel(level),
			Console:     true,
			Output:      cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cartDir, "cart-dir", "", "Cart directory (default: SWEETSLICE_CART_FILE_DIR)")
	rootCmd.PersistentFlags().StringVarP(&session, "session", "s", defaultSession, "Cart session id")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsSearchCmd)
	productsCmd.AddCommand(productsShowCmd)

	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)

	checkoutCmd.AddCommand(checkoutQuoteCmd)
	checkoutCmd.AddCommand(checkoutPlaceCmd)

	ordersCmd.AddCommand(ordersGetCmd)
	ordersCmd.AddCommand(ordersListCmd)

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withContainer builds a file-backed storefront for one command and closes it afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Store.Backend = config.CartBackendFile
	cfg.Store.WatchFile = false
	cfg.Jobs.Enabled = false
	if cartDir != "" {
		cfg.Store.FileDir = cartDir
	}

	if logg == nil {
		logg = logger.Nop()
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	c, err := bootstrap.New(ctx, cfg, logg)
	if err != nil {
		return fmt.Errorf("starting storefront: %w", err)
	}
	defer c.Close()

	return fn(ctx, c)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe folds per-field validation details into the error text.
func describe(err error) error {
	te := pkgerrors.As(err)
	if te == nil {
		return err
	}
	details, ok := te.Details().(map[string]string)
	if !ok || len(details) == 0 {
		return err
	}
	parts := make([]string, 0, len(details))
	for _, field := range slices.Sorted(maps.Keys(details)) {
		parts = append(parts, field+" "+details[field])
	}
	return fmt.Errorf("%s: %s", te.Message(), strings.Join(parts, "; "))
}
