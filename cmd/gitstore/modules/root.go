package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aniknaemmm/GitSharp/pkg/metrics"
	"github.com/aniknaemmm/GitSharp/pkg/storage/loosedb"
	"github.com/aniknaemmm/GitSharp/pkg/storage/objectdb"
	"github.com/aniknaemmm/GitSharp/pkg/util/autocomplete"
	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "GITSTORE"

// Global scope flags.
var (
	cfgFile    string
	objectsDir string

	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gitstore",
	Short: "Command line tool to work with a local object store",
	Long: `Gitstore inspects and populates a content-addressed object store:
it stores blobs and trees, checks object existence across the store and its
alternates, and walks stored trees in canonical order.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/gitstore/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&objectsDir, "objects", "o", "", "path to the object store root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("objects", rootCmd.PersistentFlags().Lookup("objects"))

	rootCmd.AddCommand(autocomplete.Command("gitstore"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".config/gitstore/config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}

	return log
}

var (
	storageMetricsOnce sync.Once
	storageMetrics     *metrics.StorageMetrics
)

// newStorageMetrics registers the lookup metrics at most once per process;
// every store opened afterwards shares the same register.
func newStorageMetrics() *metrics.StorageMetrics {
	storageMetricsOnce.Do(func() {
		storageMetrics = metrics.NewStorageMetrics()
	})

	return storageMetrics
}

// printStorageMetrics dumps the collected lookup counters to stderr.
func printStorageMetrics() {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return
	}

	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "gitstore_") {
			continue
		}

		for _, m := range mf.GetMetric() {
			fmt.Fprintf(os.Stderr, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
		}
	}
}

// openStore opens the configured object store and wraps it into a lookup
// database. The returned release function closes both.
func openStore(opts ...objectdb.Option) (*objectdb.Database, func(), error) {
	path := viper.GetString("objects")
	if path == "" {
		return nil, nil, fmt.Errorf("object store root is not set (--objects or %s_OBJECTS)", envPrefix)
	}

	store := loosedb.New(
		loosedb.WithPath(path),
		loosedb.WithLogger(newLogger()),
	)

	if err := store.Create(); err != nil {
		return nil, nil, fmt.Errorf("could not open object store: %w", err)
	}

	db := objectdb.New(store, append([]objectdb.Option{
		objectdb.WithLogger(newLogger()),
		objectdb.WithMetrics(newStorageMetrics()),
	}, opts...)...)

	release := func() {
		_ = db.Close()

		if verbose {
			printStorageMetrics()
		}
	}

	return db, release, nil
}
