package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jimiolaniyan/feed"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    feed.Config
	logger *zap.SugaredLogger
	in     io.Reader
}

// NewRootCommand creates the feed command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "feed",
		Short:         "A single-user social feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.in = cmd.InOrStdin()
			return a.configure(cfgFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	def := feed.DefaultConfig()
	f := cmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	f.String("backend", def.Backend, "storage backend (memory|file|sqlite|redis|mongo)")
	f.String("data-dir", def.DataDir, "directory for the file and sqlite backends")
	f.String("sqlite-path", def.SQLitePath, "sqlite database path (default <data-dir>/feed.db)")
	f.String("redis-addr", def.RedisAddr, "redis address")
	f.String("redis-password", def.RedisPassword, "redis password")
	f.Int("redis-db", def.RedisDB, "redis database")
	f.String("mongo-uri", def.MongoURI, "mongo connection uri")
	f.String("mongo-database", def.MongoDatabase, "mongo database")
	f.String("mongo-collection", def.MongoCollection, "mongo collection")
	f.String("storage-key", def.StorageKey, "key the feed is stored under")
	f.String("username", def.Username, "display name used for comments")
	f.BoolP("verbose", "v", def.Verbose, "verbose logging")
	_ = a.v.BindPFlags(f)

	a.v.SetEnvPrefix("FEED")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newPostCommand(a))
	cmd.AddCommand(newEditCommand(a))
	cmd.AddCommand(newLikeCommand(a))
	cmd.AddCommand(newCommentCommand(a))
	cmd.AddCommand(newDeleteCommand(a))

	return cmd
}

func (a *app) configure(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := feed.DefaultConfig()
	if err := a.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("error decoding config: %w", err)
	}
	a.cfg = cfg

	var (
		l   *zap.Logger
		err error
	)
	if cfg.Verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	a.logger = l.Sugar()
	return nil
}

// openStore connects the configured backend and loads the feed.
func (a *app) openStore() (*feed.Store, *feed.Adapter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := feed.OpenKeyValueStore(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	adapter := feed.NewAdapterWithKey(kv, a.cfg.StorageKey)
	store := feed.NewStore(adapter, feed.WithLogger(a.logger), feed.WithUsername(a.cfg.Username))
	return store, adapter, nil
}
