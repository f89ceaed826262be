package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/record"
	"herbledger/core/storage"
	"herbledger/types/ids"
)

var rootCmd = &cobra.Command{
	Use:   "herbledger",
	Short: "Herbal supply-chain traceability ledger",
	Long:  "A local traceability ledger tracking herbal products from collector through supplier and manufacturer to the consumer scan.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the ledger database (default $HERBLEDGER_DB_PATH or ./herbledger_db)")
	rootCmd.PersistentFlags().String("role", "collector", "Acting role: collector|supplier|manufacturer")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("role", rootCmd.PersistentFlags().Lookup("role"))
	viper.SetEnvPrefix("HERBLEDGER")
	viper.AutomaticEnv()
}

// withEngine opens the store, restores (or initializes) the engine, runs fn,
// and closes the store. Corrupt persisted state is fatal: the operator must
// reset the database, the CLI never patches it.
func withEngine(fn func(pol config.Policy, e *engine.Engine) error) error {
	pol := config.Load()
	if db := viper.GetString("db"); db != "" {
		pol.DBPath = db
	}
	store, err := storage.NewStore(pol.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var eng *engine.Engine
	snap, err := storage.LoadSnapshot(store)
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		eng = engine.New(pol, engine.WithStore(store))
	case err != nil:
		return fmt.Errorf("ledger state unusable, reset %s: %w", pol.DBPath, err)
	default:
		eng, err = engine.Restore(snap, pol, engine.WithStore(store))
		if err != nil {
			return fmt.Errorf("ledger state unusable, reset %s: %w", pol.DBPath, err)
		}
	}
	return fn(pol, eng)
}

// opCtx builds the per-invocation session context.
func opCtx() (engine.OpContext, error) {
	role, err := record.ParseRole(viper.GetString("role"))
	if err != nil {
		return engine.OpContext{}, err
	}
	return engine.OpContext{SessionID: ids.NewSessionID(), Role: role}, nil
}

func fail(err error) {
	logrus.WithError(err).Error("command failed")
	os.Exit(1)
}

func printResult(res engine.Result) {
	if res.OK {
		fmt.Printf("OK: %s\n", res.Message)
		return
	}
	fmt.Printf("REJECTED [%s]: %s\n", res.Kind, res.Message)
	os.Exit(1)
}
