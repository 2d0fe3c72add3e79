// Command rivuletctl is a thin command-line front end over the storage
// engine. It is an external collaborator, not part of the engine
// contract: its only job is parsing get/set/rm and mapping them to
// pkg/rivulet calls.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rivuletdb/rivulet/pkg/errors"
	"github.com/rivuletdb/rivulet/pkg/logger"
	"github.com/rivuletdb/rivulet/pkg/options"
	"github.com/rivuletdb/rivulet/pkg/rivulet"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:   "rivuletctl",
		Short: "Inspect and modify a rivulet key-value store directory",
	}
	root.PersistentFlags().StringVar(&dir, "dir", options.DefaultDataDir, "data directory")

	root.AddCommand(newGetCmd(&dir), newSetCmd(&dir), newRmCmd(&dir))
	return root
}

func newGetCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value for key, or nothing if it is absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close()

			value, err := store.Get(args[0])
			if err != nil {
				return reportAndFail(err)
			}
			if value != nil {
				fmt.Println(*value)
			}
			return nil
		},
	}
}

func newSetCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set key to value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Set(args[0], args[1]); err != nil {
				return reportAndFail(err)
			}
			return nil
		},
	}
}

func newRmCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Remove(args[0]); err != nil {
				return reportAndFail(err)
			}
			return nil
		},
	}
}

func openStore(dir string) (*rivulet.Store, error) {
	store, err := rivulet.Open(dir, options.WithDataDir(dir))
	if err != nil {
		return nil, reportAndFail(err)
	}
	return store, nil
}

// reportAndFail logs the engine error's structured context and returns it
// to cobra, whose Execute then prints the error and usage as well, and
// main exits non-zero.
func reportAndFail(err error) error {
	log := logger.NewDevelopment("rivuletctl")
	if ee, ok := errors.As(err); ok {
		log.Errorw("command failed", "code", ee.Code(), "path", ee.Path(), "key", ee.Key(), "error", err)
	} else {
		log.Errorw("command failed", "error", err)
	}
	return err
}
