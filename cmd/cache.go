package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the article cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached entry and its freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.Status(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Backend: %s\n", cfg.Cache.Backend)
		if store.db != nil {
			fmt.Printf("Path:    %s (%d bytes)\n", store.db.Path(), store.db.Size())
		}
		fmt.Printf("Key:     %s\n", store.Key())
		fmt.Printf("TTL:     %s\n", store.TTL())
		switch {
		case !st.Present:
			fmt.Println("Entry:   none")
		case st.Malformed:
			fmt.Println("Entry:   malformed (will be discarded on next read)")
		default:
			state := "expired"
			if st.Valid {
				state = "valid"
			}
			fmt.Printf("Entry:   %s, %d articles\n", state, st.Count)
			fmt.Printf("Written: %s (%s ago)\n", st.WrittenAt.Local().Format(time.RFC3339), st.Age.Round(time.Second))
			if st.Valid {
				fmt.Printf("Expires: in %s\n", st.ExpiresIn.Round(time.Second))
			}
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		store.Clear(context.Background())
		fmt.Println("Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
