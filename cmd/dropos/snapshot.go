package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dropos/internal/domain"
)

// restoredCollections is the number of documents RestoreSnapshot writes.
const restoredCollections = 6

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotBackupCmd)

	snapshotExportCmd.Flags().StringP("out", "o", "", "write the snapshot to FILE instead of stdout")
	snapshotImportCmd.Flags().StringP("in", "i", "", "snapshot FILE to restore")
	_ = snapshotImportCmd.MarkFlagRequired("in")
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export or restore every collection",
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all collections as one JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")

		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		snap, err := rt.svc.ExportSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		if out == "" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(out, data, 0o600); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		log.Printf("snapshot %s written to %s (%d sales, %d entries)", snap.ID, out, len(snap.Sales), len(snap.Entries))
		return nil
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace every collection with a snapshot file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, _ := cmd.Flags().GetString("in")
		snap, err := readSnapshotFile(in)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		bar := progressbar.Default(restoredCollections, "restoring")
		err = rt.svc.RestoreSnapshot(cmd.Context(), snap, func(string) {
			_ = bar.Add(1)
		})
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		_ = bar.Finish()
		return nil
	},
}

var snapshotBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Overwrite the master backup with the current state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		snap, err := rt.svc.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "master backup %s taken at %s\n", snap.ID, snap.TakenAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func readSnapshotFile(path string) (domain.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}
