package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"boutique_hotel/internal/adapters/blob"
	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
	"boutique_hotel/internal/storage/sqlstore"
)

var journeysCmd = &cobra.Command{
	Use:   "journeys",
	Short: "Inspect and remove journey inquiries",
}

var journeysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journey inquiries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJourneysList,
}

var journeysDeleteCmd = &cobra.Command{
	Use:   "delete [journey-id]",
	Short: "Delete a journey with its notes and files",
	Long: `Removes the journey, its notes and file records, and the stored
attachment bytes. Journeys cannot be deleted through the API.`,
	Args: cobra.ExactArgs(1),
	RunE: runJourneysDelete,
}

var uploadDir string

func init() {
	journeysDeleteCmd.Flags().StringVar(&uploadDir, "upload-dir", "", "local upload root (default UPLOAD_DIR)")

	journeysCmd.AddCommand(journeysListCmd)
	journeysCmd.AddCommand(journeysDeleteCmd)
	rootCmd.AddCommand(journeysCmd)
}

// journeyService wires the same blob backends the API uses, so attachment
// bytes are removed wherever they live.
func journeyService(store domain.Store) (*app.JourneyService, error) {
	local := blob.NewLocal(or(uploadDir, cfg.UploadDir))
	var remote domain.BlobStore
	if cfg.BlobToken != "" {
		rb, err := blob.NewRemote(cfg.BlobAPIURL, cfg.BlobToken)
		if err != nil {
			return nil, err
		}
		remote = rb
	}
	return app.NewJourneyService(store, local, remote, nil), nil
}

func runJourneysList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := journeyService(sqlstore.New(db))
	if err != nil {
		return err
	}
	list, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		cmd.Println("No journeys.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tOWNER\tASSIGNED\tCREATED")
	for _, j := range list {
		owner, assigned := "-", "-"
		if j.UserEmail != nil {
			owner = *j.UserEmail
		}
		if j.AssignedAdmin != nil {
			assigned = j.AssignedAdmin.Email
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Status, owner, assigned, j.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runJourneysDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := journeyService(sqlstore.New(db))
	if err != nil {
		return err
	}
	if err := svc.DeleteJourney(ctx, args[0]); err != nil {
		return fmt.Errorf("delete %s: %w", args[0], err)
	}
	cmd.Printf("Journey %s deleted.\n", args[0])
	return nil
}
