package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cdsupport/poscan/internal/core/domain"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Track supplier email requests for flagged purchase orders",
}

var requestsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List flagged purchase orders awaiting an email request",
	RunE:  runRequestsPending,
}

var requestsMarkSentCmd = &cobra.Command{
	Use:   "mark-sent <po-number>",
	Short: "Record that the email request for a PO has gone out",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsMarkSent,
}

func init() {
	requestsCmd.AddCommand(requestsPendingCmd)
	requestsCmd.AddCommand(requestsMarkSentCmd)
	rootCmd.AddCommand(requestsCmd)
}

func runRequestsPending(cmd *cobra.Command, _ []string) error {
	if ledgerStore == nil {
		return errors.New("ledger store not configured")
	}

	pending, err := ledgerStore.Pending(context.Background())
	if err != nil {
		return fmt.Errorf("listing pending requests: %w", err)
	}

	if len(pending) == 0 {
		cmd.Println("No pending requests.")
		return nil
	}

	for _, e := range pending {
		cmd.Printf("%-12s %s\n", e.PONumber, e.SupplierEmails)

		if filerService == nil {
			continue
		}
		// Show where the PO was filed so the sender can attach it.
		matches, err := filerService.Locate(e.PONumber)
		if err != nil {
			cmd.Printf("             (locating document: %v)\n", err)
			continue
		}
		for _, match := range matches {
			cmd.Printf("             %s\n", match)
		}
	}
	cmd.Printf("\n%d pending.\n", len(pending))
	return nil
}

func runRequestsMarkSent(cmd *cobra.Command, args []string) error {
	if ledgerStore == nil {
		return errors.New("ledger store not configured")
	}

	if err := ledgerStore.MarkRequestSent(context.Background(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no ledger entry for PO %s", args[0])
		}
		return fmt.Errorf("marking request sent: %w", err)
	}

	cmd.Printf("Marked request for PO %s as sent.\n", args[0])
	return nil
}
