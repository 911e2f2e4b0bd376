package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cdsupport/poscan/internal/core/domain"
)

const receivedTimeFormat = "2006-01-02 15:04:05"

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the purchase order ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded purchase orders",
	RunE:  runLedgerList,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <po-number>",
	Short: "Show one ledger entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the ledger as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerExport,
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerList(cmd *cobra.Command, _ []string) error {
	if ledgerStore == nil {
		return errors.New("ledger store not configured")
	}

	entries, err := ledgerStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing ledger: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("Ledger is empty.")
		return nil
	}

	cmd.Printf("%-12s %-8s %-10s %-20s %s\n", "PO", "CDS", "Currency", "Received", "Buyer")
	for _, e := range entries {
		cmd.Printf("%-12s %-8s %-10s %-20s %s\n",
			e.PONumber, e.Decision, e.Currency,
			e.ReceivedAt.Format(receivedTimeFormat), e.Buyer)
	}
	cmd.Printf("\n%d entries.\n", len(entries))
	return nil
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	if ledgerStore == nil {
		return errors.New("ledger store not configured")
	}

	entry, err := ledgerStore.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no ledger entry for PO %s", args[0])
		}
		return fmt.Errorf("reading ledger: %w", err)
	}

	cmd.Printf("PO Number:       %s\n", entry.PONumber)
	cmd.Printf("Buyer:           %s\n", entry.Buyer)
	cmd.Printf("Seller:          %s\n", entry.Seller)
	cmd.Printf("VAT:             %s\n", entry.VAT)
	cmd.Printf("Currency:        %s\n", entry.Currency)
	cmd.Printf("UOM:             %s\n", entry.UOM)
	cmd.Printf("Max Unit Price:  %s\n", formatPrice(entry.MaxUnitPrice))
	cmd.Printf("Need CDS:        %s\n", entry.Decision)
	cmd.Printf("Supplier Emails: %s\n", entry.SupplierEmails)
	cmd.Printf("End-User Email:  %s\n", entry.EndUserEmail)
	cmd.Printf("Received:        %s\n", entry.ReceivedAt.Format(receivedTimeFormat))
	cmd.Printf("Request Sent:    %s\n", formatRequestSent(entry.RequestSent))
	return nil
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	if ledgerStore == nil {
		return errors.New("ledger store not configured")
	}

	entries, err := ledgerStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing ledger: %w", err)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"PO Number", "Buyer", "Seller", "VAT", "Currency", "UOM",
		"Max Unit Price", "Need_CDs", "Supplier/Vendor email",
		"End-User Email", "ReceivedTime", "Email Request Info",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.PONumber, e.Buyer, e.Seller, e.VAT, e.Currency, e.UOM,
			formatPrice(e.MaxUnitPrice), e.Decision.String(),
			e.SupplierEmails, e.EndUserEmail,
			e.ReceivedAt.Format(receivedTimeFormat),
			formatRequestSent(e.RequestSent),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}

	cmd.Printf("Exported %d entries to %s\n", len(entries), args[0])
	return nil
}

// formatPrice renders a unit price without a forced decimal tail.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// formatRequestSent renders the request flag the way the export sheet
// expects: "Yes" when sent, blank otherwise.
func formatRequestSent(sent bool) string {
	if sent {
		return "Yes"
	}
	return ""
}
