package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/store"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send and inspect contact form submissions",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit the contact form to a running site",
	Long: `Submit the contact form the same way the page does: the form is validated,
posted to the contact endpoint and the resulting alert is printed.

Examples:
  byteik contact send --name Ana --email ana@example.com --message "Hello"
  byteik contact send -n Ana -e ana@example.com -m Halo --locale id
  byteik contact send ... --endpoint https://byteik.com/api/contact`,
	RunE: runContactSend,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List submissions saved by the local backends",
	Long: `List contact submissions stored by the diskv, sqlite or memory backend.
The notion backend keeps submissions in the Notion database instead.`,
	RunE: runContactList,
}

var (
	contactName     string
	contactEmail    string
	contactMessage  string
	contactEndpoint string
	contactLocale   string
)

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.AddCommand(contactSendCmd, contactListCmd)

	contactSendCmd.Flags().StringVarP(&contactName, "name", "n", "", "Your name")
	contactSendCmd.Flags().StringVarP(&contactEmail, "email", "e", "", "Your email address")
	contactSendCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "The message")
	contactSendCmd.Flags().StringVar(&contactEndpoint, "endpoint", "", "Contact endpoint (default contact.endpoint)")
	contactSendCmd.Flags().StringVar(&contactLocale, "locale", "", "Locale of the printed alert")
}

func runContactSend(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	endpoint := contactEndpoint
	if endpoint == "" {
		endpoint = cfg.Contact.Endpoint
	}

	bundle, err := i18n.New(cfg.Site.Locales, cfg.Site.DefaultLocale)
	if err != nil {
		return err
	}
	t := bundle.Translator(contactLocale)

	controller := contact.NewController(contact.NewHTTPSubmitter(endpoint, nil),
		contact.WithMessages(contact.MessagesFrom(t.T)),
		contact.WithLogger(logger),
		contact.WithTimeout(cfg.Contact.Timeout))

	return sendContact(cmd.Context(), cmd.OutOrStdout(), controller, contact.Form{
		Name:    contactName,
		Email:   contactEmail,
		Message: contactMessage,
	}, t.T("cta.form.sending"))
}

// sendContact fills the controller's form, submits it and prints the alert.
func sendContact(ctx context.Context, w io.Writer, controller *contact.Controller, form contact.Form, sending string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	controller.SetField(contact.FieldName, form.Name)
	controller.SetField(contact.FieldEmail, form.Email)
	controller.SetField(contact.FieldMessage, form.Message)

	var outcome contact.Status
	stop := controller.Observe(func(u contact.Update) {
		if u.Outcome != contact.StatusIdle {
			outcome = u.Outcome
		}
	})
	defer stop()

	if controller.Submit(ctx) {
		fmt.Fprintln(w, color.New(color.Faint).Sprint(sending))
		controller.Wait()
	}

	alert := controller.State().Alert
	switch alert.Kind {
	case contact.AlertSuccess:
		color.New(color.FgGreen, color.Bold).Fprintln(w, alert.Message)
		return nil
	default:
		color.New(color.FgRed, color.Bold).Fprintln(w, alert.Message)
	}
	if outcome == contact.StatusError {
		return fmt.Errorf("contact submission failed")
	}
	return fmt.Errorf("contact form is invalid")
}

func runContactList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open contact store: %w", err)
	}
	defer st.Close()

	lister, ok := st.(store.Lister)
	if !ok {
		return fmt.Errorf("the %s backend cannot list submissions", cfg.Contact.Backend)
	}

	records, err := lister.List(cmd.Context())
	if err != nil {
		return err
	}
	printRecords(cmd.OutOrStdout(), records)
	return nil
}

func printRecords(w io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No submissions yet.")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("RECEIVED"), bold.Sprint("NAME"), bold.Sprint("EMAIL"), bold.Sprint("MESSAGE"))
	for _, r := range records {
		tbl.AddRow(r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Name, r.Email, strings.TrimSpace(r.Message))
	}
	fmt.Fprintln(w, tbl)
}
