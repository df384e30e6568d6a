package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wecreatehub/site_backend/internal/leads"
	"github.com/wecreatehub/site_backend/internal/models"
)

func newLeadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "lead", Short: "Submit leads the way site forms do"}
	cmd.AddCommand(newLeadSubmitCmd(a), newLeadQuizCmd(a), newLeadPendingCmd(a))
	return cmd
}

func (a *app) submitter() *leads.Submitter {
	return leads.NewSubmitter(a.client(), leads.NewFileMirror(a.cfg.LeadMirrorDir), a.log)
}

func printOutcome(cmd *cobra.Command, out leads.Outcome) error {
	fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	if !out.Delivered && !out.Mirrored {
		return fmt.Errorf("lead was neither delivered nor kept locally")
	}
	return nil
}

func newLeadSubmitCmd(a *app) *cobra.Command {
	var f models.LeadForm
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if leads.StorageKey(f.FormType) == "" {
				return fmt.Errorf("unknown form type %q", f.FormType)
			}
			return printOutcome(cmd, a.submitter().Submit(cmd.Context(), f))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.FormType, "type", models.FormGeneralInquiry, "form type")
	fl.StringVar(&f.FullName, "name", "", "full name")
	fl.StringVar(&f.Email, "email", "", "email address")
	fl.StringVar(&f.Organization, "org", "", "organization")
	fl.StringVar(&f.Phone, "phone", "", "phone number")
	fl.StringVar(&f.PartnershipType, "partnership-type", "", "partnership type")
	fl.StringVar(&f.Budget, "budget", "", "budget range")
	fl.StringVar(&f.Message, "message", "", "message")
	fl.StringVar(&f.ProgramInterested, "program", "", "program of interest")
	fl.StringVar(&f.Subject, "subject", "", "subject")
	return cmd
}

func newLeadQuizCmd(a *app) *cobra.Command {
	var name, email, answers string
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Submit quiz answers with their diagnosis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selections []int
			for _, s := range strings.Split(answers, ",") {
				if s = strings.TrimSpace(s); s == "" {
					continue
				}
				n, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("answers: %w", err)
				}
				selections = append(selections, n)
			}
			d := leads.Diagnose(selections)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", d.Title, d.Category, d.Description)
			return printOutcome(cmd, a.submitter().Submit(cmd.Context(), leads.QuizForm(name, email, leads.Questions, selections)))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&answers, "answers", "", "comma separated option indexes, one per question")
	return cmd
}

func newLeadPendingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pending <form-type>",
		Short: "Print submissions kept locally for a form type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := leads.StorageKey(args[0])
			if key == "" {
				return fmt.Errorf("unknown form type %q", args[0])
			}
			kept, err := leads.NewFileMirror(a.cfg.LeadMirrorDir).List(key)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(kept)
		},
	}
}
