package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ybenarab/dzfisc/internal/calculation"
	"github.com/ybenarab/dzfisc/internal/calendar"
	"github.com/ybenarab/dzfisc/internal/catalog"
	"github.com/ybenarab/dzfisc/internal/config"
	"github.com/ybenarab/dzfisc/internal/domain"
	"github.com/ybenarab/dzfisc/internal/log"
	"github.com/ybenarab/dzfisc/internal/output"
	"github.com/ybenarab/dzfisc/internal/store"
)

var version = "dev"

// app bundles the wired components behind the CLI commands.
type app struct {
	kv      *store.SQLiteKV
	catalog *catalog.Catalog
	sim     *calculation.Simulator
	tracker *calendar.Tracker
	log     *log.Logger
}

func openApp(dbPath string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	logger := log.New(log.ParseLevel(cfg.LogLevel))

	kv, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dbPath, err)
	}
	st := store.New(kv, nil, logger)
	cat := catalog.New(st, logger)
	return &app{
		kv:      kv,
		catalog: cat,
		sim:     calculation.NewSimulator(cat),
		tracker: calendar.NewTracker(st),
		log:     logger,
	}, nil
}

func (a *app) close() {
	if err := a.kv.Close(); err != nil {
		a.log.Warn("close store", "error", err)
	}
}

func main() {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:   "dzfisc",
		Short: "Registre des obligations fiscales et calcul des pénalités de retard",
		Long: "dzfisc suit les échéances fiscales et sociales (G50, G12, IBS, CNAS, CASNOS...), " +
			"permet d'adapter le référentiel sans perdre les valeurs par défaut et " +
			"calcule la pénalité due en cas de paiement tardif.",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "chemin de la base SQLite (défaut: $DZFISC_DB_PATH ou dzfisc.db)")

	rootCmd.AddCommand(
		simulateCmd(&dbPath),
		calendarCmd(&dbPath),
		catalogCmd(&dbPath),
		rulesCmd(&dbPath),
		doneCmd(&dbPath),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "dzfisc %s\n", version)
		},
	}
}

func simulateCmd(dbPath *string) *cobra.Command {
	var (
		formID      string
		dueStr      string
		paidStr     string
		figuresFile string
		format      string
		amount      string
		tva         string
		tap         string
		irg         string
		base        string
		payroll     string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simuler le montant dû pour une obligation payée en retard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			due, err := parseDate(dueStr)
			if err != nil {
				return fmt.Errorf("--due: %w", err)
			}
			paid, err := parseDate(paidStr)
			if err != nil {
				return fmt.Errorf("--paid: %w", err)
			}

			var figures domain.Figures
			if figuresFile != "" {
				figures, err = config.LoadFigures(figuresFile)
				if err != nil {
					return err
				}
			} else {
				figures = domain.Figures{
					Amount:      parseAmount(amount),
					TVA:         parseAmount(tva),
					TAP:         parseAmount(tap),
					IRG:         parseAmount(irg),
					TaxableBase: parseAmount(base),
					Payroll:     parseAmount(payroll),
				}
			}

			result := a.sim.Simulate(formID, figures, due, paid)
			return output.WriteSimulationReport(os.Stdout, result, format)
		},
	}

	cmd.Flags().StringVar(&formID, "form", domain.FormG50, "identifiant du formulaire")
	cmd.Flags().StringVar(&dueStr, "due", "", "date d'échéance (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&paidStr, "paid", "", "date de paiement (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&figuresFile, "figures", "", "fichier YAML des montants saisis")
	cmd.Flags().StringVar(&format, "format", "console", "format de sortie: console, json, yaml")
	cmd.Flags().StringVar(&amount, "amount", "", "montant générique")
	cmd.Flags().StringVar(&tva, "tva", "", "TVA due (G50)")
	cmd.Flags().StringVar(&tap, "tap", "", "TAP due (G50)")
	cmd.Flags().StringVar(&irg, "irg", "", "IRG/salaires dû (G50)")
	cmd.Flags().StringVar(&base, "base", "", "base imposable (déclarations annuelles)")
	cmd.Flags().StringVar(&payroll, "payroll", "", "masse salariale brute (CNAS)")
	cmd.MarkFlagRequired("due")
	cmd.MarkFlagRequired("paid")
	return cmd
}

func calendarCmd(dbPath *string) *cobra.Command {
	var (
		year   int
		regime string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Afficher l'échéancier fiscal d'une année",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			if year == 0 {
				year = time.Now().Year()
			}
			events := calendar.Generator{}.ForRegime(year, regime)
			output.WriteCalendar(os.Stdout, events, a.tracker.IsComplete)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "année (défaut: année courante)")
	cmd.Flags().StringVar(&regime, "regime", "", "filtrer par régime: reel, ifu, employeur")
	return cmd
}

func catalogCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Consulter et modifier le référentiel des obligations",
	}

	var showAll bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les formulaires effectifs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			forms := a.catalog.VisibleForms()
			if showAll {
				forms = a.catalog.AllForms()
			}
			for _, f := range forms {
				origin := "custom"
				if f.IsSystem {
					origin = "system"
				}
				fmt.Printf("%-40s  %-20s  %-7s  %s\n", f.ID, f.CategoryID, origin, f.Label)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&showAll, "all", false, "inclure les formulaires masqués")

	hideCmd := &cobra.Command{
		Use:   "hide <form-id>",
		Short: "Masquer ou réafficher un formulaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()
			return a.catalog.ToggleVisibility(args[0])
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Exporter le référentiel effectif en YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()
			return output.WriteCatalogSnapshot(os.Stdout, output.CatalogSnapshot{
				Categories: a.catalog.Categories(),
				Forms:      a.catalog.AllForms(),
				Rules:      a.catalog.PenaltyRules(),
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Effacer toutes les personnalisations et revenir aux valeurs par défaut",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()
			return a.catalog.ResetOverrides()
		},
	}

	cmd.AddCommand(listCmd, hideCmd, exportCmd, resetCmd)
	return cmd
}

func rulesCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Lister les règles de pénalité effectives",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			for _, r := range a.catalog.PenaltyRules() {
				fmt.Printf("%-14s  %-12s  %s\n", r.ID, r.Mode, r.Name)
				fmt.Printf("%-14s  %s\n", "", r.Description)
			}
			return nil
		},
	}
	return cmd
}

func doneCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done <event-id>",
		Short: "Marquer une échéance comme traitée (ou annuler la marque)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.tracker.Toggle(args[0]); err != nil {
				return err
			}
			if a.tracker.IsComplete(args[0]) {
				fmt.Printf("%s : traitée\n", args[0])
			} else {
				fmt.Printf("%s : à traiter\n", args[0])
			}
			return nil
		},
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date invalide %q (attendu AAAA-MM-JJ)", s)
	}
	return t, nil
}

// parseAmount coerces user input to a decimal, treating empty or non-numeric
// values as zero.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
