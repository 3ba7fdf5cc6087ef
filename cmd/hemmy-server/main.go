package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hemmy/hemmy/internal/config"
	"github.com/hemmy/hemmy/internal/domain/study"
	"github.com/hemmy/hemmy/internal/platform/db"
	"github.com/hemmy/hemmy/internal/platform/middleware"
	"github.com/hemmy/hemmy/internal/platform/reporting"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hemmy-server",
		Short: "Right heart catheterization hemodynamics calculator",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the calculator web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateForServer(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateForServer(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	// migrate down - keep as warning
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			return nil
		},
	})

	return cmd
}

// evaluateCmd runs a single bedside evaluation in the terminal, without a
// database. Measurements come from flags, or from interactive prompts with
// the documented defaults when --interactive is set.
func evaluateCmd() *cobra.Command {
	var (
		interactive bool
		savePath    string
		sendToPrint bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one catheterization study in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var req study.EvaluateRequest
			if interactive {
				req = promptRequest(cmd)
			} else {
				req, err = requestFromFlags(cmd)
				if err != nil {
					return err
				}
			}
			if req.Institution == "" {
				req.Institution = cfg.Institution
			}

			svc := study.NewService(nil)
			report, err := svc.Evaluate(req)
			if err != nil {
				return err
			}

			text := reporting.RenderText(&report)
			fmt.Println(text)

			if savePath != "" {
				written, err := reporting.SaveTXT(savePath, text)
				if err != nil {
					return err
				}
				fmt.Printf("Report saved to %s\n", written)
				if sendToPrint {
					if err := reporting.PrintFile(written); err != nil {
						fmt.Fprintf(os.Stderr, "print failed: %v\n", err)
					} else {
						fmt.Println("Report sent to printer.")
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for each measurement")
	cmd.Flags().StringVar(&savePath, "save", "", "Save the report as a .txt file")
	cmd.Flags().BoolVar(&sendToPrint, "print", false, "Send the saved report to the default printer (requires --save)")

	cmd.Flags().String("name", "", "Patient name")
	cmd.Flags().String("id", "", "Patient ID / MRN")
	cmd.Flags().String("operator", "", "Physician or operator")
	cmd.Flags().String("institution", "", "Institution")

	for _, f := range measurementFlags {
		cmd.Flags().Float64(f.flag, f.def, f.usage)
	}

	return cmd
}

// measurementFlags drives both flag registration and intake. Required
// measurements carry the documented default; optional ones are forwarded
// only when the flag was set.
var measurementFlags = []struct {
	flag     string
	def      float64
	required bool
	usage    string
	dst      func(*study.EvaluateRequest) **float64
}{
	{"height", study.DefaultHeightCm, true, "Height (cm)", func(r *study.EvaluateRequest) **float64 { return &r.HeightCm }},
	{"weight", study.DefaultWeightKg, true, "Weight (kg)", func(r *study.EvaluateRequest) **float64 { return &r.WeightKg }},
	{"hb", study.DefaultHemoglobin, true, "Hemoglobin (g/L)", func(r *study.EvaluateRequest) **float64 { return &r.Hemoglobin }},
	{"sao2", study.DefaultSaO2, true, "Arterial O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.SaO2 }},
	{"ra-mean", study.DefaultRAMean, true, "Mean RA pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.RAMean }},
	{"pa-systolic", study.DefaultPASystolic, true, "PA systolic pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.PASystolic }},
	{"pa-diastolic", study.DefaultPADiastolic, true, "PA diastolic pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.PADiastolic }},
	{"pcwp", study.DefaultPCWP, true, "Wedge pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.PCWP }},
	{"hr", study.DefaultHeartRate, true, "Heart rate (bpm)", func(r *study.EvaluateRequest) **float64 { return &r.HeartRate }},
	{"svc-sat", 0, false, "SVC O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.SVCSat }},
	{"ivc-sat", 0, false, "IVC O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.IVCSat }},
	{"ra-sat", 0, false, "RA O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.RASat }},
	{"rv-sat", 0, false, "RV O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.RVSat }},
	{"pa-sat", 0, false, "PA O2 saturation (%)", func(r *study.EvaluateRequest) **float64 { return &r.PASat }},
	{"sbp", 0, false, "Systemic systolic pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.SBP }},
	{"dbp", 0, false, "Systemic diastolic pressure (mmHg)", func(r *study.EvaluateRequest) **float64 { return &r.DBP }},
	{"vo2", 0, false, "Measured VO2 (mL/min)", func(r *study.EvaluateRequest) **float64 { return &r.VO2 }},
}

func requestFromFlags(cmd *cobra.Command) (study.EvaluateRequest, error) {
	req := study.EvaluateRequest{}
	req.PatientName, _ = cmd.Flags().GetString("name")
	req.PatientID, _ = cmd.Flags().GetString("id")
	req.Operator, _ = cmd.Flags().GetString("operator")
	req.Institution, _ = cmd.Flags().GetString("institution")

	for _, f := range measurementFlags {
		if !f.required && !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.flag)
		if err != nil {
			return study.EvaluateRequest{}, err
		}
		val := v
		*f.dst(&req) = &val
	}
	return req, nil
}

// promptRequest walks through every measurement on stdin. Empty input keeps
// the default for required fields and skips optional ones.
func promptRequest(cmd *cobra.Command) study.EvaluateRequest {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	req := study.EvaluateRequest{}
	req.PatientName = promptString(in, out, "Patient name")
	req.PatientID = promptString(in, out, "Patient ID / MRN")
	req.Operator = promptString(in, out, "Physician/operator")
	req.Institution = promptString(in, out, "Institution")

	for _, f := range measurementFlags {
		// The systemic pair reads better with a concrete default once the
		// systolic side is known.
		def := f.def
		required := f.required
		if f.flag == "dbp" && req.SBP != nil {
			def = 70
			required = true
		}

		*f.dst(&req) = promptFloat(in, out, f.usage, def, required)
	}
	return req
}

func promptString(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptFloat(in *bufio.Reader, out io.Writer, label string, def float64, required bool) *float64 {
	for {
		if required {
			fmt.Fprintf(out, "%s [%g]: ", label, def)
		} else {
			fmt.Fprintf(out, "%s [skip]: ", label)
		}
		line, _ := in.ReadString('\n')
		raw := strings.TrimSpace(line)
		if raw == "" {
			if !required {
				return nil
			}
			v := def
			return &v
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintf(out, "  %q is not a number, try again\n", raw)
			continue
		}
		return &v
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.ValidateForServer(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := reporting.NewTemplateRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e.Renderer = renderer

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(middleware.BodyLimit("64K"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Domain wiring
	repo := study.NewRepoPG(pool)
	svc := study.NewService(repo)
	handler := study.NewHandler(svc, cfg.Institution)

	api := e.Group("/api")
	handler.RegisterRoutes(e, api)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": reporting.AppVersion,
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
