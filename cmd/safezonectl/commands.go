package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/geo"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/shenikar/safezone_notifier/internal/repository"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/shenikar/safezone_notifier/internal/webhook"
	"github.com/shenikar/safezone_notifier/pkg/logger"
	"github.com/shenikar/safezone_notifier/pkg/postgres"
	redisclient "github.com/shenikar/safezone_notifier/pkg/redis"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "safezonectl",
		Short:         "Operator tool for the SafeZone notifier",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newDistanceCmd(), newNotifyCmd(), newMigrateCmd())
	return rootCmd
}

func newDistanceCmd() *cobra.Command {
	var from, to string
	var radius float64

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Great-circle distance between two points in meters",
		Long:  `Compute the haversine distance between --from and --to, given as "lat,lng". With --radius, also report whether --to lies inside the circle around --from.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := parseCoordinate(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			b, err := parseCoordinate(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			d := a.DistanceTo(b)
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f m\n", d)
			if cmd.Flags().Changed("radius") {
				fmt.Fprintf(cmd.OutOrStdout(), "covered: %t\n", geo.Covers(a, radius, b))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", `first point as "lat,lng"`)
	cmd.Flags().StringVar(&to, "to", "", `second point as "lat,lng"`)
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "radius around --from in meters")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newNotifyCmd() *cobra.Command {
	var reportID int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run the subscriber notifier once for a report",
		Long:  `Load the report and all subscriptions from the configured storage and notify matching subscribers. With --dry-run nothing is queued for webhook delivery.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())
			ctx := cmd.Context()

			dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
			if err != nil {
				return err
			}
			defer dbpool.Close()

			redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			matcher, err := geo.NewMatcher(cfg.NotifierMatcher)
			if err != nil {
				return err
			}

			var dispatcher webhook.WebhookPublisher
			if !dryRun {
				dispatcher = webhook.NewRedisWebhookPublisher(redisClient)
			}

			notifier := service.NewNotifier(
				repository.NewReportRepository(dbpool, redisClient, cfg.ReportCacheTTL),
				repository.NewSubscriptionRepository(dbpool),
				matcher,
				dispatcher,
				nil,
				clockwork.NewRealClock(),
				observability.NewMetricsWith(prometheus.NewRegistry()),
				log,
			)

			result, err := notifier.NotifySubscribers(ctx, reportID)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().Int64Var(&reportID, "report-id", 0, "report to broadcast")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "match subscribers without queueing webhooks")
	_ = cmd.MarkFlagRequired("report-id")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(cfg.DatabaseURL, dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory with migration files")
	return cmd
}

func parseCoordinate(s string) (geo.Coordinate, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return geo.Coordinate{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || lng < -180 || lng > 180 {
		return geo.Coordinate{}, fmt.Errorf("invalid longitude %q", lngStr)
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
